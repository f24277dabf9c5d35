package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	AllowedOrigins []string
	// StaticDir is served under /static/. Empty disables it.
	StaticDir   string
	LogRequests bool
}

// RegisterRoutes mounts the tutor endpoints on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.Chat)
	r.Route("/history/{user_id}", func(r chi.Router) {
		r.Get("/", h.GetHistory)
		r.Delete("/", h.ClearHistory)
	})
	r.Route("/progress/{user_id}", func(r chi.Router) {
		r.Get("/", h.GetProgress)
		r.Delete("/", h.ResetProgress)
	})
}

// NewRouter builds the full HTTP handler with middleware.
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	if opts.LogRequests {
		r.Use(RequestLogger(h.log))
	}
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(CORS(opts.AllowedOrigins))

	h.RegisterRoutes(r)

	if opts.StaticDir != "" {
		fs := http.StripPrefix("/static/", http.FileServer(http.Dir(opts.StaticDir)))
		r.Handle("/static/*", fs)
	}
	return r
}
