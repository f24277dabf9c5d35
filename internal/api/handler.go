// Package api exposes the tutor over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/tutor"
)

// TimeFormat is the timestamp layout used in responses.
const TimeFormat = "2006-01-02 15:04:05"

// Handler serves chat, history and progress endpoints.
type Handler struct {
	tutor   *tutor.Orchestrator
	history store.HistoryRepo
	log     *zap.Logger
}

// NewHandler creates a Handler. A nil logger disables logging.
func NewHandler(t *tutor.Orchestrator, history store.HistoryRepo, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{tutor: t, history: history, log: log}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

func formatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}
