package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/lingua/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tutor over HTTP",
	Long: `Starts the HTTP API:

  POST   /chat                 {"user_id", "message"}
  GET    /history/{user_id}
  DELETE /history/{user_id}
  GET    /progress/{user_id}
  DELETE /progress/{user_id}
  GET    /static/*             generated pronunciation audio
  GET    /health`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (overrides LINGUA_PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	d, err := openDeps(cmd, logger)
	if err != nil {
		return err
	}
	defer d.Close()

	port := d.cfg.Port
	if p, _ := cmd.Flags().GetString("port"); p != "" {
		port = p
	}
	if err := os.MkdirAll(d.cfg.StaticDir, 0o755); err != nil {
		return fmt.Errorf("create static dir: %w", err)
	}

	h := api.NewHandler(d.tutor, d.store.HistoryRepo(), logger)
	srv := &http.Server{
		Addr: ":" + port,
		Handler: api.NewRouter(h, api.RouterOptions{
			AllowedOrigins: d.cfg.AllowedOrigins,
			StaticDir:      d.cfg.StaticDir,
			LogRequests:    true,
		}),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute, // LLM turns can be slow
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("language", d.cfg.Language))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
