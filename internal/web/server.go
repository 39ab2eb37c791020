// Package web exposes the pipeline as thin HTTP routes; all domain work
// happens in the pipeline package.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/kdvs/nflodds/internal/pkg/config"
	"github.com/kdvs/nflodds/internal/pkg/storage"
)

// Run starts the HTTP server and blocks until ctx is cancelled, then shuts
// down gracefully.
func Run(ctx context.Context, cfg *config.HTTPConfig, runner Runner, archive storage.WeeklyArchive) error {
	h := &handlers{runner: runner, archive: archive}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           getRouter(h, cfg.RequestTimeout),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
