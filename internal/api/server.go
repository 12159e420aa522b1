// Package api serves filtered dashboard views over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/museum-pulse/internal/dataset"
	"github.com/Veraticus/museum-pulse/internal/report"
)

// Source supplies the current snapshot and rebuilds it on demand.
// *dataset.Store satisfies it.
type Source interface {
	Current() *dataset.Snapshot
	Reload(ctx context.Context) (bool, error)
}

// Options configures a Server.
type Options struct {
	CacheSize int
	TopN      int
}

// Server routes API requests to handlers.
type Server struct {
	source Source
	cache  *ResponseCache
	mux    *http.ServeMux
	topN   int
}

// NewServer creates a server reading from source.
func NewServer(source Source, opts Options) (*Server, error) {
	if source == nil {
		return nil, errors.New("api: source is required")
	}
	cache, err := NewResponseCache(opts.CacheSize)
	if err != nil {
		return nil, err
	}
	if opts.TopN <= 0 {
		opts.TopN = report.DefaultTopN
	}

	s := &Server{
		source: source,
		cache:  cache,
		mux:    http.NewServeMux(),
		topN:   opts.TopN,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /api/facets", s.handleFacets)
	s.mux.HandleFunc("GET /api/reviews", s.handleReviews)
	s.mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	s.mux.HandleFunc("GET /api/dashboard/{page}", s.handleDashboard)
	s.mux.HandleFunc("POST /api/reload", s.handleReload)
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return LoggingMiddleware(s.mux)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Serving dashboard API", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}

// WatchReload reloads the source every interval until ctx is canceled.
// Failed reloads are logged and the previous snapshot stays in place.
func (s *Server) WatchReload(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			changed, err := s.source.Reload(ctx)
			if err != nil {
				slog.Warn("Reload failed, keeping current snapshot", "error", err)
				continue
			}
			if changed {
				slog.Info("Reloaded source", "snapshot", s.source.Current().ID)
			}
		}
	}
}
