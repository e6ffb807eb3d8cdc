// Package api serves the search over HTTP.
//
// Routes:
//
//	POST /v1/solve              search for a graph, returns a result document
//	POST /v1/check              validate a row set, returns Gram matrix and violations
//	GET  /v1/presets            list presets
//	GET  /v1/solutions/{key}    fetch a stored result document
//	GET  /healthz               liveness
//
// Errors are returned as {"code": "...", "message": "..."} with a status
// derived from the error code.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/srgsearch/pkg/config"
	"github.com/matzehuels/srgsearch/pkg/observability"
	"github.com/matzehuels/srgsearch/pkg/store"
)

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	cfg    *config.Config
	store  store.Store
	logger *log.Logger
}

// New creates a server. A nil store disables persistence; a nil logger
// uses log.Default().
func New(cfg *config.Config, s store.Store, logger *log.Logger) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if s == nil {
		s = store.NewNullStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{cfg: cfg, store: s, logger: logger}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Post("/check", s.handleCheck)
		r.Get("/presets", s.handlePresets)
		r.Get("/solutions/{key}", s.handleSolution)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("Shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// logRequests logs each request and reports it to the HTTP hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), elapsed)
		s.logger.Debug("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", elapsed.Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
