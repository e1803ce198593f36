// Package server exposes the solver over HTTP.
//
// Routes:
//
//	GET  /healthz     liveness and build information
//	POST /v1/bounds   problem JSON in, min/max/preferred sizes out
//	POST /v1/solve    problem JSON in, one solution per requested size out
//
// The sizes to solve for come from the "sizes" query parameter
// (comma-separated) or the problem's own "sizes" field. Failures are
// reported as {"error": {"code": ..., "message": ..., "request_id": ...}}
// with a status derived from the error code. Requests that outlive the
// server's timeout fail with TIMEOUT and status 504.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gridaxis/pkg/pipeline"
)

const (
	// MaxBodyBytes bounds the size of a request body.
	MaxBodyBytes = 1 << 20

	// DefaultTimeout bounds the time spent on one API request.
	DefaultTimeout = 30 * time.Second
)

// Server serves the HTTP API.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	timeout time.Duration
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithTimeout sets the per-request deadline. Zero or negative values keep
// DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New returns a server backed by runner. A nil logger selects log.Default().
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/bounds", s.handleBounds)
		r.Post("/solve", s.handleSolve)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusNotFound, errorBody(r, "NOT_FOUND", "no route for "+r.URL.Path))
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
