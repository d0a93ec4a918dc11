// Package httpapi serves the publish toggle and object reads over HTTP.
//
// Publish failures keep their codes: 409 for a conflict and 400 for a
// failed save, with a {"code", "message"} body. Objects are addressed by
// key or by URL-escaped path.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jpl-au/pubd/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AuthorHeader names the request header that attributes a publish change.
const AuthorHeader = "X-Pubd-Author"

// Server routes HTTP requests to a service.
type Server struct {
	svc    service.Service
	author string // fallback when the request has no AuthorHeader
	router chi.Router
}

// New builds a Server. author is used for requests that do not send
// AuthorHeader.
func New(svc service.Service, author string) *Server {
	s := &Server{svc: svc, author: author}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware)

	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/objects", func(r chi.Router) {
		r.Get("/", s.listObjects)
		r.Get("/*", s.getObject)
		r.Post("/*", s.toggle)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("pubd HTTP server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

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
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	slog.Info("pubd HTTP server stopped")
	return nil
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}
