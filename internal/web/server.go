// Package web provides the HTTP server and handlers for the records page.
package web

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/aanand-mishra/student-records/internal/ui"
	"github.com/aanand-mishra/student-records/internal/web/middleware"
)

//go:embed static
var staticFiles embed.FS

// Server is the HTTP server for the records page.
type Server struct {
	controller *ui.Controller
	router     *chi.Mux
	server     *http.Server
}

// NewServer creates a new Server around controller.
func NewServer(controller *ui.Controller) *Server {
	s := &Server{
		controller: controller,
		router:     chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
}

func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.router.Get("/", s.handlePage)
	s.router.Post("/students", s.handleSubmit)
	s.router.Post("/students/{id}/edit", s.handleEdit)
	s.router.Post("/students/{id}/delete", s.handleDelete)
	s.router.Post("/cancel", s.handleCancel)

	s.router.Get("/api/validate", s.handleValidateField)
}

// ServeHTTP lets the server be mounted or tested without listening.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start listens on addr and blocks until the server stops. It returns
// nil after a Shutdown.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // remote calls are never cut short
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("server started", slog.String("address", addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
