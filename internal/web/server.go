// Package web provides the HTTP server and JSON handlers for the
// visitor check-in API.
package web

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/evcraddock/visitor-log/internal/logging"
	"github.com/evcraddock/visitor-log/internal/visitor"
)

// Server is the visitor API HTTP server.
type Server struct {
	service *visitor.Service
	version string
	router  chi.Router
}

// NewServer creates an API server around the visitor service.
func NewServer(service *visitor.Service, version string) *Server {
	s := &Server{
		service: service,
		version: version,
		router:  chi.NewRouter(),
	}

	s.router.Use(logging.RequestLogger)

	s.router.Get("/", s.handleIndex)
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/visitors", s.handleCreateVisitor)
		r.Get("/visitors", s.handleListVisitors)
		r.Get("/visitors/search/{query}", s.handleSearchVisitors)
		r.Get("/visitors/{id}", s.handleGetVisitor)
		r.Put("/visitors/{id}", s.handleUpdateVisitor)
		r.Delete("/visitors/{id}", s.handleDeleteVisitor)
		r.Get("/stats", s.handleStats)
	})

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(port string) error {
	addr := ":" + port
	fmt.Printf("Starting visitor API on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, s)
}
