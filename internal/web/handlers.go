package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/evcraddock/visitor-log/internal/visitor"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// serviceError maps domain errors onto HTTP responses.
func serviceError(w http.ResponseWriter, err error) {
	var ve *visitor.ValidationError
	switch {
	case errors.As(err, &ve):
		apiError(w, ve.Error(), http.StatusBadRequest)
	case errors.Is(err, visitor.ErrNotFound):
		apiError(w, "visitor not found", http.StatusNotFound)
	default:
		apiError(w, err.Error(), http.StatusInternalServerError)
	}
}

// pathID parses the {id} route parameter.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		apiError(w, "invalid visitor ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// listResponse is the body of GET /api/visitors and the search endpoint.
type listResponse struct {
	Query    string             `json:"query,omitempty"`
	Total    int64              `json:"total"`
	Visitors []*visitor.Visitor `json:"visitors"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]interface{}{
		"message": "Apartment Visitor Check-In API",
		"version": s.version,
		"endpoints": map[string]string{
			"POST /api/visitors":               "Create new visitor entry",
			"GET /api/visitors":                "Get all visitors",
			"GET /api/visitors/{id}":           "Get visitor by ID",
			"PUT /api/visitors/{id}":           "Update visitor",
			"DELETE /api/visitors/{id}":        "Delete visitor",
			"GET /api/visitors/search/{query}": "Search visitors",
			"GET /api/stats":                   "Get visitor statistics",
		},
	}, http.StatusOK)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// handleCreateVisitor records a check-in and triggers the admin
// notification. A notification failure still returns 201; the notified
// field tells the caller whether the admin was alerted.
func (s *Server) handleCreateVisitor(w http.ResponseWriter, r *http.Request) {
	var req visitor.CreateVisitorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	v, err := s.service.CheckIn(r.Context(), req)
	if err != nil {
		serviceError(w, err)
		return
	}

	apiJSON(w, v, http.StatusCreated)
}

func (s *Server) handleListVisitors(w http.ResponseWriter, r *http.Request) {
	var opts visitor.ListOptions
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			apiError(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		opts.Limit = limit
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			apiError(w, "offset must be a non-negative integer", http.StatusBadRequest)
			return
		}
		opts.Offset = offset
	}

	visitors, total, err := s.service.GetAll(opts)
	if err != nil {
		serviceError(w, err)
		return
	}
	if visitors == nil {
		visitors = []*visitor.Visitor{}
	}

	apiJSON(w, listResponse{Total: total, Visitors: visitors}, http.StatusOK)
}

func (s *Server) handleGetVisitor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	v, err := s.service.Get(id)
	if err != nil {
		serviceError(w, err)
		return
	}

	apiJSON(w, v, http.StatusOK)
}

func (s *Server) handleUpdateVisitor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req visitor.UpdateVisitorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	v, err := s.service.Update(id, req)
	if err != nil {
		serviceError(w, err)
		return
	}

	apiJSON(w, v, http.StatusOK)
}

func (s *Server) handleDeleteVisitor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.service.Remove(id); err != nil {
		serviceError(w, err)
		return
	}

	apiJSON(w, map[string]string{"message": "visitor deleted"}, http.StatusOK)
}

func (s *Server) handleSearchVisitors(w http.ResponseWriter, r *http.Request) {
	query := chi.URLParam(r, "query")

	visitors, err := s.service.Search(query)
	if err != nil {
		serviceError(w, err)
		return
	}
	if visitors == nil {
		visitors = []*visitor.Visitor{}
	}

	apiJSON(w, listResponse{Query: query, Total: int64(len(visitors)), Visitors: visitors}, http.StatusOK)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.Stats()
	if err != nil {
		serviceError(w, err)
		return
	}

	apiJSON(w, stats, http.StatusOK)
}
