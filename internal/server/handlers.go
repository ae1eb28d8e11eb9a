package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "m5cli/internal/errors"
)

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status string `json:"status"`
	Tables int    `json:"tables"`
}

// GetHealth reports liveness plus how many tables are loaded.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	tables := 0
	if s.data != nil {
		tables = len(s.data.Info())
	}
	render.JSON(w, r, HealthResponse{Status: "ok", Tables: tables})
}

// GetInfo returns the per-table diagnostic summaries.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	if s.data == nil {
		s.renderError(w, r, apierrors.NewWithDetails(http.StatusServiceUnavailable,
			"DATASET_UNAVAILABLE", "No dataset is loaded", nil))
		return
	}
	render.JSON(w, r, s.data.Info())
}

// GetHierarchy returns the categorical hierarchy extracted at startup.
func (s *Server) GetHierarchy(w http.ResponseWriter, r *http.Request) {
	if s.hierarchy == nil {
		s.renderError(w, r, apierrors.NewWithDetails(http.StatusServiceUnavailable,
			"HIERARCHY_UNAVAILABLE", "No hierarchy is loaded", nil))
		return
	}
	render.JSON(w, r, s.hierarchy)
}

// GetCalendarDay returns a single calendar day by its d key.
func (s *Server) GetCalendarDay(w http.ResponseWriter, r *http.Request) {
	d := chi.URLParam(r, "d")
	if d == "" {
		s.renderError(w, r, apierrors.ErrMissingParameter)
		return
	}
	if s.data == nil || s.data.Calendar == nil {
		s.renderError(w, r, apierrors.NewWithDetails(http.StatusServiceUnavailable,
			"DATASET_UNAVAILABLE", "No dataset is loaded", nil))
		return
	}

	day, ok := s.data.Calendar.Lookup(d)
	if !ok {
		s.renderError(w, r, apierrors.NewWithDetails(http.StatusNotFound,
			"NOT_FOUND", "calendar day not found", d))
		return
	}
	render.JSON(w, r, day)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, apiErr *apierrors.APIError) {
	if err := render.Render(w, r, apierrors.NewErrorResponse(apiErr)); err != nil {
		s.logger.ErrorContext(r.Context(), "failed to render error response", "error", err)
	}
}
