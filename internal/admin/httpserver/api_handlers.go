package httpserver

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"finitefield.org/roster-admin/internal/admin/httpx"
	"finitefield.org/roster-admin/internal/admin/observability"
	"finitefield.org/roster-admin/internal/admin/reports"
)

type apiHandlers struct {
	reports reports.Service
	started time.Time
	now     func() time.Time
}

type apiError struct {
	Error string `json:"error"`
}

// Supervisor answers GET /api/supervisors?name=. The name is matched exactly,
// so surrounding whitespace is part of it. Bodies keep the {"error": "..."} shape.
func (h *apiHandlers) Supervisor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := r.URL.Query().Get("name")
	if name == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, apiError{Error: "Supervisor name is required"})
		return
	}

	sup, err := h.reports.SupervisorByName(ctx, name)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, sup)
	case errors.Is(err, reports.ErrSupervisorNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, apiError{Error: "Supervisor not found"})
	default:
		observability.FromContext(ctx).Error("api: fetch supervisor failed", zap.String("name", name), zap.Error(err))
		httpx.WriteJSON(w, http.StatusInternalServerError, apiError{Error: "Failed to fetch supervisor data"})
	}
}

// Health reports liveness with dataset counts.
func (h *apiHandlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"reports":   len(h.reports.Reports(ctx)),
		"employees": len(h.reports.Employees(ctx)),
		"uptime":    h.now().Sub(h.started).Round(time.Second).String(),
	})
}
