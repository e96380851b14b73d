// internal/handler/dashboard_handler.go
package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	appErrors "github.com/bgkien/hypergen-dashboard/internal/errors"
	"github.com/bgkien/hypergen-dashboard/internal/model"
	"github.com/bgkien/hypergen-dashboard/internal/service"
)

// WorkspaceLister is the slice of the upstream client the dashboard
// needs for the workspace selector.
type WorkspaceLister interface {
	GetWorkspaces(ctx context.Context) ([]model.Workspace, error)
}

// DashboardHandler exposes the computed dashboard: comparison stats,
// the sorted campaign list, orchestration state and diagnostics.
type DashboardHandler struct {
	Orchestrator *service.Orchestrator
	Workspaces   WorkspaceLister
}

func statusForKind(kind appErrors.Kind) int {
	switch kind {
	case appErrors.KindValidation:
		return http.StatusBadRequest
	case appErrors.KindEmptyResult:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// ListWorkspacesHandler proxies the upstream workspace list.
func (h *DashboardHandler) ListWorkspacesHandler(w http.ResponseWriter, r *http.Request) {
	workspaces, err := h.Workspaces.GetWorkspaces(r.Context())
	if err != nil {
		fe := appErrors.Normalize(err)
		writeError(w, statusForKind(fe.Kind), fe.Message, string(fe.Kind))
		return
	}
	writeJSON(w, http.StatusOK, workspaces)
}

// GetSummaryHandler drives the reactive pipeline for one parameter set
// and responds once the orchestrator settles. The date window defaults
// to the last 30 days when absent.
func (h *DashboardHandler) GetSummaryHandler(w http.ResponseWriter, r *http.Request) {
	workspaceID := strings.TrimSpace(r.URL.Query().Get("workspaceId"))
	if workspaceID == "" {
		writeError(w, http.StatusBadRequest, "workspaceId is required", "")
		return
	}

	start, ok := queryDate(r, "start_date", "startDate")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid start_date", "expected YYYY-MM-DD")
		return
	}
	end, ok := queryDate(r, "end_date", "endDate")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid end_date", "expected YYYY-MM-DD")
		return
	}

	var window model.DateWindow
	switch {
	case start != nil && end != nil:
		window = model.DateWindow{Start: *start, End: *end}
	case start == nil && end == nil:
		today := time.Now().UTC().Truncate(24 * time.Hour)
		window = model.DateWindow{Start: today.AddDate(0, 0, -30), End: today}
	default:
		writeError(w, http.StatusBadRequest, "invalid date range", "start_date and end_date must be given together")
		return
	}
	if !window.Valid() {
		writeError(w, http.StatusBadRequest, "invalid date range", "start_date is after end_date")
		return
	}

	status := model.StatusAll
	if raw := r.URL.Query().Get("status"); raw != "" && !strings.EqualFold(raw, string(model.StatusAll)) {
		status = model.NormalizeStatus(raw)
	}

	sortSpec := model.SortSpec{Field: "created_at", Order: model.SortDesc}
	if field := r.URL.Query().Get("sort_field"); field != "" {
		sortSpec.Field = field
	}
	if order := strings.ToLower(r.URL.Query().Get("sort_order")); order == string(model.SortAsc) {
		sortSpec.Order = model.SortAsc
	}

	h.Orchestrator.SetParams(service.Params{
		WorkspaceID: workspaceID,
		Status:      status,
		Window:      window,
		Sort:        sortSpec,
	})

	snap, err := h.Orchestrator.Wait(r.Context())
	if err != nil {
		writeError(w, http.StatusGatewayTimeout, "dashboard query timed out", err.Error())
		return
	}

	// A failed first load has no prior view to fall back to; a failed
	// refresh responds with the last known-good view plus the error.
	if snap.Err != nil && !snap.HasData {
		writeError(w, statusForKind(snap.Err.Kind), snap.Err.Message, string(snap.Err.Kind))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// GetDiagnosticsHandler exposes the orchestrator's error ring buffer.
func (h *DashboardHandler) GetDiagnosticsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"errors": h.Orchestrator.Diagnostics(),
	})
}
