// internal/handler/backend_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/bgkien/hypergen-dashboard/internal/model"
	"github.com/bgkien/hypergen-dashboard/internal/repository"
)

// BackendHandler serves the upstream stats API from Postgres: the
// workspace list and the raw per-campaign metric arrays the dashboard
// pipeline consumes.
type BackendHandler struct {
	Campaigns  repository.CampaignStoreInterface
	Workspaces repository.WorkspaceStoreInterface
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	body := map[string]string{"error": message}
	if details != "" {
		body["details"] = details
	}
	writeJSON(w, status, body)
}

// ListWorkspacesHandler returns all workspaces as a JSON array of
// {_id, name} objects.
func (h *BackendHandler) ListWorkspacesHandler(w http.ResponseWriter, r *http.Request) {
	workspaces, err := h.Workspaces.ListWorkspaces()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch workspaces", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, workspaces)
}

// queryDate reads an ISO date (YYYY-MM-DD) from the query string,
// accepting both snake_case and camelCase parameter spellings.
func queryDate(r *http.Request, snake, camel string) (*time.Time, bool) {
	raw := r.URL.Query().Get(snake)
	if raw == "" {
		raw = r.URL.Query().Get(camel)
	}
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, false
	}
	t = t.UTC()
	return &t, true
}

// GetCampaignStatsHandler returns the campaigns of one workspace as a
// JSON array, optionally constrained by status and created_at range.
func (h *BackendHandler) GetCampaignStatsHandler(w http.ResponseWriter, r *http.Request) {
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
	if start != nil && end != nil && end.Before(*start) {
		writeError(w, http.StatusBadRequest, "invalid date range", "start_date is after end_date")
		return
	}
	if end != nil {
		// End bound is inclusive for the whole day.
		e := end.Add(24*time.Hour - time.Nanosecond)
		end = &e
	}

	status := model.Status("")
	if raw := r.URL.Query().Get("status"); raw != "" && !strings.EqualFold(raw, string(model.StatusAll)) {
		status = model.NormalizeStatus(raw)
	}

	campaigns, err := h.Campaigns.ListCampaigns(workspaceID, status, start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch campaign stats", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, campaigns)
}
