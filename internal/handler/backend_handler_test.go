package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bgkien/hypergen-dashboard/internal/handler"
	"github.com/bgkien/hypergen-dashboard/internal/model"
)

// Mock stores
type MockCampaignStore struct {
	lastWorkspace string
	lastStatus    model.Status
	lastStart     *time.Time
	lastEnd       *time.Time
	campaigns     []model.Campaign
	err           error
}

func (m *MockCampaignStore) ListCampaigns(workspaceID string, status model.Status, start, end *time.Time) ([]model.Campaign, error) {
	m.lastWorkspace = workspaceID
	m.lastStatus = status
	m.lastStart = start
	m.lastEnd = end
	return m.campaigns, m.err
}

type MockWorkspaceStore struct {
	workspaces []model.Workspace
	err        error
}

func (m *MockWorkspaceStore) ListWorkspaces() ([]model.Workspace, error) {
	return m.workspaces, m.err
}

func TestListWorkspacesHandler(t *testing.T) {
	h := &handler.BackendHandler{
		Workspaces: &MockWorkspaceStore{workspaces: []model.Workspace{{ID: "ws_1", Name: "Acme"}}},
	}

	rec := httptest.NewRecorder()
	h.ListWorkspacesHandler(rec, httptest.NewRequest(http.MethodGet, "/api/workspaces", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got []map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not a JSON array: %v", err)
	}
	if len(got) != 1 || got[0]["_id"] != "ws_1" {
		t.Errorf("workspaces must use the _id wire key, got %v", got)
	}
}

func TestGetCampaignStatsRequiresWorkspaceID(t *testing.T) {
	h := &handler.BackendHandler{Campaigns: &MockCampaignStore{}}

	rec := httptest.NewRecorder()
	h.GetCampaignStatsHandler(rec, httptest.NewRequest(http.MethodGet, "/api/campaign-stats", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] == "" {
		t.Error("error responses must carry an error message")
	}
}

func TestGetCampaignStatsRejectsBadDates(t *testing.T) {
	h := &handler.BackendHandler{Campaigns: &MockCampaignStore{}}

	cases := []string{
		"/api/campaign-stats?workspaceId=ws_1&start_date=March-1",
		"/api/campaign-stats?workspaceId=ws_1&start_date=2024-03-20&end_date=2024-03-01",
	}
	for _, target := range cases {
		rec := httptest.NewRecorder()
		h.GetCampaignStatsHandler(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestGetCampaignStatsQueryParsing(t *testing.T) {
	store := &MockCampaignStore{campaigns: []model.Campaign{}}
	h := &handler.BackendHandler{Campaigns: store}

	target := "/api/campaign-stats?workspaceId=ws_1&startDate=2024-03-01&endDate=2024-03-20&status=ALL"
	rec := httptest.NewRecorder()
	h.GetCampaignStatsHandler(rec, httptest.NewRequest(http.MethodGet, target, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if store.lastWorkspace != "ws_1" {
		t.Errorf("workspaceId not passed through, got %q", store.lastWorkspace)
	}
	if store.lastStatus != "" {
		t.Errorf("status=ALL must not constrain the store, got %q", store.lastStatus)
	}
	if store.lastStart == nil || !store.lastStart.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("camelCase start date not accepted, got %v", store.lastStart)
	}
	if store.lastEnd == nil || store.lastEnd.Day() != 20 || store.lastEnd.Hour() != 23 {
		t.Errorf("end bound must cover the whole end day, got %v", store.lastEnd)
	}
}

func TestGetCampaignStatsReturnsArray(t *testing.T) {
	store := &MockCampaignStore{campaigns: []model.Campaign{
		{ID: "c1", Name: "One", Status: model.StatusActive},
	}}
	h := &handler.BackendHandler{Campaigns: store}

	target := "/api/campaign-stats?workspaceId=ws_1&status=active"
	rec := httptest.NewRecorder()
	h.GetCampaignStatsHandler(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var got []model.Campaign
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not a campaign array: %v", err)
	}
	if len(got) != 1 || got[0].ID != "c1" {
		t.Errorf("unexpected campaigns: %+v", got)
	}
	if store.lastStatus != model.StatusActive {
		t.Errorf("status must normalize to the enum, got %q", store.lastStatus)
	}
}
