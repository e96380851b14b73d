// internal/client/stats_client.go
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	appErrors "github.com/bgkien/hypergen-dashboard/internal/errors"
	"github.com/bgkien/hypergen-dashboard/internal/model"
)

// Query names one campaign-stats request to the upstream backend.
type Query struct {
	WorkspaceID string
	Status      model.Status
	Window      model.DateWindow
}

// Options configures a StatsClient. Zero values get sane defaults.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// StatsClient talks to the upstream stats backend. The backend is a
// black box returning JSON arrays; this client validates the envelope
// and classifies failures, nothing more.
type StatsClient struct {
	baseURL    string
	httpClient *http.Client
}

func New(opts Options) *StatsClient {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &StatsClient{baseURL: baseURL, httpClient: httpClient}
}

// GetWorkspaces lists the tenant workspaces. Zero workspaces is a
// distinct user-facing condition and surfaces as an empty-result error.
func (c *StatsClient) GetWorkspaces(ctx context.Context) ([]model.Workspace, error) {
	body, err := c.get(ctx, "/api/workspaces", nil)
	if err != nil {
		return nil, err
	}
	var workspaces []model.Workspace
	if err := json.Unmarshal(body, &workspaces); err != nil {
		return nil, appErrors.NewValidationError("workspaces response is not a JSON array")
	}
	if len(workspaces) == 0 {
		return nil, appErrors.NewEmptyResultError("no workspaces available")
	}
	return workspaces, nil
}

// GetCampaignStats fetches the raw campaign array for one query.
// Malformed fields inside individual records normalize during decode;
// only a malformed envelope is rejected.
func (c *StatsClient) GetCampaignStats(ctx context.Context, q Query) ([]model.Campaign, error) {
	if strings.TrimSpace(q.WorkspaceID) == "" {
		return nil, appErrors.NewValidationError("workspaceId is required")
	}
	if !q.Window.Valid() {
		return nil, appErrors.NewValidationError("invalid date range: start must not be after end")
	}

	params := url.Values{}
	params.Set("workspaceId", q.WorkspaceID)
	params.Set("start_date", q.Window.Start.Format("2006-01-02"))
	params.Set("end_date", q.Window.End.Format("2006-01-02"))
	if q.Status != "" && q.Status != model.StatusAll {
		params.Set("status", string(q.Status))
	}

	body, err := c.get(ctx, "/api/campaign-stats", params)
	if err != nil {
		return nil, err
	}
	var campaigns []model.Campaign
	if err := json.Unmarshal(body, &campaigns); err != nil {
		return nil, appErrors.NewValidationError("campaign-stats response is not a JSON array")
	}
	return campaigns, nil
}

func (c *StatsClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, appErrors.NewNetworkError(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, appErrors.NewNetworkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErrors.NewNetworkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error   string `json:"error"`
			Details string `json:"details"`
		}
		message := ""
		if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
			message = payload.Error
			if payload.Details != "" {
				message = fmt.Sprintf("%s: %s", payload.Error, payload.Details)
			}
		}
		return nil, appErrors.NewServerError(resp.StatusCode, message)
	}
	return body, nil
}
