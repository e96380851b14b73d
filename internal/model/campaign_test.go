package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/bgkien/hypergen-dashboard/internal/model"
)

func TestCampaignDecodeNormalizesCounts(t *testing.T) {
	raw := `{
		"id": "cmp_1",
		"name": "Messy campaign",
		"status": "active",
		"lead_count": "250",
		"completed_lead_count": 10.9,
		"lead_contacted_count": null,
		"sent_count": -5,
		"replied_count": "not a number",
		"positive_reply_count": 12,
		"created_at": "2024-03-01T10:00:00Z"
	}`

	var c model.Campaign
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}

	if c.LeadCount != 250 {
		t.Errorf("expected string count to coerce to 250, got %d", c.LeadCount)
	}
	if c.CompletedLeadCount != 10 {
		t.Errorf("expected float count to truncate to 10, got %d", c.CompletedLeadCount)
	}
	if c.LeadContactedCount != 0 {
		t.Errorf("expected null count to be 0, got %d", c.LeadContactedCount)
	}
	if c.SentCount != 0 {
		t.Errorf("expected negative count to be 0, got %d", c.SentCount)
	}
	if c.RepliedCount != 0 {
		t.Errorf("expected non-numeric count to be 0, got %d", c.RepliedCount)
	}
	if c.PositiveReplyCount != 12 {
		t.Errorf("expected plain count to survive, got %d", c.PositiveReplyCount)
	}
	if c.BouncedCount != 0 || c.UnsubscribedCount != 0 {
		t.Errorf("expected missing counts to be 0, got %d and %d", c.BouncedCount, c.UnsubscribedCount)
	}
}

func TestCampaignDecodeNormalizesStatus(t *testing.T) {
	cases := map[string]model.Status{
		`"active"`:    model.StatusActive,
		`"ACTIVE"`:    model.StatusActive,
		`" paused "`:  model.StatusPaused,
		`"completed"`: model.StatusCompleted,
		`"archived"`:  model.StatusArchived,
		`"deleted"`:   model.StatusUnknown,
		`""`:          model.StatusUnknown,
		`42`:          model.StatusUnknown,
	}
	for raw, want := range cases {
		var c model.Campaign
		if err := json.Unmarshal([]byte(`{"id":"x","status":`+raw+`}`), &c); err != nil {
			t.Fatalf("decode with status %s: %v", raw, err)
		}
		if c.Status != want {
			t.Errorf("status %s: expected %s, got %s", raw, want, c.Status)
		}
	}
}

func TestFlexTimeDecode(t *testing.T) {
	var c model.Campaign
	raw := `{"id":"x","created_at":"2024-03-05","updated_at":"garbage","last_activity_date":1709640000000}`
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}

	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	if !c.CreatedAt.Equal(want) {
		t.Errorf("expected date-only created_at %v, got %v", want, c.CreatedAt)
	}
	if c.UpdatedAt == nil || !c.UpdatedAt.IsZero() {
		t.Errorf("expected unparsable updated_at to be zero time, got %v", c.UpdatedAt)
	}
	if c.LastActivityDate == nil || c.LastActivityDate.Year() != 2024 {
		t.Errorf("expected epoch-millis last_activity_date in 2024, got %v", c.LastActivityDate)
	}
}

func TestFlexTimeMarshalZeroAsNull(t *testing.T) {
	out, err := json.Marshal(model.FlexTime{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "null" {
		t.Errorf("expected zero time to marshal as null, got %s", out)
	}
}

func TestDateWindowPrevious(t *testing.T) {
	current := model.DateWindow{
		Start: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
	}
	prev := current.Previous()

	wantEnd := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	wantStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !prev.End.Equal(wantEnd) {
		t.Errorf("expected previous window to end %v, got %v", wantEnd, prev.End)
	}
	if !prev.Start.Equal(wantStart) {
		t.Errorf("expected previous window to start %v, got %v", wantStart, prev.Start)
	}
	if prev.Contains(current.Start) {
		t.Error("previous window must not contain the current window's start")
	}
	if prev.End.Sub(prev.Start) != current.End.Sub(current.Start) {
		t.Error("previous window must have the same length as the current window")
	}
}

func TestSortSpecToggle(t *testing.T) {
	spec := model.SortSpec{Field: "created_at", Order: model.SortDesc}

	spec = spec.Toggle("created_at")
	if spec.Order != model.SortAsc {
		t.Errorf("selecting the active field should flip to asc, got %s", spec.Order)
	}
	spec = spec.Toggle("created_at")
	if spec.Order != model.SortDesc {
		t.Errorf("selecting again should flip back to desc, got %s", spec.Order)
	}
	spec = spec.Toggle("name")
	if spec.Field != "name" || spec.Order != model.SortDesc {
		t.Errorf("selecting a new field should reset to desc, got %+v", spec)
	}
}
