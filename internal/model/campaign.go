// internal/model/campaign.go
package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Status is the lifecycle state of a campaign. Anything the upstream
// sends outside the known set normalizes to StatusUnknown.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusPaused    Status = "PAUSED"
	StatusArchived  Status = "ARCHIVED"
	StatusUnknown   Status = "UNKNOWN"

	// StatusAll is a filter value only, never stored on a campaign.
	StatusAll Status = "ALL"
)

// NormalizeStatus maps a raw status string onto the known set.
func NormalizeStatus(raw string) Status {
	switch Status(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusActive:
		return StatusActive
	case StatusCompleted:
		return StatusCompleted
	case StatusPaused:
		return StatusPaused
	case StatusArchived:
		return StatusArchived
	default:
		return StatusUnknown
	}
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		// Non-string status normalizes instead of failing the record.
		*s = StatusUnknown
		return nil
	}
	*s = NormalizeStatus(raw)
	return nil
}

// Count is a non-negative integer metric. Upstream responses are sloppy
// about count fields: integers, floats, numeric strings, null, or the
// field missing entirely. All of those decode to an int >= 0.
type Count int

func (c *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*c = 0
		return nil
	}
	s := string(data)
	if len(s) >= 2 && s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			*c = 0
			return nil
		}
		s = strings.TrimSpace(unquoted)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		*c = 0
		return nil
	}
	*c = Count(int(f))
	return nil
}

func (c Count) Int() int { return int(c) }

// FlexTime is a timestamp that tolerates the date formats the upstream
// actually emits. An unparsable or missing value is the zero time.
type FlexTime struct {
	time.Time
}

var flexLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}
	// Numeric timestamps are epoch milliseconds.
	if data[0] != '"' {
		ms, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			t.Time = time.Time{}
			return nil
		}
		t.Time = time.UnixMilli(int64(ms)).UTC()
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Time = time.Time{}
		return nil
	}
	raw = strings.TrimSpace(raw)
	for _, layout := range flexLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	t.Time = time.Time{}
	return nil
}

func (t FlexTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// Campaign is an immutable snapshot of one campaign's outreach metrics
// as returned by a single fetch. Field normalization happens entirely
// inside the JSON decode; nothing mutates a campaign afterwards.
type Campaign struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Status             Status    `json:"status"`
	LeadCount          Count     `json:"lead_count"`
	CompletedLeadCount Count     `json:"completed_lead_count"`
	LeadContactedCount Count     `json:"lead_contacted_count"`
	SentCount          Count     `json:"sent_count"`
	RepliedCount       Count     `json:"replied_count"`
	PositiveReplyCount Count     `json:"positive_reply_count"`
	BouncedCount       Count     `json:"bounced_count"`
	UnsubscribedCount  Count     `json:"unsubscribed_count"`
	CreatedAt          FlexTime  `json:"created_at"`
	UpdatedAt          *FlexTime `json:"updated_at,omitempty"`
	LastActivityDate   *FlexTime `json:"last_activity_date,omitempty"`
}
