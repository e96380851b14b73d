// internal/model/stats.go
package model

import "time"

// DateWindow is an inclusive date range [Start, End] scoping a metrics
// query. Both bounds are day-granular timestamps with Start <= End.
type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window, bounds included.
func (w DateWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Valid reports whether the window is well formed.
func (w DateWindow) Valid() bool {
	return !w.Start.IsZero() && !w.End.IsZero() && !w.End.Before(w.Start)
}

// Previous returns the window of equal length immediately before this
// one. Windows are day-granular, so the previous window ends the day
// before Start; it never shares a day with the current window.
func (w DateWindow) Previous() DateWindow {
	length := w.End.Sub(w.Start)
	end := w.Start.AddDate(0, 0, -1)
	return DateWindow{Start: end.Add(-length), End: end}
}

// SortOrder is a sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortSpec names a campaign field and the direction to order it by.
type SortSpec struct {
	Field string    `json:"field"`
	Order SortOrder `json:"order"`
}

// Toggle returns the sort resulting from selecting field: selecting the
// active field flips the direction, selecting a new field resets to
// descending.
func (s SortSpec) Toggle(field string) SortSpec {
	if field == s.Field {
		if s.Order == SortDesc {
			return SortSpec{Field: field, Order: SortAsc}
		}
		return SortSpec{Field: field, Order: SortDesc}
	}
	return SortSpec{Field: field, Order: SortDesc}
}

// AggregateStats are the summed outreach metrics for one collection of
// campaigns. LeadRate is pre-formatted with one decimal and a trailing
// percent sign, "0%" when nothing was contacted.
type AggregateStats struct {
	TotalContacted       int    `json:"totalContacted"`
	TotalReplies         int    `json:"totalReplies"`
	TotalPositiveReplies int    `json:"totalPositiveReplies"`
	LeadRate             string `json:"leadRate"`
}

// DeltaPercent carries the signed period-over-period percentage change
// for each headline metric. A delta is 0 whenever the previous period
// total was 0, regardless of the current value.
type DeltaPercent struct {
	Contacted       float64 `json:"contacted"`
	ReplyRate       float64 `json:"replyRate"`
	LeadRate        float64 `json:"leadRate"`
	PositiveReplies float64 `json:"positiveReplies"`
}

// ComparisonStats is the current window's aggregate next to the
// preceding equal-length window's aggregate and the deltas between them.
type ComparisonStats struct {
	AggregateStats
	Previous     AggregateStats `json:"previous"`
	DeltaPercent DeltaPercent   `json:"deltaPercent"`
}
