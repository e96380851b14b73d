// internal/stats/compare.go
package stats

import "github.com/bgkien/hypergen-dashboard/internal/model"

// Compare aggregates the current window and the immediately preceding
// window of equal length over the same campaign collection, applying
// the same status filter to both, and derives the period-over-period
// deltas.
//
// The previous window ends the day before the current window starts
// (see model.DateWindow.Previous), so adjacent windows never share a
// record when filtering on created_at.
func Compare(campaigns []model.Campaign, status model.Status, current model.DateWindow) model.ComparisonStats {
	previous := current.Previous()

	currFiltered := Filter(campaigns, status, &current)
	prevFiltered := Filter(campaigns, status, &previous)

	curr := Aggregate(currFiltered)
	prev := Aggregate(prevFiltered)

	return model.ComparisonStats{
		AggregateStats: curr,
		Previous:       prev,
		DeltaPercent: model.DeltaPercent{
			Contacted: pctDelta(float64(curr.TotalContacted), float64(prev.TotalContacted)),
			ReplyRate: pctDelta(
				rate(curr.TotalReplies, curr.TotalContacted),
				rate(prev.TotalReplies, prev.TotalContacted),
			),
			LeadRate: pctDelta(
				rate(curr.TotalPositiveReplies, curr.TotalContacted),
				rate(prev.TotalPositiveReplies, prev.TotalContacted),
			),
			PositiveReplies: pctDelta(float64(curr.TotalPositiveReplies), float64(prev.TotalPositiveReplies)),
		},
	}
}

// pctDelta is the signed percentage change from prev to curr. When the
// previous period total is 0 the delta is 0 even if curr is positive;
// a growth-from-nothing figure is meaningless, not infinite.
func pctDelta(curr, prev float64) float64 {
	if prev <= 0 {
		return 0
	}
	return round1((curr - prev) / prev * 100)
}
