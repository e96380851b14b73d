// internal/stats/filter.go
package stats

import "github.com/bgkien/hypergen-dashboard/internal/model"

// Filter reduces a campaign collection by status and date window. It is
// a pure function: the input is never mutated and output preserves
// input order.
//
// Status ALL (or empty) passes every record; otherwise the match is
// exact. Date matching uses created_at only, inclusive on both bounds.
// A record whose created_at could not be parsed is excluded from
// date-scoped views but retained when window is nil.
func Filter(campaigns []model.Campaign, status model.Status, window *model.DateWindow) []model.Campaign {
	out := make([]model.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if status != "" && status != model.StatusAll && c.Status != status {
			continue
		}
		if window != nil {
			if c.CreatedAt.IsZero() || !window.Contains(c.CreatedAt.Time) {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}
