// internal/stats/aggregate.go
package stats

import (
	"fmt"
	"math"

	"github.com/bgkien/hypergen-dashboard/internal/model"
)

// Aggregate sums the headline outreach metrics over a (post-filter)
// campaign collection and derives the lead rate. Deterministic and
// pure: same input, same output.
func Aggregate(campaigns []model.Campaign) model.AggregateStats {
	var contacted, replies, positive int
	for _, c := range campaigns {
		contacted += c.LeadContactedCount.Int()
		replies += c.RepliedCount.Int()
		positive += c.PositiveReplyCount.Int()
	}
	return model.AggregateStats{
		TotalContacted:       contacted,
		TotalReplies:         replies,
		TotalPositiveReplies: positive,
		LeadRate:             formatRate(positive, contacted),
	}
}

// round1 rounds half away from zero to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// formatRate renders part/whole as a percentage string with one
// decimal. A zero denominator yields "0%", never a division.
func formatRate(part, whole int) string {
	if whole <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", round1(float64(part)/float64(whole)*100))
}

// rate is the numeric percentage of part over whole, 0 when whole is 0.
func rate(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
