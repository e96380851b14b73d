// internal/stats/sort.go
package stats

import (
	"sort"
	"strings"

	"github.com/bgkien/hypergen-dashboard/internal/model"
)

type keyKind int

const (
	kindString keyKind = iota
	kindNumber
)

// sortKey is a comparable projection of one campaign field. Dates
// compare as epoch milliseconds, so an unparsable date (zero time)
// compares as the lowest possible value.
type sortKey struct {
	kind keyKind
	str  string
	num  float64
}

func compareKeys(a, b sortKey) int {
	switch a.kind {
	case kindString:
		return strings.Compare(strings.ToLower(a.str), strings.ToLower(b.str))
	default:
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		}
		return 0
	}
}

// fieldKey projects the named field of c onto a sortKey. ok is false
// when the field's value is absent (nil optional timestamp, or a field
// this engine does not know), which the sorter orders after every
// defined value.
func fieldKey(c model.Campaign, field string) (key sortKey, ok bool) {
	num := func(v float64) (sortKey, bool) { return sortKey{kind: kindNumber, num: v}, true }
	date := func(t *model.FlexTime) (sortKey, bool) {
		if t == nil {
			return sortKey{}, false
		}
		return num(float64(t.UnixMilli()))
	}

	switch field {
	case "id":
		return sortKey{kind: kindString, str: c.ID}, true
	case "name":
		return sortKey{kind: kindString, str: c.Name}, true
	case "status":
		return sortKey{kind: kindString, str: string(c.Status)}, true
	case "created_at":
		return num(float64(c.CreatedAt.UnixMilli()))
	case "updated_at":
		return date(c.UpdatedAt)
	case "last_activity_date":
		return date(c.LastActivityDate)
	case "lead_count":
		return num(float64(c.LeadCount))
	case "completed_lead_count":
		return num(float64(c.CompletedLeadCount))
	case "lead_contacted_count":
		return num(float64(c.LeadContactedCount))
	case "sent_count":
		return num(float64(c.SentCount))
	case "replied_count":
		return num(float64(c.RepliedCount))
	case "positive_reply_count":
		return num(float64(c.PositiveReplyCount))
	case "bounced_count":
		return num(float64(c.BouncedCount))
	case "unsubscribed_count":
		return num(float64(c.UnsubscribedCount))
	}
	return sortKey{}, false
}

// Sort orders a campaign collection by the given spec. It returns a new
// slice and never mutates the input. The sort is stable: equal keys
// keep their original relative order.
//
// A record whose sort-field value is absent always lands after every
// record with a defined value, in both directions. That is a deliberate
// branch, not a side effect of the comparison operators.
func Sort(campaigns []model.Campaign, spec model.SortSpec) []model.Campaign {
	out := make([]model.Campaign, len(campaigns))
	copy(out, campaigns)

	sort.SliceStable(out, func(i, j int) bool {
		a, aok := fieldKey(out[i], spec.Field)
		b, bok := fieldKey(out[j], spec.Field)
		if aok != bok {
			// Defined before undefined regardless of direction.
			return aok
		}
		if !aok {
			return false
		}
		cmp := compareKeys(a, b)
		if cmp == 0 {
			return false
		}
		if spec.Order == model.SortAsc {
			return cmp < 0
		}
		return cmp > 0
	})
	return out
}
