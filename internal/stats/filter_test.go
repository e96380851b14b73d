package stats_test

import (
	"testing"
	"time"

	"github.com/bgkien/hypergen-dashboard/internal/model"
	"github.com/bgkien/hypergen-dashboard/internal/stats"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func campaignOn(id string, status model.Status, created time.Time) model.Campaign {
	return model.Campaign{
		ID:        id,
		Name:      id,
		Status:    status,
		CreatedAt: model.FlexTime{Time: created},
	}
}

func ids(campaigns []model.Campaign) []string {
	out := make([]string, len(campaigns))
	for i, c := range campaigns {
		out[i] = c.ID
	}
	return out
}

func TestFilterAllStatusIsSubsetPreservingOrder(t *testing.T) {
	in := []model.Campaign{
		campaignOn("a", model.StatusActive, day(2024, 3, 1)),
		campaignOn("b", model.StatusPaused, day(2024, 3, 2)),
		campaignOn("c", model.StatusCompleted, day(2024, 3, 3)),
	}

	out := stats.Filter(in, model.StatusAll, nil)
	if len(out) != len(in) {
		t.Fatalf("ALL filter with no window must pass everything, got %d of %d", len(out), len(in))
	}
	for i := range in {
		if out[i].ID != in[i].ID {
			t.Errorf("order not preserved at %d: got %s, want %s", i, out[i].ID, in[i].ID)
		}
	}
}

func TestFilterByStatus(t *testing.T) {
	in := []model.Campaign{
		campaignOn("a", model.StatusActive, day(2024, 3, 1)),
		campaignOn("b", model.StatusPaused, day(2024, 3, 2)),
		campaignOn("c", model.StatusActive, day(2024, 3, 3)),
	}

	out := stats.Filter(in, model.StatusActive, nil)
	got := ids(out)
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("expected [a c], got %v", got)
	}
}

func TestFilterWindowBoundsAreInclusive(t *testing.T) {
	window := model.DateWindow{Start: day(2024, 3, 10), End: day(2024, 3, 20)}
	in := []model.Campaign{
		campaignOn("before", model.StatusActive, day(2024, 3, 9)),
		campaignOn("start", model.StatusActive, day(2024, 3, 10)),
		campaignOn("mid", model.StatusActive, day(2024, 3, 15)),
		campaignOn("end", model.StatusActive, day(2024, 3, 20)),
		campaignOn("after", model.StatusActive, day(2024, 3, 21)),
	}

	got := ids(stats.Filter(in, model.StatusAll, &window))
	want := []string{"start", "mid", "end"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}

func TestFilterUnparsableDate(t *testing.T) {
	window := model.DateWindow{Start: day(2024, 3, 1), End: day(2024, 3, 31)}
	in := []model.Campaign{
		campaignOn("dated", model.StatusActive, day(2024, 3, 5)),
		campaignOn("undated", model.StatusActive, time.Time{}),
	}

	scoped := stats.Filter(in, model.StatusAll, &window)
	if len(scoped) != 1 || scoped[0].ID != "dated" {
		t.Errorf("unparsable date must be excluded from date-scoped views, got %v", ids(scoped))
	}

	unscoped := stats.Filter(in, model.StatusAll, nil)
	if len(unscoped) != 2 {
		t.Errorf("unparsable date must be retained without a window, got %v", ids(unscoped))
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	in := []model.Campaign{
		campaignOn("b", model.StatusPaused, day(2024, 3, 2)),
		campaignOn("a", model.StatusActive, day(2024, 3, 1)),
	}
	stats.Filter(in, model.StatusActive, nil)

	if in[0].ID != "b" || in[1].ID != "a" {
		t.Error("filter must not reorder or mutate its input")
	}
}
