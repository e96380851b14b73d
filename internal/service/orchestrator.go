// internal/service/orchestrator.go
package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/bgkien/hypergen-dashboard/internal/client"
	appErrors "github.com/bgkien/hypergen-dashboard/internal/errors"
	"github.com/bgkien/hypergen-dashboard/internal/model"
	"github.com/bgkien/hypergen-dashboard/internal/queue"
	"github.com/bgkien/hypergen-dashboard/internal/stats"
)

// StatsFetcher is the slice of the upstream client the orchestrator
// needs. The HTTP client satisfies it; tests use in-memory fakes.
type StatsFetcher interface {
	GetCampaignStats(ctx context.Context, q client.Query) ([]model.Campaign, error)
}

// State is the orchestration state exposed to the presentation layer.
type State string

const (
	StateIdle    State = "idle"    // settled, snapshot is authoritative
	StatePending State = "pending" // debounce timer armed
	StateLoading State = "loading" // request in flight
	StateError   State = "error"   // last fetch failed
)

// Params is one complete set of query parameters. Changing any of
// WorkspaceID, Status or Window triggers a debounced refetch; changing
// only Sort reorders the current snapshot without touching the network.
type Params struct {
	WorkspaceID string
	Status      model.Status
	Window      model.DateWindow
	Sort        model.SortSpec
}

func sameQuery(a, b Params) bool {
	return a.WorkspaceID == b.WorkspaceID &&
		a.Status == b.Status &&
		a.Window.Start.Equal(b.Window.Start) &&
		a.Window.End.Equal(b.Window.End)
}

// Snapshot is the orchestrator's externally visible state. Campaigns
// and Stats hold the last known-good result; after a failed refresh
// they keep the previous fetch's values while Err reports the failure.
type Snapshot struct {
	State     State                 `json:"state"`
	Stats     model.ComparisonStats `json:"stats"`
	Campaigns []model.Campaign      `json:"campaigns"`
	Err       *appErrors.FetchError `json:"error,omitempty"`
	HasData   bool                  `json:"hasData"`
}

// Options configures an Orchestrator.
type Options struct {
	Debounce     time.Duration // quiescence window, default 300ms
	DiagCapacity int
	Events       queue.Queue // optional refresh-event publisher
}

const defaultDebounce = 300 * time.Millisecond

// Orchestrator converts a stream of parameter changes into at most one
// authoritative in-flight query. Rapid changes collapse into a single
// fetch once input settles; each fetch carries a monotonically
// increasing sequence number, and a response is applied only when its
// number still matches the latest issued fetch. A slow response to a
// superseded query is silently discarded, so the visible snapshot
// always reflects the most recently issued query.
type Orchestrator struct {
	fetcher  StatsFetcher
	debounce time.Duration
	events   queue.Queue
	diag     *DiagRing

	mu         sync.Mutex
	timer      *time.Timer
	timerGen   uint64
	timerArmed bool
	seq        uint64
	params     Params
	hasParams  bool
	snap       Snapshot
	updated    chan struct{}
}

func NewOrchestrator(fetcher StatsFetcher, opts Options) *Orchestrator {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Orchestrator{
		fetcher:  fetcher,
		debounce: debounce,
		events:   opts.Events,
		diag:     NewDiagRing(opts.DiagCapacity),
		snap:     Snapshot{State: StateIdle},
		updated:  make(chan struct{}),
	}
}

// SetParams records a parameter change. The pending debounce timer, if
// any, is cancelled and re-armed, so only the last change in a burst
// reaches the network. A change that touches only the sort spec is
// applied immediately to the current snapshot instead.
func (o *Orchestrator) SetParams(p Params) {
	o.mu.Lock()
	defer o.mu.Unlock()

	// An unchanged query does not refetch unless the last attempt
	// failed; a sort-only change reorders the snapshot in place.
	if o.hasParams && sameQuery(o.params, p) && o.snap.State != StateError {
		if p.Sort != o.params.Sort {
			o.params.Sort = p.Sort
			o.snap.Campaigns = stats.Sort(o.snap.Campaigns, p.Sort)
			o.broadcastLocked()
		}
		return
	}

	o.params = p
	o.hasParams = true
	o.rearmLocked()
}

// ToggleSort applies the field-selection semantics: selecting the
// active field flips direction, a new field resets to descending. No
// refetch happens.
func (o *Orchestrator) ToggleSort(field string) model.SortSpec {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.params.Sort = o.params.Sort.Toggle(field)
	o.snap.Campaigns = stats.Sort(o.snap.Campaigns, o.params.Sort)
	o.broadcastLocked()
	return o.params.Sort
}

func (o *Orchestrator) rearmLocked() {
	if o.timer != nil {
		o.timer.Stop()
	}
	o.timerGen++
	gen := o.timerGen
	o.timerArmed = true
	o.snap.State = StatePending
	o.timer = time.AfterFunc(o.debounce, func() { o.fire(gen) })
	o.broadcastLocked()
}

// fire issues the fetch for the settled parameters. The sequence number
// is taken while still holding the lock, so a response can later prove
// it belongs to the latest issued query. A timer that was superseded
// while waiting on the lock fires into a generation check and does
// nothing.
func (o *Orchestrator) fire(gen uint64) {
	o.mu.Lock()
	if gen != o.timerGen {
		o.mu.Unlock()
		return
	}
	o.timerArmed = false
	o.seq++
	seq := o.seq
	p := o.params
	o.snap.State = StateLoading
	o.broadcastLocked()
	o.mu.Unlock()

	// The upstream query is widened to cover the previous window too,
	// so the comparator can aggregate both periods from one response.
	q := client.Query{
		WorkspaceID: p.WorkspaceID,
		Status:      p.Status,
		Window: model.DateWindow{
			Start: p.Window.Previous().Start,
			End:   p.Window.End,
		},
	}

	go func() {
		campaigns, err := o.fetcher.GetCampaignStats(context.Background(), q)
		o.complete(seq, p, campaigns, err)
	}()
}

func (o *Orchestrator) complete(seq uint64, p Params, campaigns []model.Campaign, err error) {
	o.mu.Lock()

	if seq != o.seq {
		o.mu.Unlock()
		log.Printf("⏭ Discarding stale response (seq %d, latest %d)\n", seq, o.seq)
		return
	}

	if err != nil {
		fe := appErrors.Normalize(err)
		o.diag.Record(fe)
		o.snap.Err = fe
		o.snap.State = StateError
		if o.timerArmed {
			o.snap.State = StatePending
		}
		// Last known-good stats and campaigns are kept: a failed
		// refresh must not blank a working dashboard. A failed first
		// load has nothing to keep and HasData stays false.
		o.broadcastLocked()
		o.mu.Unlock()
		return
	}

	comparison := stats.Compare(campaigns, p.Status, p.Window)
	current := stats.Filter(campaigns, p.Status, &p.Window)
	sorted := stats.Sort(current, p.Sort)

	o.snap = Snapshot{
		State:     StateIdle,
		Stats:     comparison,
		Campaigns: sorted,
		HasData:   true,
	}
	if o.timerArmed {
		o.snap.State = StatePending
	}
	o.broadcastLocked()
	events := o.events
	o.mu.Unlock()

	if events != nil {
		ev := queue.RefreshEvent{
			WorkspaceID:   p.WorkspaceID,
			Status:        string(p.Status),
			StartDate:     p.Window.Start.Format("2006-01-02"),
			EndDate:       p.Window.End.Format("2006-01-02"),
			CampaignCount: len(sorted),
			Seq:           seq,
			FetchedAt:     time.Now().UTC(),
		}
		if err := events.Publish(queue.TopicStatsRefreshed, ev); err != nil {
			log.Println("⚠️ Failed to publish refresh event:", err)
		}
	}
}

// Snapshot returns the current externally visible state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snap
}

// Wait blocks until the orchestrator settles (no debounce timer armed,
// no request in flight) and returns the snapshot it settled on.
func (o *Orchestrator) Wait(ctx context.Context) (Snapshot, error) {
	for {
		o.mu.Lock()
		if o.snap.State != StatePending && o.snap.State != StateLoading {
			snap := o.snap
			o.mu.Unlock()
			return snap, nil
		}
		ch := o.updated
		o.mu.Unlock()

		select {
		case <-ctx.Done():
			return Snapshot{}, ctx.Err()
		case <-ch:
		}
	}
}

// Diagnostics returns the recorded fetch failures, oldest first.
func (o *Orchestrator) Diagnostics() []DiagEntry {
	return o.diag.Entries()
}

// broadcastLocked wakes all Wait callers. Caller holds o.mu.
func (o *Orchestrator) broadcastLocked() {
	close(o.updated)
	o.updated = make(chan struct{})
}
