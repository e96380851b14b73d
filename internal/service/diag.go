// internal/service/diag.go
package service

import (
	"sync"
	"time"

	appErrors "github.com/bgkien/hypergen-dashboard/internal/errors"
)

// DiagEntry is one recorded fetch failure.
type DiagEntry struct {
	Time    time.Time      `json:"time"`
	Kind    appErrors.Kind `json:"kind"`
	Message string         `json:"message"`
}

// DiagRing is a bounded ring buffer of recent fetch failures, owned by
// the orchestrator. When full, the oldest entry is dropped.
type DiagRing struct {
	mu      sync.Mutex
	cap     int
	entries []DiagEntry
}

const defaultDiagCapacity = 64

func NewDiagRing(capacity int) *DiagRing {
	if capacity <= 0 {
		capacity = defaultDiagCapacity
	}
	return &DiagRing{cap: capacity}
}

func (r *DiagRing) Record(fe *appErrors.FetchError) {
	if fe == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, DiagEntry{
		Time:    time.Now().UTC(),
		Kind:    fe.Kind,
		Message: fe.Message,
	})
	if len(r.entries) > r.cap {
		r.entries = r.entries[len(r.entries)-r.cap:]
	}
}

// Entries returns a copy of the buffer, oldest first.
func (r *DiagRing) Entries() []DiagEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]DiagEntry, len(r.entries))
	copy(out, r.entries)
	return out
}
