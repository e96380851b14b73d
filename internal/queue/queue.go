// internal/queue/queue.go
package queue

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Queue carries fire-and-forget notification events, such as the
// stats_refreshed event published after each successful fetch.
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is the default in-process queue with retry.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers. A topic with no
// subscribers drops the event silently; refresh notifications are
// best-effort and must never fail a fetch.
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	job := JobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: 3,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			return // ACK
		}

		job.RetryCount++
		log.Printf("⚠️ Event handler failed (attempt %d/%d): %v\n", job.RetryCount, job.MaxRetries, err)

		if job.RetryCount > job.MaxRetries {
			log.Printf("Event permanently dropped after %d attempts: %+v\n", job.MaxRetries, job.Payload)
			return // No requeue
		}

		// Exponential backoff before retry
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// RefreshEvent is published on the stats_refreshed topic after every
// successful fetch that was applied (stale responses publish nothing).
type RefreshEvent struct {
	WorkspaceID   string    `json:"workspace_id"`
	Status        string    `json:"status"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	CampaignCount int       `json:"campaign_count"`
	Seq           uint64    `json:"seq"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// TopicStatsRefreshed is the only topic the orchestrator publishes on.
const TopicStatsRefreshed = "stats_refreshed"

// StartRefreshLogSubscriber logs applied refreshes, mostly useful in
// development to watch the debounce collapse parameter churn.
func StartRefreshLogSubscriber(q Queue) {
	go func() {
		err := q.Subscribe(TopicStatsRefreshed, func(payload any) error {
			ev, ok := payload.(RefreshEvent)
			if !ok {
				return fmt.Errorf("unexpected payload type %T", payload)
			}
			log.Printf("📊 stats refreshed: workspace=%s status=%s window=%s..%s campaigns=%d seq=%d\n",
				ev.WorkspaceID, ev.Status, ev.StartDate, ev.EndDate, ev.CampaignCount, ev.Seq)
			return nil
		})
		if err != nil {
			log.Println("⚠️ Failed to start refresh log subscriber:", err)
		}
	}()
}
