package queue_test

import (
	"sync"
	"testing"

	"github.com/bgkien/hypergen-dashboard/internal/queue"
)

func TestInMemoryQueueDeliversToSubscriber(t *testing.T) {
	q := queue.NewInMemoryQueue()

	var wg sync.WaitGroup
	wg.Add(1)
	var got queue.RefreshEvent
	q.Subscribe(queue.TopicStatsRefreshed, func(payload any) error {
		got = payload.(queue.RefreshEvent)
		wg.Done()
		return nil
	})

	ev := queue.RefreshEvent{WorkspaceID: "ws_1", CampaignCount: 4, Seq: 7}
	if err := q.Publish(queue.TopicStatsRefreshed, ev); err != nil {
		t.Fatalf("publish: %v", err)
	}
	wg.Wait()

	if got.WorkspaceID != "ws_1" || got.Seq != 7 {
		t.Errorf("unexpected event delivered: %+v", got)
	}
}

func TestInMemoryQueueDropsWithoutSubscribers(t *testing.T) {
	q := queue.NewInMemoryQueue()
	if err := q.Publish(queue.TopicStatsRefreshed, queue.RefreshEvent{}); err != nil {
		t.Errorf("publishing without subscribers must not fail: %v", err)
	}
}
