package scheduler

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestEngineStressConcurrentNotices(t *testing.T) {
	engine := NewEngine(4096)
	engine.Start()
	defer engine.Stop()

	const workers = 8
	const perWorker = 200
	total := workers * perWorker

	var wg sync.WaitGroup
	for w := range workers {
		wg.Go(func() {
			for i := range perWorker {
				delay := time.Duration((w+i)%50+10) * time.Millisecond
				if err := engine.ExpireNotice(fmt.Sprintf("w%d-%d", w, i), delay); err != nil {
					t.Errorf("schedule failed: %v", err)
					return
				}
			}
		})
	}
	wg.Wait()

	deadline := time.After(5 * time.Second)
	received := 0
	for received < total {
		select {
		case <-deadline:
			t.Fatalf("timeout waiting events: received=%d total=%d dropped=%d", received, total, engine.Dropped())
		case <-engine.C():
			received++
		}
	}
	if engine.Dropped() != 0 {
		t.Fatalf("expected zero drops with active consumer, got=%d", engine.Dropped())
	}
}
