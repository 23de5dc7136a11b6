package scheduler

import (
	"errors"
	"testing"
	"time"
)

func TestEngineEmitsInDueOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Event{ID: "later", Kind: KindNoticeExpire, DueAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Event{ID: "sooner", Kind: KindNoticeExpire, DueAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
}

func TestExpireNoticeReplacesPendingExpiry(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	if err := engine.ExpireNotice("status", time.Hour); err != nil {
		t.Fatalf("first expiry: %v", err)
	}
	if err := engine.ExpireNotice("status", 20*time.Millisecond); err != nil {
		t.Fatalf("second expiry: %v", err)
	}
	ev := waitEvent(t, engine.C(), time.Second)
	if ev.ID != "status" || ev.Kind != KindNoticeExpire {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if engine.Pending() != 0 {
		t.Fatalf("expected the hour-long expiry to be replaced, pending=%d", engine.Pending())
	}
}

func TestCancelRemovesPendingEvents(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	due := time.Now().Add(40 * time.Millisecond)
	_ = engine.Schedule(Event{ID: "a", Kind: KindNoticeExpire, DueAt: due})
	_ = engine.Schedule(Event{ID: "b", Kind: KindNoticeExpire, DueAt: due})
	if n := engine.Cancel("a"); n != 1 {
		t.Fatalf("expected 1 cancelled, got %d", n)
	}
	if ev := waitEvent(t, engine.C(), time.Second); ev.ID != "b" {
		t.Fatalf("expected only b to fire, got %s", ev.ID)
	}
	select {
	case ev := <-engine.C():
		t.Fatalf("unexpected extra event %+v", ev)
	case <-time.After(80 * time.Millisecond):
	}
}

func TestScheduleRolloverTargetsNextMidnight(t *testing.T) {
	engine := NewEngine(1)
	fixed := time.Date(2026, 2, 9, 23, 15, 0, 0, time.Local)
	engine.now = func() time.Time { return fixed }
	if err := engine.ScheduleRollover(); err != nil {
		t.Fatalf("schedule rollover: %v", err)
	}
	if err := engine.ScheduleRollover(); err != nil {
		t.Fatalf("reschedule rollover: %v", err)
	}
	if engine.Pending() != 1 {
		t.Fatalf("expected a single pending rollover, got %d", engine.Pending())
	}
	next, _ := engine.peek()
	want := time.Date(2026, 2, 10, 0, 0, 0, 0, time.Local)
	if next.Kind != KindDayRollover || !next.DueAt.Equal(want) {
		t.Fatalf("unexpected rollover event: %+v", next)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	due := time.Now().Add(20 * time.Millisecond)
	for range 25 {
		if err := engine.Schedule(Event{ID: "evt", Kind: KindNoticeExpire, DueAt: due}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidation(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Event{ID: "bad"}); !errors.Is(err, ErrInvalidDueTime) {
		t.Fatalf("expected ErrInvalidDueTime, got %v", err)
	}
	engine.Stop()
	if err := engine.Schedule(Event{ID: "late", DueAt: time.Now()}); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func waitEvent(t *testing.T, ch <-chan Event, timeout time.Duration) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return Event{}
	}
}
