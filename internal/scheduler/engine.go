package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidDueTime = errors.New("scheduler: invalid due time")
	ErrStopped        = errors.New("scheduler: engine stopped")
)

type Kind string

const (
	// KindNoticeExpire dismisses the toast identified by the event ID.
	KindNoticeExpire Kind = "notice-expire"
	// KindDayRollover fires at local midnight so "today" can move forward.
	KindDayRollover Kind = "day-rollover"
)

type Event struct {
	ID    string
	Kind  Kind
	DueAt time.Time
}

type timerHeap []Event

func (h timerHeap) Len() int           { return len(h) }
func (h timerHeap) Less(i, j int) bool { return h[i].DueAt.Before(h[j].DueAt) }
func (h timerHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *timerHeap) Push(x any) {
	*h = append(*h, x.(Event))
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	ev := old[n-1]
	*h = old[:n-1]
	return ev
}

// Engine delivers timed UI events on a buffered channel. Delivery never
// blocks: if the consumer lags, events are dropped and counted.
type Engine struct {
	mu      sync.Mutex
	pending timerHeap
	out     chan Event
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	now     func() time.Time
	started bool
	stopped bool
	dropped atomic.Uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		out:    make(chan Event, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
		now:    time.Now,
	}
}

func (e *Engine) C() <-chan Event {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.pending)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.stopped = true
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Schedule(ev Event) error {
	if ev.DueAt.IsZero() {
		return ErrInvalidDueTime
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}
	heap.Push(&e.pending, ev)
	e.signalWakeup()
	return nil
}

// Cancel drops every pending event with the given ID and reports how many
// were removed.
func (e *Engine) Cancel(id string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	kept := e.pending[:0]
	removed := 0
	for _, ev := range e.pending {
		if ev.ID == id {
			removed++
			continue
		}
		kept = append(kept, ev)
	}
	e.pending = kept
	if removed > 0 {
		heap.Init(&e.pending)
		e.signalWakeup()
	}
	return removed
}

// ExpireNotice replaces any pending expiry for id with one due after d.
func (e *Engine) ExpireNotice(id string, d time.Duration) error {
	e.Cancel(id)
	return e.Schedule(Event{ID: id, Kind: KindNoticeExpire, DueAt: e.now().Add(d)})
}

// ScheduleRollover arms the next day-rollover event.
func (e *Engine) ScheduleRollover() error {
	const id = "day-rollover"
	e.Cancel(id)
	return e.Schedule(Event{ID: id, Kind: KindDayRollover, DueAt: NextMidnight(e.now())})
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

func (e *Engine) Dropped() uint64 {
	return e.dropped.Load()
}

// NextMidnight is the start of the local day after t.
func NextMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, ok := e.peek()
		if !ok {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		timer = resetTimer(timer, max(time.Until(next.DueAt), 0))
		select {
		case <-timer.C:
			for _, ev := range e.popDue(e.now()) {
				select {
				case e.out <- ev:
				default:
					e.dropped.Add(1)
				}
			}
		case <-e.wakeup:
		case <-e.stopCh:
			stopTimer(timer)
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (Event, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.pending) == 0 {
		return Event{}, false
	}
	return e.pending[0], true
}

func (e *Engine) popDue(now time.Time) []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	var due []Event
	for len(e.pending) > 0 && !e.pending[0].DueAt.After(now) {
		due = append(due, heap.Pop(&e.pending).(Event))
	}
	return due
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
