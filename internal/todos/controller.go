package todos

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/moodcal/internal/logging"
	"github.com/sandeepkv93/moodcal/internal/model"
	"github.com/sandeepkv93/moodcal/internal/storage"
	"github.com/sandeepkv93/moodcal/internal/unlock"
)

// errUnchanged lets a mutation finish without writing.
var errUnchanged = errors.New("unchanged")

// UnlockEvent is pushed to subscribers after every successful mutation.
type UnlockEvent struct {
	Date   string
	Status unlock.Status
	Newly  []model.MoodTag
}

type LimitInfo struct {
	Current int
	Max     int
	CanAdd  bool
}

// Controller owns the todo lifecycle for a date: the daily cap, content
// rules and the completion lock. Every check runs before anything is written.
type Controller struct {
	store  *storage.TodoStore
	engine *unlock.Engine
	log    *logging.Logger
	now    func() time.Time
	newID  func() string

	mu        sync.Mutex
	listeners map[int]func(UnlockEvent)
	nextSub   int
}

func NewController(store *storage.TodoStore, engine *unlock.Engine, logger *logging.Logger) *Controller {
	return &Controller{
		store:     store,
		engine:    engine,
		log:       logging.OrNop(logger).WithComponent("todos"),
		now:       time.Now,
		newID:     func() string { return "todo_" + uuid.NewString() },
		listeners: map[int]func(UnlockEvent){},
	}
}

func (c *Controller) WithClock(now func() time.Time) *Controller {
	if now != nil {
		c.now = now
	}
	return c
}

func (c *Controller) WithIDGenerator(gen func() string) *Controller {
	if gen != nil {
		c.newID = gen
	}
	return c
}

// Subscribe registers fn for unlock events and returns a cancel func.
// Listeners run synchronously on the mutating goroutine.
func (c *Controller) Subscribe(fn func(UnlockEvent)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.listeners[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *Controller) List(ctx context.Context, date string) []model.TodoItem {
	return c.store.ByDate(ctx, date)
}

func (c *Controller) CompletedCount(ctx context.Context, date string) int {
	return c.store.CompletedCount(ctx, date)
}

func (c *Controller) CanAddMore(ctx context.Context, date string) bool {
	return len(c.store.ByDate(ctx, date)) < model.MaxTodosPerDay
}

func (c *Controller) LimitInfo(ctx context.Context, date string) LimitInfo {
	current := len(c.store.ByDate(ctx, date))
	return LimitInfo{Current: current, Max: model.MaxTodosPerDay, CanAdd: current < model.MaxTodosPerDay}
}

func (c *Controller) Add(ctx context.Context, date, content string) (model.TodoItem, error) {
	if err := model.ValidateDate(date); err != nil {
		return model.TodoItem{}, err
	}
	trimmed, err := model.NormalizeContent(content)
	if err != nil {
		return model.TodoItem{}, err
	}

	var added model.TodoItem
	err = c.mutate(ctx, date, func(items []model.TodoItem) ([]model.TodoItem, error) {
		if len(items) >= model.MaxTodosPerDay {
			return nil, model.ValidationError("you can add at most 5 todos per day")
		}
		added = model.TodoItem{
			ID:         c.newID(),
			Date:       date,
			Content:    trimmed,
			RecordedAt: c.now(),
		}
		return append(items, added), nil
	})
	if err != nil {
		return model.TodoItem{}, err
	}
	c.log.WithDate(date).Infow("todo added", "id", added.ID)
	return added, nil
}

// AddReward adds a suggestion from the reward library that the date does not
// already contain.
func (c *Controller) AddReward(ctx context.Context, date string) (model.TodoItem, error) {
	return c.Add(ctx, date, c.engine.RandomRewardTodo(c.store.ByDate(ctx, date)))
}

func (c *Controller) Edit(ctx context.Context, date, id, content string) (model.TodoItem, error) {
	var edited model.TodoItem
	err := c.mutate(ctx, date, func(items []model.TodoItem) ([]model.TodoItem, error) {
		idx, err := find(items, id)
		if err != nil {
			return nil, err
		}
		if items[idx].Locked {
			return nil, model.LockedError("completed todos are locked and cannot be edited")
		}
		trimmed, err := model.NormalizeContent(content)
		if err != nil {
			return nil, err
		}
		items[idx].Content = trimmed
		items[idx].RecordedAt = c.now()
		edited = items[idx]
		return items, nil
	})
	return edited, err
}

func (c *Controller) ToggleCompletion(ctx context.Context, date, id string) (model.TodoItem, error) {
	var toggled model.TodoItem
	err := c.mutate(ctx, date, func(items []model.TodoItem) ([]model.TodoItem, error) {
		idx, err := find(items, id)
		if err != nil {
			return nil, err
		}
		if items[idx].Locked && items[idx].Completed {
			return nil, model.LockedError("completed todos are locked and cannot be reopened")
		}
		items[idx].Completed = !items[idx].Completed
		items[idx].RecordedAt = c.now()
		toggled = items[idx]
		return items, nil
	})
	return toggled, err
}

// ConfirmCompletion marks an item completed and locks it in one write. It is
// the only way an item becomes locked. Confirming a locked item is a no-op.
func (c *Controller) ConfirmCompletion(ctx context.Context, date, id string) (model.TodoItem, error) {
	var confirmed model.TodoItem
	err := c.mutate(ctx, date, func(items []model.TodoItem) ([]model.TodoItem, error) {
		idx, err := find(items, id)
		if err != nil {
			return nil, err
		}
		confirmed = items[idx]
		if items[idx].Locked {
			return nil, errUnchanged
		}
		items[idx].Completed = true
		items[idx].Locked = true
		items[idx].RecordedAt = c.now()
		confirmed = items[idx]
		return items, nil
	})
	if err != nil {
		return model.TodoItem{}, err
	}
	c.log.WithDate(date).Infow("todo confirmed", "id", id)
	return confirmed, nil
}

func (c *Controller) Delete(ctx context.Context, date, id string) error {
	return c.mutate(ctx, date, func(items []model.TodoItem) ([]model.TodoItem, error) {
		idx, err := find(items, id)
		if err != nil {
			return nil, err
		}
		if items[idx].Locked {
			return nil, model.LockedError("completed todos are locked and cannot be deleted")
		}
		return append(items[:idx], items[idx+1:]...), nil
	})
}

// mutate runs a read-modify-write of the date's list under the controller
// lock and notifies subscribers once the write has succeeded.
func (c *Controller) mutate(ctx context.Context, date string, apply func([]model.TodoItem) ([]model.TodoItem, error)) error {
	c.mu.Lock()
	items, err := c.store.Load(ctx, date)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	before := completed(items)
	next, err := apply(items)
	if errors.Is(err, errUnchanged) {
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if err := c.store.SaveByDate(ctx, date, next); err != nil {
		c.mu.Unlock()
		return err
	}
	listeners := make([]func(UnlockEvent), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	c.notify(ctx, date, before, listeners)
	return nil
}

func (c *Controller) notify(ctx context.Context, date string, before int, listeners []func(UnlockEvent)) {
	status := c.engine.Status(ctx, date)
	prev := unlock.StatusFor(date, before)
	var newly []model.MoodTag
	for _, m := range status.UnlockedMoods {
		if !prev.Has(m) {
			newly = append(newly, m)
		}
	}
	if len(newly) > 0 {
		c.log.WithDate(date).Infow("moods unlocked", "moods", newly, "completed", status.CompletedTodos)
	}
	event := UnlockEvent{Date: date, Status: status, Newly: newly}
	for _, fn := range listeners {
		fn(event)
	}
}

func find(items []model.TodoItem, id string) (int, error) {
	for i, item := range items {
		if item.ID == id {
			return i, nil
		}
	}
	return -1, model.NotFoundError("todo not found")
}

func completed(items []model.TodoItem) int {
	n := 0
	for _, item := range items {
		if item.Completed {
			n++
		}
	}
	return n
}
