package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/sandeepkv93/moodcal/internal/logging"
	"github.com/sandeepkv93/moodcal/internal/model"
)

// TodoStore persists date -> ordered todo list as one JSON object under
// TodoKey. It enforces no lifecycle rules; see package todos for those.
type TodoStore struct {
	kv  KV
	log *logging.Logger
	now func() time.Time
}

func NewTodoStore(kv KV, logger *logging.Logger) *TodoStore {
	return &TodoStore{
		kv:  kv,
		log: logging.OrNop(logger).WithComponent("todo-store"),
		now: time.Now,
	}
}

func (s *TodoStore) WithClock(now func() time.Time) *TodoStore {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *TodoStore) load(ctx context.Context) (map[string][]model.TodoItem, error) {
	raw, ok, err := s.kv.Get(ctx, TodoKey)
	if err != nil {
		return nil, fmt.Errorf("read todo data: %w", err)
	}
	if !ok || raw == "" {
		return map[string][]model.TodoItem{}, nil
	}
	var all map[string][]model.TodoItem
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		return nil, fmt.Errorf("decode todo data: %w", err)
	}
	if all == nil {
		all = map[string][]model.TodoItem{}
	}
	return all, nil
}

func (s *TodoStore) save(ctx context.Context, all map[string][]model.TodoItem) error {
	payload, err := json.Marshal(all)
	if err != nil {
		s.log.Errorw("encode todo data failed", "error", err)
		return model.StorageError("saving todo data failed, check available storage", err)
	}
	if err := s.kv.Set(ctx, TodoKey, string(payload)); err != nil {
		s.log.Errorw("write todo data failed", "error", err)
		return model.StorageError("saving todo data failed, check available storage", err)
	}
	return nil
}

// All returns every date's list. Unreadable data degrades to an empty map.
func (s *TodoStore) All(ctx context.Context) map[string][]model.TodoItem {
	all, err := s.load(ctx)
	if err != nil {
		s.log.Errorw("read todo data failed", "error", err)
		return map[string][]model.TodoItem{}
	}
	return all
}

// ByDate returns a copy of the list for date, empty when absent or unreadable.
func (s *TodoStore) ByDate(ctx context.Context, date string) []model.TodoItem {
	items := s.All(ctx)[date]
	out := make([]model.TodoItem, len(items))
	copy(out, items)
	return out
}

// Load is the strict variant of ByDate for read-modify-write callers: it
// reports storage failures instead of pretending the list is empty.
func (s *TodoStore) Load(ctx context.Context, date string) ([]model.TodoItem, error) {
	all, err := s.load(ctx)
	if err != nil {
		s.log.Errorw("todo data unreadable", "date", date, "error", err)
		return nil, model.StorageError("todo data could not be read", err)
	}
	items := all[date]
	out := make([]model.TodoItem, len(items))
	copy(out, items)
	return out, nil
}

// SaveByDate replaces the list for date. An empty list removes the date key.
func (s *TodoStore) SaveByDate(ctx context.Context, date string, todos []model.TodoItem) error {
	all, err := s.load(ctx)
	if err != nil {
		s.log.Errorw("todo data unreadable, refusing write", "date", date, "error", err)
		return model.StorageError("todo data could not be read", err)
	}
	if len(todos) == 0 {
		delete(all, date)
	} else {
		stored := make([]model.TodoItem, len(todos))
		copy(stored, todos)
		all[date] = stored
	}
	return s.save(ctx, all)
}

func (s *TodoStore) CompletedCount(ctx context.Context, date string) int {
	count := 0
	for _, item := range s.ByDate(ctx, date) {
		if item.Completed {
			count++
		}
	}
	return count
}

// Dates lists the dates that currently carry todos, ascending.
func (s *TodoStore) Dates(ctx context.Context) []string {
	all := s.All(ctx)
	out := make([]string, 0, len(all))
	for d := range all {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// RecentStats reports total and completed counts for the last days days,
// oldest first.
func (s *TodoStore) RecentStats(ctx context.Context, days int) []model.DayStats {
	all := s.All(ctx)
	dates := model.LastNDates(s.now(), days)
	out := make([]model.DayStats, 0, len(dates))
	for _, d := range dates {
		stat := model.DayStats{Date: d, Total: len(all[d])}
		for _, item := range all[d] {
			if item.Completed {
				stat.Completed++
			}
		}
		out = append(out, stat)
	}
	return out
}

// Cleanup drops every date older than keepDays before today and returns how
// many dates were removed.
func (s *TodoStore) Cleanup(ctx context.Context, keepDays int) (int, error) {
	all, err := s.load(ctx)
	if err != nil {
		return 0, model.StorageError("todo data could not be read", err)
	}
	cutoff := model.FormatDate(s.now().AddDate(0, 0, -keepDays))
	removed := 0
	for d := range all {
		if d < cutoff {
			delete(all, d)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	if err := s.save(ctx, all); err != nil {
		return 0, err
	}
	s.log.Infow("old todos cleaned up", "removed_dates", removed, "cutoff", cutoff)
	return removed, nil
}
