package journal

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/moodcal/internal/model"
	"github.com/sandeepkv93/moodcal/internal/storage"
	"github.com/sandeepkv93/moodcal/internal/todos"
	"github.com/sandeepkv93/moodcal/internal/unlock"
)

const day = "2026-02-09"

type harness struct {
	kv      *storage.MemoryKV
	journal *Service
	todos   *todos.Controller
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	now := func() time.Time { return time.Date(2026, 2, 9, 21, 0, 0, 0, time.Local) }
	kv := storage.NewMemoryKV()
	todoStore := storage.NewTodoStore(kv, nil).WithClock(now)
	engine := unlock.NewEngine(todoStore)
	return &harness{
		kv:      kv,
		journal: NewService(storage.NewMoodStore(kv, nil).WithClock(now), engine, nil),
		todos:   todos.NewController(todoStore, engine, nil).WithClock(now),
	}
}

func (h *harness) complete(t *testing.T, n int) {
	t.Helper()
	for range n {
		item, err := h.todos.Add(t.Context(), day, "task")
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if _, err := h.todos.ConfirmCompletion(t.Context(), day, item.ID); err != nil {
			t.Fatalf("confirm: %v", err)
		}
	}
}

func TestSelectBaseMoodWithoutTodos(t *testing.T) {
	h := newHarness(t)
	rec, err := h.journal.SelectMood(t.Context(), day, model.MoodAngry)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if rec.Score != 3 || rec.Date != day {
		t.Fatalf("unexpected record: %+v", rec)
	}
	got, ok := h.journal.Mood(t.Context(), day)
	if !ok || got.Mood != model.MoodAngry {
		t.Fatalf("expected stored mood, got %+v ok=%v", got, ok)
	}
}

func TestSelectLockedMoodIsRejectedWithoutWrite(t *testing.T) {
	h := newHarness(t)
	_, err := h.journal.SelectMood(t.Context(), day, model.MoodPleasure)
	if !errors.Is(err, model.ErrValidation) || !strings.Contains(err.Error(), "1 more todo") {
		t.Fatalf("expected next-rung validation error, got: %v", err)
	}
	if _, ok := h.kv.Raw(storage.MoodKey); ok {
		t.Fatal("expected nothing written for a rejected mood")
	}
}

func TestSuperMoodAfterFiveCompletions(t *testing.T) {
	h := newHarness(t)
	h.complete(t, 4)
	if _, err := h.journal.SelectMood(t.Context(), day, model.SuperMood); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected super mood locked at 4, got: %v", err)
	}
	h.complete(t, 1)
	rec, err := h.journal.SelectMood(t.Context(), day, model.SuperMood)
	if err != nil || rec.Score != 9 {
		t.Fatalf("expected super mood recorded, got %+v err=%v", rec, err)
	}
}

func TestSelectRejectsUnknownMoodAndBadDate(t *testing.T) {
	h := newHarness(t)
	if _, err := h.journal.SelectMood(t.Context(), day, model.MoodTag("meh")); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
	if _, err := h.journal.SelectMood(t.Context(), "02/09/2026", model.MoodCry); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected ErrValidation for date, got: %v", err)
	}
}

func TestClearMood(t *testing.T) {
	h := newHarness(t)
	if _, err := h.journal.SelectMood(t.Context(), day, model.MoodSad); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := h.journal.ClearMood(t.Context(), day); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := h.journal.Mood(t.Context(), day); ok {
		t.Fatal("expected mood cleared")
	}
}

func TestTrendAverageSkipsPlaceholders(t *testing.T) {
	h := newHarness(t)
	if _, err := h.journal.SelectMood(t.Context(), "2026-02-08", model.MoodCry); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := h.journal.SelectMood(t.Context(), day, model.MoodRelax); err != nil {
		t.Fatalf("select: %v", err)
	}
	trend := h.journal.Trend(t.Context(), 7)
	if len(trend.Points) != 7 || trend.Recorded != 2 || trend.Average != 2.5 {
		t.Fatalf("unexpected trend: %+v", trend)
	}
}

func TestMonthSummaryCoversEveryDay(t *testing.T) {
	h := newHarness(t)
	if _, err := h.journal.SelectMood(t.Context(), "2026-02-28", model.MoodHappy); err == nil {
		t.Fatal("expected happy to be locked without completions on that date")
	}
	if _, err := h.journal.SelectMood(t.Context(), "2026-02-28", model.MoodSad); err != nil {
		t.Fatalf("select: %v", err)
	}
	days := h.journal.MonthSummary(t.Context(), 2026, time.February)
	if len(days) != 28 {
		t.Fatalf("expected 28 days, got %d", len(days))
	}
	last := days[27]
	if last.Date != "2026-02-28" || last.Day != 28 || !last.Set || last.Record.Mood != model.MoodSad {
		t.Fatalf("unexpected last day: %+v", last)
	}
	if days[0].Set {
		t.Fatalf("expected first day unset, got %+v", days[0])
	}
}
