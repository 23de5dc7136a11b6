package unlock

import (
	"context"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sandeepkv93/moodcal/internal/model"
)

type fixedCounter map[string]int

func (c fixedCounter) CompletedCount(_ context.Context, date string) int {
	return c[date]
}

const day = "2026-02-09"

func engineWith(completed int) *Engine {
	return NewEngine(fixedCounter{day: completed}).WithRand(rand.New(rand.NewPCG(1, 2)))
}

func TestStatusBaseMoodsOnly(t *testing.T) {
	status := engineWith(0).Status(t.Context(), day)
	if len(status.UnlockedMoods) != 4 {
		t.Fatalf("expected 4 base moods, got %v", status.UnlockedMoods)
	}
	for _, m := range []model.MoodTag{model.MoodCry, model.MoodSad, model.MoodAngry, model.MoodRelax} {
		if !status.Has(m) {
			t.Fatalf("expected %s unlocked", m)
		}
	}
	if status.Has(model.SuperMood) {
		t.Fatal("expected super mood locked with no completions")
	}
}

func TestStatusAllUnlockedAtFive(t *testing.T) {
	e := engineWith(5)
	status := e.Status(t.Context(), day)
	if len(status.UnlockedMoods) != TotalMoods() || TotalMoods() != 9 {
		t.Fatalf("expected all 9 moods, got %v", status.UnlockedMoods)
	}
	if _, ok := e.NextRequirement(t.Context(), day); ok {
		t.Fatal("expected no next requirement once everything is unlocked")
	}
	if hints := e.Hints(t.Context(), day); len(hints) != 0 {
		t.Fatalf("expected no hints, got %v", hints)
	}
}

func TestUnlockSetIsMonotonic(t *testing.T) {
	prev := StatusFor(day, 0)
	for c := 1; c <= 7; c++ {
		next := StatusFor(day, c)
		for _, m := range prev.UnlockedMoods {
			if !next.Has(m) {
				t.Fatalf("mood %s lost going from %d to %d completions", m, c-1, c)
			}
		}
		if c <= 5 && len(next.UnlockedMoods) != len(prev.UnlockedMoods)+1 {
			t.Fatalf("expected one new mood at %d completions, got %v", c, next.UnlockedMoods)
		}
		prev = next
	}
}

func TestValidateAgreesWithUnlockSet(t *testing.T) {
	for c := 0; c <= 5; c++ {
		e := engineWith(c)
		for _, m := range model.AllMoods() {
			v := e.ValidateMoodSelection(t.Context(), day, m)
			if v.Valid != e.IsMoodUnlocked(t.Context(), day, m) {
				t.Fatalf("validation disagrees for %s at %d completions", m, c)
			}
			if !v.Valid && v.Reason == "" {
				t.Fatalf("expected a reason for rejecting %s", m)
			}
		}
	}
}

func TestValidateNextRungReason(t *testing.T) {
	e := engineWith(1)
	v := e.ValidateMoodSelection(t.Context(), day, model.MoodHappy)
	if v.Valid || v.Reason != `the "Happy" mood is not unlocked yet` {
		t.Fatalf("unexpected reason: %q", v.Reason)
	}
	v = e.ValidateMoodSelection(t.Context(), day, model.MoodSurprise)
	if v.Valid || !strings.Contains(v.Reason, "1 more todo ") || !strings.Contains(v.Reason, "Surprised") {
		t.Fatalf("unexpected next-rung reason: %q", v.Reason)
	}
}

func TestNextRequirementAndProgress(t *testing.T) {
	e := engineWith(3)
	next, ok := e.NextRequirement(t.Context(), day)
	if !ok || next.Mood != model.MoodExcited || next.Required != 4 || next.Current != 3 || next.Remaining() != 1 {
		t.Fatalf("unexpected next requirement: %+v ok=%v", next, ok)
	}
	p := e.Progress(t.Context(), day)
	if p.Completed != 3 || p.Total != 5 || p.Percentage != 60 || p.Unlocked != 7 || p.Available != 9 {
		t.Fatalf("unexpected progress: %+v", p)
	}
	hints := e.Hints(t.Context(), day)
	if len(hints) != 1 || hints[0].Progress != "3/4" {
		t.Fatalf("unexpected hints: %+v", hints)
	}
}

func TestRandomRewardTodoSkipsUsedContent(t *testing.T) {
	e := engineWith(0)
	library := RewardTodos()
	var existing []model.TodoItem
	for _, content := range library[:9] {
		existing = append(existing, model.TodoItem{Content: content})
	}
	for range 20 {
		if got := e.RandomRewardTodo(existing); got != library[9] {
			t.Fatalf("expected the only unused reward, got %q", got)
		}
	}

	existing = append(existing, model.TodoItem{Content: library[9]})
	for range 20 {
		if got := e.RandomRewardTodo(existing); !slices.Contains(library, got) {
			t.Fatalf("expected a library reward, got %q", got)
		}
	}
}

func TestRandomRewardTodoAvoidsFourExistingItems(t *testing.T) {
	e := engineWith(0)
	library := RewardTodos()
	existing := []model.TodoItem{
		{Content: library[0]},
		{Content: library[3]},
		{Content: library[6]},
		{Content: "walk the dog"},
	}
	for range 100 {
		got := e.RandomRewardTodo(existing)
		if !slices.Contains(library, got) {
			t.Fatalf("expected a library reward, got %q", got)
		}
		for _, item := range existing {
			if item.Content == got {
				t.Fatalf("picked %q, which is already in the list", got)
			}
		}
	}
}

func TestRewardLibraryFitsContentLimit(t *testing.T) {
	library := RewardTodos()
	if len(library) != 10 {
		t.Fatalf("expected 10 rewards, got %d", len(library))
	}
	for _, content := range library {
		if n := utf8.RuneCountInString(content); n == 0 || n > model.MaxContentLength {
			t.Fatalf("reward %q has %d characters", content, n)
		}
	}
}
