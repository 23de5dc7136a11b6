package unlock

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/sandeepkv93/moodcal/internal/model"
)

// CompletionCounter reports how many todos are completed on a date.
type CompletionCounter interface {
	CompletedCount(ctx context.Context, date string) int
}

type Status struct {
	Date           string
	CompletedTodos int
	UnlockedMoods  []model.MoodTag
}

func (s Status) Has(mood model.MoodTag) bool {
	return slices.Contains(s.UnlockedMoods, mood)
}

type Requirement struct {
	Mood     model.MoodTag
	Required int
	Current  int
}

func (r Requirement) Remaining() int {
	return r.Required - r.Current
}

type Validation struct {
	Valid  bool
	Reason string
}

type Progress struct {
	Completed  int
	Total      int
	Percentage int
	Unlocked   int
	Available  int
}

type Hint struct {
	Message  string
	Progress string
}

// Engine derives mood eligibility from todo completions. Nothing is cached:
// every call reads the current completed count.
type Engine struct {
	counter CompletionCounter

	mu  sync.Mutex
	rng *rand.Rand
}

func NewEngine(counter CompletionCounter) *Engine {
	return &Engine{counter: counter}
}

// WithRand fixes the random source used by RandomRewardTodo.
func (e *Engine) WithRand(rng *rand.Rand) *Engine {
	e.mu.Lock()
	e.rng = rng
	e.mu.Unlock()
	return e
}

// StatusFor computes the unlock set for a known completed count.
func StatusFor(date string, completed int) Status {
	unlocked := BaseMoods()
	for _, rung := range ladder {
		if completed >= rung.RequiredTodos {
			unlocked = append(unlocked, rung.Mood)
		}
	}
	return Status{Date: date, CompletedTodos: completed, UnlockedMoods: unlocked}
}

// NextRequirementFor returns the first rung not yet reached.
func NextRequirementFor(completed int) (Requirement, bool) {
	for _, rung := range ladder {
		if completed < rung.RequiredTodos {
			return Requirement{Mood: rung.Mood, Required: rung.RequiredTodos, Current: completed}, true
		}
	}
	return Requirement{}, false
}

func (e *Engine) Status(ctx context.Context, date string) Status {
	return StatusFor(date, e.counter.CompletedCount(ctx, date))
}

func (e *Engine) AvailableMoods(ctx context.Context, date string) []model.MoodTag {
	return e.Status(ctx, date).UnlockedMoods
}

func (e *Engine) IsMoodUnlocked(ctx context.Context, date string, mood model.MoodTag) bool {
	return e.Status(ctx, date).Has(mood)
}

func (e *Engine) NextRequirement(ctx context.Context, date string) (Requirement, bool) {
	return NextRequirementFor(e.counter.CompletedCount(ctx, date))
}

// ValidateMoodSelection accepts exactly the moods in the unlock set. A
// rejection of the next rung says how many more completions are needed.
func (e *Engine) ValidateMoodSelection(ctx context.Context, date string, mood model.MoodTag) Validation {
	status := e.Status(ctx, date)
	if status.Has(mood) {
		return Validation{Valid: true}
	}
	if next, ok := NextRequirementFor(status.CompletedTodos); ok && next.Mood == mood {
		return Validation{
			Reason: fmt.Sprintf("complete %s to unlock the %q mood", todoCount(next.Remaining()), mood.Label()),
		}
	}
	return Validation{Reason: fmt.Sprintf("the %q mood is not unlocked yet", mood.Label())}
}

func (e *Engine) Progress(ctx context.Context, date string) Progress {
	status := e.Status(ctx, date)
	return Progress{
		Completed:  status.CompletedTodos,
		Total:      model.MaxTodosPerDay,
		Percentage: int(math.Round(float64(status.CompletedTodos) / float64(model.MaxTodosPerDay) * 100)),
		Unlocked:   len(status.UnlockedMoods),
		Available:  TotalMoods(),
	}
}

// Hints lists what the user can do next to unlock more moods.
func (e *Engine) Hints(ctx context.Context, date string) []Hint {
	next, ok := e.NextRequirement(ctx, date)
	if !ok {
		return nil
	}
	return []Hint{{
		Message:  fmt.Sprintf("complete %s to unlock the %q mood", todoCount(next.Remaining()), next.Mood.Label()),
		Progress: fmt.Sprintf("%d/%d", next.Current, next.Required),
	}}
}

// RandomRewardTodo suggests a reward task whose text is not already among
// existing. Once every suggestion is in use it picks from the full library.
func (e *Engine) RandomRewardTodo(existing []model.TodoItem) string {
	used := make(map[string]bool, len(existing))
	for _, item := range existing {
		used[item.Content] = true
	}
	available := make([]string, 0, len(rewardTodos))
	for _, content := range rewardTodos {
		if !used[content] {
			available = append(available, content)
		}
	}
	if len(available) == 0 {
		return rewardTodos[e.intN(len(rewardTodos))]
	}
	return available[e.intN(len(available))]
}

func (e *Engine) intN(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.rng == nil {
		return rand.IntN(n)
	}
	return e.rng.IntN(n)
}

func todoCount(n int) string {
	if n == 1 {
		return "1 more todo"
	}
	return fmt.Sprintf("%d more todos", n)
}
