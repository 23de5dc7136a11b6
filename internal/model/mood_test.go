package model

import (
	"errors"
	"testing"
	"time"
)

func TestMoodScoresStrictlyIncrease(t *testing.T) {
	moods := AllMoods()
	if len(moods) != 9 {
		t.Fatalf("expected 9 mood tags, got %d", len(moods))
	}
	for i, m := range moods {
		if m.Score() != i+1 {
			t.Fatalf("expected %s to score %d, got %d", m, i+1, m.Score())
		}
		if m.Config().Label == "" || m.Config().Color == "" {
			t.Fatalf("expected label and color for %s: %+v", m, m.Config())
		}
	}
	if !moods[len(moods)-1].IsSuper() {
		t.Fatalf("expected highest tag to be the super mood, got %s", moods[len(moods)-1])
	}
}

func TestParseMoodTag(t *testing.T) {
	got, err := ParseMoodTag("  Happy ")
	if err != nil || got != MoodHappy {
		t.Fatalf("expected happy, got %q err=%v", got, err)
	}
	_, err = ParseMoodTag("grumpy")
	if err == nil || !errors.Is(err, ErrInvalidMood) {
		t.Fatalf("expected ErrInvalidMood, got: %v", err)
	}
}

func TestMoodRecordIsSet(t *testing.T) {
	placeholder := MoodRecord{Date: "2026-02-09", Mood: DefaultMood}
	if placeholder.IsSet() {
		t.Fatal("expected score 0 placeholder to be unset")
	}
	recorded := MoodRecord{Date: "2026-02-09", Mood: MoodCry, Score: MoodCry.Score()}
	if !recorded.IsSet() {
		t.Fatal("expected scored record to be set")
	}
}

func TestLastNDatesOldestFirst(t *testing.T) {
	today := time.Date(2026, 3, 2, 15, 4, 0, 0, time.UTC)
	got := LastNDates(today, 3)
	want := []string{"2026-02-28", "2026-03-01", "2026-03-02"}
	if len(got) != len(want) {
		t.Fatalf("unexpected dates: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected dates: %v", got)
		}
	}
	if LastNDates(today, 0) != nil {
		t.Fatal("expected nil for n=0")
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	if _, err := ParseDate("2026-02-09"); err != nil {
		t.Fatalf("expected valid date, got: %v", err)
	}
	err := ValidateDate("09/02/2026")
	if err == nil || !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
}
