package model

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeContentTrims(t *testing.T) {
	got, err := NormalizeContent("  buy milk  ")
	if err != nil {
		t.Fatalf("expected valid content, got error: %v", err)
	}
	if got != "buy milk" {
		t.Fatalf("expected trimmed content, got %q", got)
	}
}

func TestNormalizeContentRejectsEmpty(t *testing.T) {
	_, err := NormalizeContent("   \t ")
	if err == nil || !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
	if err.Error() != "todo content must not be empty" {
		t.Fatalf("unexpected reason: %v", err)
	}
}

func TestNormalizeContentLengthCountsCharacters(t *testing.T) {
	exact := strings.Repeat("界", MaxContentLength)
	if _, err := NormalizeContent(exact); err != nil {
		t.Fatalf("expected %d multibyte characters to pass, got: %v", MaxContentLength, err)
	}
	padded := "  " + strings.Repeat("a", MaxContentLength) + "  "
	if _, err := NormalizeContent(padded); err != nil {
		t.Fatalf("expected surrounding whitespace to be ignored, got: %v", err)
	}
	_, err := NormalizeContent(strings.Repeat("a", MaxContentLength+1))
	if err == nil || !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for long content, got: %v", err)
	}
}

func TestTodoState(t *testing.T) {
	cases := []struct {
		item TodoItem
		want TodoState
	}{
		{TodoItem{}, TodoStateOpen},
		{TodoItem{Completed: true}, TodoStateCompleted},
		{TodoItem{Completed: true, Locked: true}, TodoStateLocked},
	}
	for _, tc := range cases {
		if got := tc.item.State(); got != tc.want {
			t.Fatalf("expected %s, got %s for %+v", tc.want, got, tc.item)
		}
	}
}

func TestErrorUnwrapsKindAndCause(t *testing.T) {
	cause := errors.New("disk full")
	err := StorageError("saving todos failed", cause)
	if !errors.Is(err, ErrStorage) || !errors.Is(err, cause) {
		t.Fatalf("expected error to match kind and cause: %v", err)
	}
	if err.Error() != "saving todos failed" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if errors.Is(LockedError("x"), ErrNotFound) {
		t.Fatal("locked error must not match ErrNotFound")
	}
}
