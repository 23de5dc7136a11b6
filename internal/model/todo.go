package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	MaxTodosPerDay   = 5
	MaxContentLength = 100
)

type TodoState string

const (
	TodoStateOpen      TodoState = "open"
	TodoStateCompleted TodoState = "completed"
	TodoStateLocked    TodoState = "locked"
)

type TodoItem struct {
	ID         string    `json:"id"`
	Date       string    `json:"date"`
	Content    string    `json:"content"`
	Completed  bool      `json:"completed"`
	Locked     bool      `json:"locked,omitempty"`
	RecordedAt time.Time `json:"timestamp"`
}

// State collapses the two flags. Locked wins because the lock is only ever
// set together with completion.
func (t TodoItem) State() TodoState {
	switch {
	case t.Locked:
		return TodoStateLocked
	case t.Completed:
		return TodoStateCompleted
	default:
		return TodoStateOpen
	}
}

type todoContent struct {
	Content string `validate:"required,max=100"`
}

var validate = validator.New()

// NormalizeContent trims raw todo text and checks it against the content
// rules, returning the trimmed text.
func NormalizeContent(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	err := validate.Struct(todoContent{Content: trimmed})
	if err == nil {
		return trimmed, nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		switch fieldErrs[0].Tag() {
		case "required":
			return "", ValidationError("todo content must not be empty")
		case "max":
			return "", ValidationError(fmt.Sprintf("todo content must not exceed %d characters", MaxContentLength))
		}
	}
	return "", ValidationError(err.Error())
}

type DayStats struct {
	Date      string
	Total     int
	Completed int
}
