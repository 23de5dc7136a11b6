package model

import "errors"

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrLocked     = errors.New("locked")
	ErrStorage    = errors.New("storage failure")
)

// Error carries a user-facing reason together with its kind, one of the
// sentinels above, and an optional underlying cause.
type Error struct {
	Kind   error
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

func ValidationError(reason string) error {
	return &Error{Kind: ErrValidation, Reason: reason}
}

func NotFoundError(reason string) error {
	return &Error{Kind: ErrNotFound, Reason: reason}
}

func LockedError(reason string) error {
	return &Error{Kind: ErrLocked, Reason: reason}
}

func StorageError(reason string, cause error) error {
	return &Error{Kind: ErrStorage, Reason: reason, Err: cause}
}
