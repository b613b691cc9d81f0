package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWeights is matched by every weight validation failure.
	ErrInvalidWeights = errors.New("invalid weights")
	// ErrMalformedTask is matched by every task field that cannot be parsed.
	ErrMalformedTask = errors.New("malformed task")
)

// WeightsError carries a caller-facing weight validation message.
type WeightsError struct {
	Message string
}

func (e *WeightsError) Error() string { return e.Message }

// Is reports ErrInvalidWeights as the error kind.
func (e *WeightsError) Is(target error) bool { return target == ErrInvalidWeights }

func weightsErrorf(format string, args ...any) error {
	return &WeightsError{Message: fmt.Sprintf(format, args...)}
}

// MalformedTaskError identifies the task and field that failed to parse.
type MalformedTaskError struct {
	Index  int
	TaskID TaskID
	Field  string
	Value  string
	Err    error
}

func (e *MalformedTaskError) Error() string {
	return fmt.Sprintf("task %s (position %d): invalid %s %q", e.TaskID, e.Index, e.Field, e.Value)
}

// Is reports ErrMalformedTask as the error kind.
func (e *MalformedTaskError) Is(target error) bool { return target == ErrMalformedTask }

func (e *MalformedTaskError) Unwrap() error { return e.Err }
