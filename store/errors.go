package store

import (
	"errors"
	"fmt"
)

// Domain says whether a failure concerns the store as a whole or one task.
type Domain int

const (
	// DomainContext covers the storage location, e.g. a missing data directory.
	DomainContext Domain = iota
	// DomainTask covers a single task record.
	DomainTask
)

func (d Domain) String() string {
	if d == DomainTask {
		return "task"
	}
	return "context"
}

// Action says whether a failure happened while reading or writing.
type Action int

const (
	// ActionRead marks a failed read.
	ActionRead Action = iota
	// ActionWrite marks a failed write.
	ActionWrite
)

func (a Action) String() string {
	if a == ActionWrite {
		return "write"
	}
	return "read"
}

// Error is a store failure tagged with its domain and action.
type Error struct {
	Domain Domain
	Action Action
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %s", e.Domain, e.Action, e.Msg)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Domain, e.Action, e.Msg, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(domain Domain, action Action, err error, format string, args ...any) *Error {
	return &Error{Domain: domain, Action: action, Msg: fmt.Sprintf(format, args...), Err: err}
}

var (
	// ErrTaskNotFound is returned when no stored task has the given ID or prefix.
	ErrTaskNotFound = errors.New("task not found")

	// ErrAmbiguousIDPrefix is returned when a prefix matches several stored tasks.
	ErrAmbiguousIDPrefix = errors.New("ambiguous task ID prefix")

	// ErrInvalidID is returned when a task ID cannot be used as a file name.
	ErrInvalidID = errors.New("invalid task ID")
)
