package engine

import (
	"errors"
	"fmt"

	"github.com/amonks/hypertask/task"
)

var (
	// ErrMissingWriter is returned when a mutating verb runs without a TaskWriter.
	ErrMissingWriter = errors.New("engine has no task writer")

	// ErrMissingRemover is returned when Delete runs without a TaskRemover.
	ErrMissingRemover = errors.New("engine has no task remover")
)

// TaskError reports a failure to persist or remove one task. Update and
// Delete keep going after a TaskError and join them into their result error.
type TaskError struct {
	ID  task.ID
	Op  string
	Err error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("%s task %s: %v", e.Op, e.ID, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}
