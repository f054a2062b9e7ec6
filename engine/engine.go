// Package engine dispatches the hypertask verbs over a stream of stored tasks.
//
// The engine holds no state between calls. Persistence, time and ID
// generation come from the capabilities on Engine; side effects such as hooks
// belong to the caller, typically by wrapping the TaskWriter.
package engine

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/amonks/hypertask/task"
)

// Tasks is a single-pass sequence of stored tasks. Each element is either a
// task or the error that prevented loading it.
type Tasks = iter.Seq2[task.Task, error]

// TaskWriter durably stores a task keyed by its ID.
type TaskWriter interface {
	Put(t task.Task) error
}

// TaskRemover deletes a stored task.
type TaskRemover interface {
	Remove(id task.ID) error
}

// Engine runs verbs against injected capabilities.
type Engine struct {
	Clock   task.Clock
	IDs     task.IDSource
	Writer  TaskWriter
	Remover TaskRemover

	// Logger receives debug and warning records. Nil discards them.
	Logger *slog.Logger
}

// Run executes verb against tasks and returns the tasks it produced, read,
// updated or deleted.
//
// A failure while loading tasks aborts the verb before anything is written.
// Update and Delete are best-effort per task: every matching task is
// attempted, the tasks that succeeded are returned, and the failures are
// joined into the error as *TaskError values.
func (e Engine) Run(verb Verb, tasks Tasks) ([]task.Task, error) {
	e.logger().Debug("run verb", "verb", Name(verb))
	return VisitVerb(verb, runner{engine: e, tasks: tasks})
}

func (e Engine) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

type runner struct {
	engine Engine
	tasks  Tasks
}

func (r runner) Create(v Create) ([]task.Task, error) {
	if r.engine.Writer == nil {
		return nil, ErrMissingWriter
	}

	now := r.engine.Clock.Now()
	created := task.Generate(task.ClockFunc(func() time.Time { return now }), r.engine.IDs)
	created.ApplyMutations(v.Mutations, now)

	if err := r.engine.Writer.Put(created); err != nil {
		return nil, &TaskError{ID: created.ID, Op: "create", Err: err}
	}
	r.engine.logger().Debug("created task", "id", created.ID)

	return []task.Task{created}, nil
}

func (r runner) Read(v Read) ([]task.Task, error) {
	return r.filter(v.Queries)
}

func (r runner) List(List) ([]task.Task, error) {
	var all []task.Task
	for t, err := range r.tasks {
		if err != nil {
			return nil, fmt.Errorf("load tasks: %w", err)
		}
		all = append(all, t)
	}
	return all, nil
}

func (r runner) Update(v Update) ([]task.Task, error) {
	if r.engine.Writer == nil {
		return nil, ErrMissingWriter
	}

	matches, err := r.filter(v.Queries)
	if err != nil {
		return nil, err
	}

	now := r.engine.Clock.Now()
	updated := make([]task.Task, 0, len(matches))
	var errs []error
	for _, t := range matches {
		t.ApplyMutations(v.Mutations, now)
		if err := r.engine.Writer.Put(t); err != nil {
			r.engine.logger().Warn("update failed", "id", t.ID, "error", err)
			errs = append(errs, &TaskError{ID: t.ID, Op: "update", Err: err})
			continue
		}
		updated = append(updated, t)
	}

	return updated, errors.Join(errs...)
}

func (r runner) Delete(v Delete) ([]task.Task, error) {
	if r.engine.Remover == nil {
		return nil, ErrMissingRemover
	}

	matches, err := r.filter(v.Queries)
	if err != nil {
		return nil, err
	}

	deleted := make([]task.Task, 0, len(matches))
	var errs []error
	for _, t := range matches {
		if err := r.engine.Remover.Remove(t.ID); err != nil {
			r.engine.logger().Warn("delete failed", "id", t.ID, "error", err)
			errs = append(errs, &TaskError{ID: t.ID, Op: "delete", Err: err})
			continue
		}
		deleted = append(deleted, t)
	}

	return deleted, errors.Join(errs...)
}

// filter loads every task, failing fast on the first load error, and keeps
// the ones satisfying queries in scan order.
func (r runner) filter(queries []task.Query) ([]task.Task, error) {
	var matches []task.Task
	for t, err := range r.tasks {
		if err != nil {
			return nil, fmt.Errorf("load tasks: %w", err)
		}
		if t.SatisfiesQueries(queries) {
			matches = append(matches, t)
		}
	}
	return matches, nil
}
