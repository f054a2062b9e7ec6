// Package store keeps tasks as one JSON file per task in a data directory.
//
// Reads are lazy: Tasks yields each file as it is parsed, and a file that
// cannot be read or parsed is yielded as an *Error instead of a task. Writes
// go through a temp file and a rename while holding an exclusive lock on the
// directory's lock file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/amonks/hypertask/internal/ids"
	"github.com/amonks/hypertask/task"
)

const (
	// TaskFileExt is the extension of task files.
	TaskFileExt = ".json"

	lockFile = ".hypertask.lock"
)

// Store provides access to the tasks in a data directory.
type Store struct {
	dir string
}

// OpenOptions configures how the store is opened.
type OpenOptions struct {
	// CreateIfMissing creates the data directory if it doesn't exist.
	// If false and the directory doesn't exist, Open returns a context error.
	CreateIfMissing bool
}

// Open opens the store rooted at dir.
func Open(dir string, opts OpenOptions) (*Store, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) && opts.CreateIfMissing {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, newError(DomainContext, ActionWrite, err, "could not create folder `%s`", dir)
		}
		return &Store{dir: dir}, nil
	}
	if err != nil {
		return nil, newError(DomainContext, ActionRead, err, "folder `%s` could not be found", dir)
	}
	if !info.IsDir() {
		return nil, newError(DomainContext, ActionRead, nil, "`%s` is not a folder", dir)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) taskPath(id task.ID) string {
	return filepath.Join(s.dir, string(id)+TaskFileExt)
}

// Tasks yields the stored tasks ordered by file name. If the directory
// cannot be listed, a single context error is yielded.
func (s *Store) Tasks() iter.Seq2[task.Task, error] {
	return func(yield func(task.Task, error) bool) {
		entries, err := os.ReadDir(s.dir)
		if err != nil {
			yield(task.Task{}, newError(DomainContext, ActionRead, err, "could not open tasks folder `%s` for reading", s.dir))
			return
		}

		for _, entry := range entries {
			if !isTaskFile(entry) {
				continue
			}
			t, err := readTask(filepath.Join(s.dir, entry.Name()))
			if !yield(t, err) {
				return
			}
		}
	}
}

func isTaskFile(entry os.DirEntry) bool {
	name := entry.Name()
	return !entry.IsDir() && !strings.HasPrefix(name, ".") && strings.HasSuffix(name, TaskFileExt)
}

func readTask(path string) (task.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return task.Task{}, newError(DomainTask, ActionRead, err, "failed to open task `%s`", path)
	}

	var t task.Task
	if err := json.Unmarshal(data, &t); err != nil {
		return task.Task{}, newError(DomainTask, ActionRead, err, "failed to parse task @ `%s`", path)
	}
	if t.Tags == nil {
		t.Tags = task.Tags{}
	}
	return t, nil
}

// Get loads the task with exactly the given ID.
func (s *Store) Get(id task.ID) (task.Task, error) {
	if err := validateID(id); err != nil {
		return task.Task{}, newError(DomainTask, ActionRead, err, "could not read task with id `%s`", id)
	}
	path := s.taskPath(id)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return task.Task{}, newError(DomainTask, ActionRead, ErrTaskNotFound, "no task with id `%s`", id)
	}
	return readTask(path)
}

// Put writes the task to its file, replacing any previous version.
func (s *Store) Put(t task.Task) error {
	if err := validateID(t.ID); err != nil {
		return newError(DomainTask, ActionWrite, err, "could not write task with id `%s`", t.ID)
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return newError(DomainTask, ActionWrite, err, "could not serialize task with id `%s`", t.ID)
	}
	data = append(data, '\n')

	err = s.withLock(func() error {
		return writeFileAtomic(s.taskPath(t.ID), data)
	})
	if err != nil {
		return newError(DomainTask, ActionWrite, err, "could not create file for task with id `%s`", t.ID)
	}
	return nil
}

// Remove deletes the task's file.
func (s *Store) Remove(id task.ID) error {
	if err := validateID(id); err != nil {
		return newError(DomainTask, ActionWrite, err, "could not remove task with id `%s`", id)
	}

	err := s.withLock(func() error {
		return os.Remove(s.taskPath(id))
	})
	if errors.Is(err, os.ErrNotExist) {
		return newError(DomainTask, ActionWrite, ErrTaskNotFound, "no task with id `%s`", id)
	}
	if err != nil {
		return newError(DomainTask, ActionWrite, err, "could not remove task with id `%s`", id)
	}
	return nil
}

// IDs lists the stored task IDs without parsing the task files.
func (s *Store) IDs() ([]task.ID, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, newError(DomainContext, ActionRead, err, "could not open tasks folder `%s` for reading", s.dir)
	}

	var out []task.ID
	for _, entry := range entries {
		if isTaskFile(entry) {
			out = append(out, task.ID(strings.TrimSuffix(entry.Name(), TaskFileExt)))
		}
	}
	return out, nil
}

// Resolve returns the full ID of the single stored task whose ID starts with
// prefix.
func (s *Store) Resolve(prefix string) (task.ID, error) {
	stored, err := s.IDs()
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(stored))
	for _, id := range stored {
		names = append(names, string(id))
	}

	match, found, ambiguous := ids.MatchPrefix(names, prefix)
	if !found {
		return "", fmt.Errorf("%w: %s", ErrTaskNotFound, prefix)
	}
	if ambiguous {
		return "", fmt.Errorf("%w: %s", ErrAmbiguousIDPrefix, prefix)
	}
	return task.ID(match), nil
}

func validateID(id task.ID) error {
	if id == "" || strings.ContainsAny(string(id), `/\`) || strings.HasPrefix(string(id), ".") {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// withLock runs fn while holding an exclusive lock on the store's lock file.
func (s *Store) withLock(fn func() error) error {
	f, err := os.OpenFile(filepath.Join(s.dir, lockFile), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer f.Close()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN)

	return fn()
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	name := tmp.Name()

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
