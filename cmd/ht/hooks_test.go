package main

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/amonks/hypertask/task"
)

type recordingWriter struct {
	put []task.Task
}

func (w *recordingWriter) Put(t task.Task) error {
	w.put = append(w.put, t)
	return nil
}

func TestHookedWriterFailureKeepsTaskSaved(t *testing.T) {
	inner := &recordingWriter{}
	w := &hookedWriter{
		inner:  inner,
		dir:    t.TempDir(),
		script: "exit 3",
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	err := w.Put(testTask("abcdefghkmnpqrst", "water plants"))
	if err == nil || !strings.Contains(err.Error(), "task saved, but on-edit hook failed") {
		t.Fatalf("expected saved-but-failed error, got %v", err)
	}
	if len(inner.put) != 1 {
		t.Fatalf("expected the task to be written before the hook, got %d writes", len(inner.put))
	}
}

func TestHookedWriterWithoutScript(t *testing.T) {
	inner := &recordingWriter{}
	w := &hookedWriter{inner: inner, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	if err := w.Put(testTask("abcdefghkmnpqrst", "water plants")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if len(inner.put) != 1 {
		t.Fatalf("expected one write, got %d", len(inner.put))
	}
}
