package main

import (
	"fmt"
	"log/slog"

	"github.com/amonks/hypertask/engine"
	"github.com/amonks/hypertask/internal/config"
	"github.com/amonks/hypertask/task"
)

// Environment passed to hook scripts.
const (
	hookEnvTaskID  = "HYPERTASK_TASK_ID"
	hookEnvDataDir = "HYPERTASK_DIR"
	hookEnvVerb    = "HYPERTASK_VERB"
)

// hookedWriter runs the on-edit hook after each successful write. A failing
// hook fails that task's write, but the task stays saved on disk.
type hookedWriter struct {
	inner  engine.TaskWriter
	dir    string
	script string
	logger *slog.Logger
}

func (w *hookedWriter) Put(t task.Task) error {
	if err := w.inner.Put(t); err != nil {
		return err
	}
	if w.script == "" {
		return nil
	}
	w.logger.Debug("running on-edit hook", "id", t.ID)
	if err := config.RunScript(w.dir, w.script, hookEnvTaskID+"="+string(t.ID), hookEnvDataDir+"="+w.dir); err != nil {
		return fmt.Errorf("task saved, but on-edit hook failed: %w", err)
	}
	return nil
}

// runHook runs a before/after hook in the data directory.
func (a *app) runHook(name, script, dir, verb string) error {
	if script == "" {
		return nil
	}
	a.logger.Debug("running hook", "hook", name, "verb", verb)
	if err := config.RunScript(dir, script, hookEnvDataDir+"="+dir, hookEnvVerb+"="+verb); err != nil {
		return fmt.Errorf("%s hook: %w", name, err)
	}
	return nil
}
