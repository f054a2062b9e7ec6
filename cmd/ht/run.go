package main

import (
	"errors"
	"io/fs"

	"github.com/amonks/hypertask/engine"
	"github.com/amonks/hypertask/task"
)

// runVerb opens the store and runs verb against every stored task.
// Mutating verbs create the data directory and are wrapped in the before
// and after hooks. Read-only verbs against a missing directory see no tasks.
func (a *app) runVerb(verb engine.Verb) ([]task.Task, error) {
	mutating := isMutating(verb)

	s, err := a.openStore(mutating)
	if err != nil {
		if !mutating && errors.Is(err, fs.ErrNotExist) {
			a.logger.Debug("data directory missing", "dir", a.cfg.DataDir)
			return nil, nil
		}
		return nil, err
	}

	if !mutating {
		return a.newEngine(s).Run(verb, s.Tasks())
	}

	if err := a.runHook("before", a.cfg.Hooks.Before, s.Dir(), engine.Name(verb)); err != nil {
		return nil, err
	}
	result, err := a.newEngine(s).Run(verb, s.Tasks())
	if hookErr := a.runHook("after", a.cfg.Hooks.After, s.Dir(), engine.Name(verb)); hookErr != nil {
		a.logger.Warn("after hook failed", "error", hookErr)
	}
	return result, err
}

// resolveID expands an ID prefix to a stored task's full ID.
func (a *app) resolveID(prefix string) (task.ID, error) {
	s, err := a.openStore(false)
	if err != nil {
		return "", err
	}
	return s.Resolve(prefix)
}

// resolveBlocked replaces abbreviated IDs in Blocked props with the full
// stored ID.
func (a *app) resolveBlocked(mutations []task.Mutation) ([]task.Mutation, error) {
	resolved := make([]task.Mutation, len(mutations))
	for i, m := range mutations {
		resolved[i] = m
		setProp, ok := m.(task.SetProp)
		if !ok {
			continue
		}
		blocked, ok := setProp.Prop.(task.Blocked)
		if !ok || blocked.ID == nil {
			continue
		}
		id, err := a.resolveID(string(*blocked.ID))
		if err != nil {
			return nil, err
		}
		resolved[i] = task.SetProp{Prop: task.Blocked{ID: &id}}
	}
	return resolved, nil
}

func isMutating(verb engine.Verb) bool {
	switch verb.(type) {
	case engine.Create, engine.Update, engine.Delete:
		return true
	default:
		return false
	}
}
