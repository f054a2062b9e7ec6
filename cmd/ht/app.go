package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/amonks/hypertask/engine"
	"github.com/amonks/hypertask/internal/config"
	"github.com/amonks/hypertask/internal/paths"
	"github.com/amonks/hypertask/store"
	"github.com/amonks/hypertask/task"
	"github.com/spf13/cobra"
)

// envLogLevel overrides the configured log level.
const envLogLevel = "HYPERTASK_LOG_LEVEL"

// app holds what every command needs once flags and config are resolved.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	clock  task.Clock
	stdout io.Writer
}

var current *app

func setupApp(cmd *cobra.Command, _ []string) error {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return err
	}
	if rootDataDir != "" {
		dir, err := paths.ExpandHome(rootDataDir)
		if err != nil {
			return err
		}
		cfg.DataDir = dir
	}

	level := cfg.LogLevel
	if env := strings.TrimSpace(os.Getenv(envLogLevel)); env != "" {
		level = env
	}
	if rootLogLevel != "" {
		level = rootLogLevel
	}
	logger, err := newLogger(cmd.ErrOrStderr(), level)
	if err != nil {
		return err
	}

	current = &app{
		cfg:    cfg,
		logger: logger,
		clock:  task.SystemClock{},
		stdout: cmd.OutOrStdout(),
	}
	logger.Debug("loaded config", "data_dir", cfg.DataDir, "command", cmd.CommandPath())
	return nil
}

// newLogger builds a text logger at the named level. An empty level means warn.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if level == "" {
		lvl = slog.LevelWarn
	} else if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// openStore opens the configured task directory. Read-only commands don't
// create it.
func (a *app) openStore(create bool) (*store.Store, error) {
	return store.Open(a.cfg.DataDir, store.OpenOptions{CreateIfMissing: create})
}

// newEngine wires an engine to s, running the on-edit hook after each write.
func (a *app) newEngine(s *store.Store) engine.Engine {
	return engine.Engine{
		Clock:   a.clock,
		IDs:     task.RandomIDs{Chooser: randomChooser{}},
		Writer:  &hookedWriter{inner: s, dir: s.Dir(), script: a.cfg.Hooks.OnEdit, logger: a.logger},
		Remover: s,
		Logger:  a.logger,
	}
}

type randomChooser struct{}

func (randomChooser) Intn(n int) int {
	return rand.IntN(n)
}
