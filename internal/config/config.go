// Package config handles loading hypertask's client.toml configuration.
package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/amonks/hypertask/internal/paths"
)

const (
	// GlobalFileName is the config file inside the global config directory.
	GlobalFileName = "client.toml"

	// ProjectFileName is the optional per-directory config file.
	ProjectFileName = "hypertask.toml"

	// EnvDataDir overrides data-dir.
	EnvDataDir = "HYPERTASK_DIR"

	// EnvAfterHook overrides hooks.after.
	EnvAfterHook = "HYPERTASK_AFTER"
)

// Config represents the merged hypertask configuration.
type Config struct {
	// DataDir is the directory holding one file per task.
	DataDir string `toml:"data-dir"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log-level"`

	Hooks   Hooks   `toml:"hooks"`
	Display Display `toml:"display"`
}

// Hooks are scripts run around mutating commands.
// Each can include a shebang line; defaults to bash if not specified.
type Hooks struct {
	// Before runs before any verb executes.
	Before string `toml:"before"`

	// OnEdit runs after each task is written.
	OnEdit string `toml:"on-edit"`

	// After runs once a mutating verb completes.
	After string `toml:"after"`
}

// Display controls table rendering.
type Display struct {
	// Rows caps the number of listed tasks. Zero means fit the terminal.
	Rows int `toml:"rows"`
}

// Load reads the global config file and projectDir/hypertask.toml, with
// project values overriding global ones, then applies environment overrides
// and defaults. Missing files are not an error.
func Load(projectDir string) (*Config, error) {
	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, _, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	var projectCfg *Config
	var projectMeta toml.MetaData
	if projectDir != "" {
		projectCfg, projectMeta, err = loadConfigFile(filepath.Join(projectDir, ProjectFileName))
		if err != nil {
			return nil, err
		}
	}

	merged := mergeConfigs(globalCfg, projectCfg, projectMeta)
	if err := merged.applyEnvironment(); err != nil {
		return nil, err
	}
	return merged, nil
}

func globalConfigPath() (string, error) {
	dir, err := paths.DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, GlobalFileName), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: unknown key %q", path, undecoded[0].String())
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.DataDir = mergeString(projectMeta.IsDefined("data-dir"), projectCfg.DataDir, globalCfg.DataDir)
	merged.LogLevel = mergeString(projectMeta.IsDefined("log-level"), projectCfg.LogLevel, globalCfg.LogLevel)
	merged.Hooks.Before = mergeString(projectMeta.IsDefined("hooks", "before"), projectCfg.Hooks.Before, globalCfg.Hooks.Before)
	merged.Hooks.OnEdit = mergeString(projectMeta.IsDefined("hooks", "on-edit"), projectCfg.Hooks.OnEdit, globalCfg.Hooks.OnEdit)
	merged.Hooks.After = mergeString(projectMeta.IsDefined("hooks", "after"), projectCfg.Hooks.After, globalCfg.Hooks.After)
	merged.Display.Rows = globalCfg.Display.Rows
	if projectMeta.IsDefined("display", "rows") {
		merged.Display.Rows = projectCfg.Display.Rows
	}

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func (c *Config) applyEnvironment() error {
	if dir := strings.TrimSpace(os.Getenv(EnvDataDir)); dir != "" {
		c.DataDir = dir
	}
	if after := strings.TrimSpace(os.Getenv(EnvAfterHook)); after != "" {
		c.Hooks.After = after
	}

	if c.DataDir == "" {
		dir, err := paths.DefaultDataDir()
		if err != nil {
			return err
		}
		c.DataDir = dir
	}

	dir, err := paths.ExpandHome(c.DataDir)
	if err != nil {
		return err
	}
	c.DataDir = dir

	if c.Display.Rows < 0 {
		return fmt.Errorf("display.rows must not be negative, got %d", c.Display.Rows)
	}
	return nil
}

// RunScript executes a script in the given directory with extra environment
// variables appended to the current environment.
// If the script starts with a shebang (#!), that interpreter is used.
// Otherwise, the script is run with /bin/bash.
func RunScript(dir, script string, env ...string) error {
	script = strings.TrimSpace(script)
	if script == "" {
		return nil
	}

	var interpreter string
	var scriptBody string

	if strings.HasPrefix(script, "#!") {
		lines := strings.SplitN(script, "\n", 2)
		interpreter = strings.TrimSpace(strings.TrimPrefix(lines[0], "#!"))
		if len(lines) > 1 {
			scriptBody = lines[1]
		}
	} else {
		interpreter = "/bin/bash"
		scriptBody = script
	}

	// e.g. "/usr/bin/env python3" or "/bin/bash -e"
	parts := strings.Fields(interpreter)
	if len(parts) == 0 {
		return fmt.Errorf("empty interpreter in shebang")
	}

	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdin = strings.NewReader(scriptBody)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}
