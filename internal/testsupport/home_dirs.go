package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// EnsureHomeDirs creates the default config and data directories under homeDir.
func EnsureHomeDirs(homeDir string) error {
	if err := os.MkdirAll(filepath.Join(homeDir, ".config", "hypertask"), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(homeDir, ".local", "share", "hypertask"), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}

// SetupTestHome creates a temp home directory, ensures config/data dirs, sets
// HOME, and clears the environment variables that would otherwise leak the
// caller's hypertask setup into the test.
func SetupTestHome(t testing.TB) string {
	t.Helper()

	homeDir := t.TempDir()
	if err := EnsureHomeDirs(homeDir); err != nil {
		t.Fatalf("setup home dir: %v", err)
	}
	t.Setenv("HOME", homeDir)
	for _, name := range isolatedEnv {
		t.Setenv(name, "")
	}
	return homeDir
}

var isolatedEnv = []string{
	"XDG_CONFIG_HOME",
	"XDG_DATA_HOME",
	"HYPERTASK_DIR",
	"HYPERTASK_AFTER",
	"HYPERTASK_LOG_LEVEL",
	"VISUAL",
}
