// Package editor round-trips tasks through the user's text editor.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrNoEditor is returned when the editor command is blank.
var ErrNoEditor = errors.New("no editor configured")

// Command returns the editor to launch: $VISUAL, then $EDITOR, then vi.
func Command() string {
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return "vi"
}

// Open runs command on path attached to the current terminal and waits for
// it to exit. The command may carry arguments, as in "code --wait".
func Open(command, path string) error {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ErrNoEditor
	}

	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("editor %s exited with status %d", fields[0], exitErr.ExitCode())
		}
		return fmt.Errorf("run editor %s: %w", fields[0], err)
	}
	return nil
}
