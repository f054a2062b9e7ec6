package ui

import (
	"os"
	"strings"

	"github.com/amonks/hypertask/internal/ids"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var idPrefixStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

// HighlightID returns an ID with its unique prefix highlighted.
func HighlightID(id string, prefixLen int) string {
	if id == "" {
		return id
	}

	if prefixLen <= 0 || prefixLen > len(id) {
		return id
	}

	if !ColorEnabled() {
		return id
	}

	return idPrefixStyle.Render(id[:prefixLen]) + id[prefixLen:]
}

// ColorEnabled reports whether stdout is a color-capable terminal.
func ColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return IsTerminal(os.Stdout)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// UniqueIDPrefixLengths returns the shortest unique prefix length for each ID,
// keyed by lowercased ID.
func UniqueIDPrefixLengths(values []string) map[string]int {
	return ids.UniquePrefixLengths(values)
}

// PrefixLength looks up id in a map built by UniqueIDPrefixLengths.
func PrefixLength(lengths map[string]int, id string) int {
	if id == "" || lengths == nil {
		return 0
	}
	return lengths[strings.ToLower(id)]
}
