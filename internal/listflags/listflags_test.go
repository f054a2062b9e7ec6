package listflags

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestFlagsBindTargets(t *testing.T) {
	var (
		jsonOut bool
		all     bool
		limit   int
	)
	cmd := &cobra.Command{Use: "list"}
	AddJSONFlag(cmd, &jsonOut)
	AddAllFlag(cmd, &all)
	AddLimitFlag(cmd, &limit)

	if err := cmd.ParseFlags([]string{"--json", "-a", "-n", "3"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if !jsonOut || !all || limit != 3 {
		t.Fatalf("expected flags to bind, got json=%v all=%v limit=%d", jsonOut, all, limit)
	}
}
