package ids

import (
	"math/rand"
	"strings"
	"testing"
)

type fixedChooser struct {
	picks []int
	next  int
}

func (c *fixedChooser) Intn(n int) int {
	pick := c.picks[c.next%len(c.picks)] % n
	c.next++
	return pick
}

func TestGenerate(t *testing.T) {
	id := Generate(rand.New(rand.NewSource(1)), "abc", 16)

	if len(id) != 16 {
		t.Fatalf("expected ID length 16, got %d: %q", len(id), id)
	}

	for _, c := range id {
		if !strings.ContainsRune("abc", c) {
			t.Errorf("ID contains invalid character %q: %q", c, id)
		}
	}
}

func TestGenerate_UsesChooser(t *testing.T) {
	chooser := &fixedChooser{picks: []int{0, 1, 2}}

	if got := Generate(chooser, "xyz", 5); got != "xyzxy" {
		t.Fatalf("expected xyzxy, got %q", got)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	id1 := Generate(rand.New(rand.NewSource(42)), "abcdef", 10)
	id2 := Generate(rand.New(rand.NewSource(42)), "abcdef", 10)

	if id1 != id2 {
		t.Errorf("same seed should produce same ID: got %q and %q", id1, id2)
	}
}

func TestGenerate_Empty(t *testing.T) {
	if got := Generate(&fixedChooser{picks: []int{0}}, "abc", 0); got != "" {
		t.Errorf("expected empty ID for zero length, got %q", got)
	}
	if got := Generate(&fixedChooser{picks: []int{0}}, "", 4); got != "" {
		t.Errorf("expected empty ID for empty alphabet, got %q", got)
	}
}
