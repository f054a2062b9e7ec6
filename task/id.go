package task

import (
	"strings"

	"github.com/amonks/hypertask/internal/ids"
)

// Alphabet holds the characters IDs are drawn from. Visually ambiguous
// characters (0/o, 1/l/i, j, u/v) are left out.
const Alphabet = "23456789abcdefghkmnpqrstwxyz"

// IDLength is the number of characters in a generated ID.
const IDLength = 16

// ID identifies a task.
//
// Matches compares IDs by containment so that a typed fragment finds the
// stored ID. That relation is not transitive, so ID values used as map keys
// compare by exact string equality; never key a map by a user-typed fragment.
type ID string

// IDSource produces fresh IDs. Uniqueness is not guaranteed.
type IDSource interface {
	NewID() ID
}

// IDSourceFunc adapts a function to IDSource.
type IDSourceFunc func() ID

// NewID calls f.
func (f IDSourceFunc) NewID() ID {
	return f()
}

// RandomIDs draws IDs from Alphabet using the given chooser.
type RandomIDs struct {
	Chooser ids.Chooser
}

// NewID returns IDLength characters drawn uniformly from Alphabet.
func (r RandomIDs) NewID() ID {
	return GenerateID(r.Chooser)
}

// GenerateID draws a new ID. No collision check is performed.
func GenerateID(chooser ids.Chooser) ID {
	return ID(ids.Generate(chooser, Alphabet, IDLength))
}

// Matches reports whether either ID contains the other.
func (id ID) Matches(other ID) bool {
	return strings.Contains(string(id), string(other)) || strings.Contains(string(other), string(id))
}

// Valid reports whether id is non-empty and uses only Alphabet characters.
func (id ID) Valid() bool {
	if id == "" {
		return false
	}
	for _, c := range id {
		if !strings.ContainsRune(Alphabet, c) {
			return false
		}
	}
	return true
}

func (id ID) String() string {
	return string(id)
}
