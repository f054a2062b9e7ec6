package task

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Sign marks a tag as wanted (Plus) or unwanted (Minus).
type Sign int

const (
	// Plus means "must have" in a query and "add" in a mutation.
	Plus Sign = iota
	// Minus means "must not have" in a query and "remove" in a mutation.
	Minus
)

func (s Sign) String() string {
	if s == Minus {
		return "-"
	}
	return "+"
}

// Tag is a signed label.
type Tag struct {
	Sign Sign
	Name string
}

// PlusTag returns a Plus tag named name.
func PlusTag(name string) Tag {
	return Tag{Sign: Plus, Name: name}
}

// MinusTag returns a Minus tag named name.
func MinusTag(name string) Tag {
	return Tag{Sign: Minus, Name: name}
}

// ParseTag parses "+name" or "-name".
func ParseTag(value string) (Tag, error) {
	if len(value) < 2 {
		return Tag{}, fmt.Errorf("%w: %q", ErrInvalidTag, value)
	}
	name := value[1:]
	if strings.ContainsAny(name, " \t\n") {
		return Tag{}, fmt.Errorf("%w: %q", ErrInvalidTag, value)
	}
	switch value[0] {
	case '+':
		return PlusTag(name), nil
	case '-':
		return MinusTag(name), nil
	default:
		return Tag{}, fmt.Errorf("%w: %q", ErrInvalidTag, value)
	}
}

func (t Tag) String() string {
	return t.Sign.String() + t.Name
}

// Tags names a task's tag set. It encodes as a sorted JSON array.
type Tags map[string]struct{}

// NewTags returns a set holding names.
func NewTags(names ...string) Tags {
	tags := make(Tags, len(names))
	for _, name := range names {
		tags[name] = struct{}{}
	}
	return tags
}

// Has reports whether name is in the set.
func (t Tags) Has(name string) bool {
	_, ok := t[name]
	return ok
}

// Sorted returns the tag names in ascending order.
func (t Tags) Sorted() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// MarshalJSON encodes the set as a sorted array.
func (t Tags) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Sorted())
}

// UnmarshalJSON decodes an array of names.
func (t *Tags) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*t = NewTags(names...)
	return nil
}
