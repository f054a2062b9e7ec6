// Package args parses the command-line token grammar shared by ht's
// subcommands.
//
// Queries are "+tag", "-tag", or an ID fragment. Mutations are "+tag",
// "-tag", "key:value", or bare words, which are joined into the
// description. An empty value clears an optional field; "done:" alone
// completes the task now.
package args

import (
	"errors"
	"fmt"
	"strings"
	"time"

	internalstrings "github.com/amonks/hypertask/internal/strings"
	"github.com/amonks/hypertask/internal/validation"
	"github.com/amonks/hypertask/task"
)

var (
	// ErrUnknownKey is returned for a key:value token with an unrecognized key.
	ErrUnknownKey = errors.New("unknown key")

	// ErrEmptyQuery is returned for a blank query token.
	ErrEmptyQuery = errors.New("empty query")
)

// Key names a settable task property.
type Key string

const (
	KeyDescription Key = "description"
	KeyBlocked     Key = "blocked"
	KeyDone        Key = "done"
	KeyDue         Key = "due"
	KeyRecur       Key = "recur"
	KeySnooze      Key = "snooze"
	KeyWait        Key = "wait"
)

// Keys lists every Key in the order they appear in help text.
var Keys = []Key{KeyDescription, KeyBlocked, KeyDone, KeyDue, KeyRecur, KeySnooze, KeyWait}

var keyAliases = map[string]Key{
	"desc":  KeyDescription,
	"until": KeySnooze,
}

// ParseKey resolves a key name or alias, case-insensitively.
func ParseKey(value string) (Key, error) {
	name := internalstrings.NormalizeLowerTrimSpace(value)
	for _, key := range Keys {
		if string(key) == name {
			return key, nil
		}
	}
	if key, ok := keyAliases[name]; ok {
		return key, nil
	}
	return "", validation.FormatInvalidValueError(ErrUnknownKey, Key(value), Keys)
}

// ParseQueries parses query tokens.
func ParseQueries(tokens []string) ([]task.Query, error) {
	queries := make([]task.Query, 0, len(tokens))
	for _, token := range tokens {
		query, err := ParseQuery(token)
		if err != nil {
			return nil, err
		}
		queries = append(queries, query)
	}
	return queries, nil
}

// ParseQuery parses a single query token.
func ParseQuery(token string) (task.Query, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrEmptyQuery
	}
	if isTagToken(token) {
		tag, err := task.ParseTag(token)
		if err != nil {
			return nil, err
		}
		return task.ByTag{Tag: tag}, nil
	}
	return task.ByID{ID: task.ID(strings.ToLower(token))}, nil
}

// ParseMutations parses mutation tokens. Bare words are collected, in
// order, into a single trailing description mutation.
func ParseMutations(tokens []string, now time.Time) ([]task.Mutation, error) {
	mutations := make([]task.Mutation, 0, len(tokens))
	var words []string
	for _, token := range tokens {
		switch {
		case isTagToken(token):
			tag, err := task.ParseTag(token)
			if err != nil {
				return nil, err
			}
			mutations = append(mutations, task.SetTag{Tag: tag})
		case isKeyValueToken(token):
			name, value, _ := strings.Cut(token, ":")
			key, err := ParseKey(name)
			if err != nil {
				return nil, err
			}
			prop, err := ParseProp(key, value, now)
			if err != nil {
				return nil, err
			}
			mutations = append(mutations, task.SetProp{Prop: prop})
		default:
			words = append(words, token)
		}
	}

	if description := internalstrings.NormalizeWhitespace(strings.Join(words, " ")); description != "" {
		mutations = append(mutations, task.SetProp{Prop: task.Description(description)})
	}
	return mutations, nil
}

// ParseProp builds the prop for key from its textual value.
func ParseProp(key Key, value string, now time.Time) (task.Prop, error) {
	value = strings.TrimSpace(value)
	switch key {
	case KeyDescription:
		return task.Description(value), nil
	case KeyBlocked:
		if value == "" {
			return task.Blocked{}, nil
		}
		id := task.ID(strings.ToLower(value))
		return task.Blocked{ID: &id}, nil
	case KeyDone:
		if value == "" {
			return task.Done{At: now}, nil
		}
		at, err := ParseTime(value, now)
		if err != nil {
			return nil, err
		}
		return task.Done{At: at}, nil
	case KeyDue:
		at, err := parseOptionalTime(value, now)
		if err != nil {
			return nil, err
		}
		return task.Due{At: at}, nil
	case KeyRecur:
		if value == "" {
			return task.Recur{}, nil
		}
		rule, err := task.ParseRecurrence(value)
		if err != nil {
			return nil, err
		}
		return task.Recur{Rule: &rule}, nil
	case KeySnooze:
		until, err := parseOptionalTime(value, now)
		if err != nil {
			return nil, err
		}
		return task.Snooze{Until: until}, nil
	case KeyWait:
		until, err := parseOptionalTime(value, now)
		if err != nil {
			return nil, err
		}
		return task.Wait{Until: until}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, string(key))
	}
}

func parseOptionalTime(value string, now time.Time) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	at, err := ParseTime(value, now)
	if err != nil {
		return nil, err
	}
	return &at, nil
}

func isTagToken(token string) bool {
	return len(token) >= 2 && (token[0] == '+' || token[0] == '-')
}

func isKeyValueToken(token string) bool {
	name, _, ok := strings.Cut(token, ":")
	return ok && name != "" && !strings.ContainsAny(name, " \t")
}
