package args

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTime is returned for an unparseable time value.
var ErrInvalidTime = errors.New("invalid time")

var absoluteLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

var relativeUnits = map[byte]time.Duration{
	'm': time.Minute,
	'h': time.Hour,
	'd': 24 * time.Hour,
	'w': 7 * 24 * time.Hour,
}

// ParseTime parses an absolute or relative time.
//
// Accepted forms are "now", "today" and "tomorrow" (local midnight),
// "<n><m|h|d|w>" counted from now, RFC 3339, "2006-01-02T15:04" and
// "2006-01-02". Layouts without a zone use now's location.
func ParseTime(value string, now time.Time) (time.Time, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "":
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidTime)
	case "now":
		return now, nil
	case "today":
		return midnight(now), nil
	case "tomorrow":
		return midnight(now).AddDate(0, 0, 1), nil
	}

	if at, ok := parseRelative(value, now); ok {
		return at, nil
	}

	for _, layout := range absoluteLayouts {
		// RFC 3339 uses an uppercase T and Z.
		if at, err := time.ParseInLocation(layout, strings.ToUpper(value), now.Location()); err == nil {
			return at, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, value)
}

func parseRelative(value string, now time.Time) (time.Time, bool) {
	if len(value) < 2 {
		return time.Time{}, false
	}
	unit, ok := relativeUnits[value[len(value)-1]]
	if !ok {
		return time.Time{}, false
	}
	amount, err := strconv.Atoi(value[:len(value)-1])
	if err != nil || amount < 0 {
		return time.Time{}, false
	}
	return now.Add(time.Duration(amount) * unit), true
}

func midnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
