package task

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RecurUnit is the period a recurrence rule counts in.
type RecurUnit string

const (
	RecurDay   RecurUnit = "d"
	RecurWeek  RecurUnit = "w"
	RecurMonth RecurUnit = "m"
	RecurYear  RecurUnit = "y"
)

var recurUnitNames = map[string]RecurUnit{
	"d": RecurDay, "day": RecurDay, "days": RecurDay, "daily": RecurDay,
	"w": RecurWeek, "week": RecurWeek, "weeks": RecurWeek, "weekly": RecurWeek,
	"m": RecurMonth, "month": RecurMonth, "months": RecurMonth, "monthly": RecurMonth,
	"y": RecurYear, "year": RecurYear, "years": RecurYear, "yearly": RecurYear,
}

// Recurrence is the interval by which a completed task's schedule rolls forward.
type Recurrence struct {
	Amount int
	Unit   RecurUnit
}

// ParseRecurrence parses forms like "1d", "2w", "3months" or "weekly".
// A missing amount means 1.
func ParseRecurrence(value string) (Recurrence, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	split := strings.IndexFunc(value, func(r rune) bool { return r < '0' || r > '9' })
	if split == -1 {
		return Recurrence{}, fmt.Errorf("%w: %q: missing unit", ErrInvalidRecurrence, value)
	}

	amount := 1
	if split > 0 {
		n, err := strconv.Atoi(value[:split])
		if err != nil {
			return Recurrence{}, fmt.Errorf("%w: %q: %w", ErrInvalidRecurrence, value, err)
		}
		amount = n
	}
	if amount <= 0 {
		return Recurrence{}, fmt.Errorf("%w: %q: amount must be positive", ErrInvalidRecurrence, value)
	}

	unit, ok := recurUnitNames[value[split:]]
	if !ok {
		return Recurrence{}, fmt.Errorf("%w: %q: unknown unit", ErrInvalidRecurrence, value)
	}

	return Recurrence{Amount: amount, Unit: unit}, nil
}

// Offset converts the rule to a fixed duration. Months are 30 days and
// years 365 days.
func (r Recurrence) Offset() time.Duration {
	day := 24 * time.Hour
	var unit time.Duration
	switch r.Unit {
	case RecurDay:
		unit = day
	case RecurWeek:
		unit = 7 * day
	case RecurMonth:
		unit = 30 * day
	case RecurYear:
		unit = 365 * day
	}
	return time.Duration(r.Amount) * unit
}

func (r Recurrence) String() string {
	return strconv.Itoa(r.Amount) + string(r.Unit)
}

// MarshalText encodes the rule in its short form.
func (r Recurrence) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText parses the short form.
func (r *Recurrence) UnmarshalText(data []byte) error {
	parsed, err := ParseRecurrence(string(data))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
