package task

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseRecurrence(t *testing.T) {
	day := 24 * time.Hour
	tests := []struct {
		input  string
		want   Recurrence
		offset time.Duration
	}{
		{"1d", Recurrence{Amount: 1, Unit: RecurDay}, day},
		{"2w", Recurrence{Amount: 2, Unit: RecurWeek}, 14 * day},
		{"3months", Recurrence{Amount: 3, Unit: RecurMonth}, 90 * day},
		{"weekly", Recurrence{Amount: 1, Unit: RecurWeek}, 7 * day},
		{" 1Y ", Recurrence{Amount: 1, Unit: RecurYear}, 365 * day},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRecurrence(tt.input)
			if err != nil {
				t.Fatalf("ParseRecurrence(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("ParseRecurrence(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
			if got.Offset() != tt.offset {
				t.Fatalf("Offset() = %v, want %v", got.Offset(), tt.offset)
			}
		})
	}
}

func TestParseRecurrence_Invalid(t *testing.T) {
	for _, input := range []string{"", "3", "0d", "2fortnights"} {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseRecurrence(input); !errors.Is(err, ErrInvalidRecurrence) {
				t.Fatalf("expected ErrInvalidRecurrence for %q, got %v", input, err)
			}
		})
	}
}

func TestRecurrence_JSON(t *testing.T) {
	data, err := json.Marshal(Recurrence{Amount: 2, Unit: RecurWeek})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2w"` {
		t.Fatalf("expected \"2w\", got %s", data)
	}
}
