package clock

import (
	"errors"
	"testing"
	"time"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"00:00", true},
		{"23:59", true},
		{"09:30", true},
		{"9:00", false},
		{"09:0", false},
		{"25:00", false},
		{"09:60", false},
		{"", false},
		{"09:00:00", false},
		{"09-30", false},
		{" 09:30", false},
		{"ab:cd", false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := IsValid(tc.input); got != tc.want {
				t.Errorf("IsValid(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("valid time", func(t *testing.T) {
		got, err := Parse("09:30")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Hour != 9 || got.Minute != 30 {
			t.Errorf("Parse(\"09:30\") = %+v", got)
		}
	})

	t.Run("invalid time returns FormatError", func(t *testing.T) {
		_, err := Parse("9:30")
		var formatErr *FormatError
		if !errors.As(err, &formatErr) {
			t.Fatalf("expected *FormatError, got %v", err)
		}
		if formatErr.Value != "9:30" {
			t.Errorf("FormatError.Value = %q, want %q", formatErr.Value, "9:30")
		}
	})
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"00:00", "09:05", "23:59"} {
		parsed, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		if parsed.String() != s {
			t.Errorf("round trip of %q produced %q", s, parsed.String())
		}
	}
}

func TestAddMinutes(t *testing.T) {
	tests := []struct {
		name  string
		start string
		add   int
		want  string
	}{
		{"no offset", "09:00", 0, "09:00"},
		{"within hour", "09:00", 30, "09:30"},
		{"across hour", "09:45", 30, "10:15"},
		{"across midnight", "23:30", 45, "00:15"},
		{"exactly midnight", "23:00", 60, "00:00"},
		{"full day wraps to itself", "10:10", 1440, "10:10"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			start, err := Parse(tc.start)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.start, err)
			}
			if got := AddMinutes(start, tc.add).String(); got != tc.want {
				t.Errorf("AddMinutes(%s, %d) = %s, want %s", tc.start, tc.add, got, tc.want)
			}
		})
	}

	t.Run("chained additions cross several midnights", func(t *testing.T) {
		current, _ := Parse("23:00")
		for i := 0; i < 50; i++ {
			current = AddMinutes(current, 90)
		}
		// 23:00 + 4500 minutes = three full days and 180 minutes.
		if got := current.String(); got != "02:00" {
			t.Errorf("chained result = %s, want 02:00", got)
		}
	})
}

func TestFromTime(t *testing.T) {
	now := time.Date(2024, 6, 1, 14, 7, 59, 0, time.UTC)
	if got := FromTime(now).String(); got != "14:07" {
		t.Errorf("FromTime = %s, want 14:07", got)
	}
}
