// Package clock holds clock-of-day values used across the schedule.
// Times here carry no date and no zone: "23:30" plus 45 minutes is "00:15".
package clock

import (
	"fmt"
	"regexp"
	"time"
)

const minutesPerDay = 24 * 60

var timeFormat = regexp.MustCompile(`^([0-9]{2}):([0-9]{2})$`)

// TimeOfDay is an immutable wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// FormatError reports a string that is not a valid HH:MM time.
type FormatError struct {
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid time %q: expected HH:MM", e.Value)
}

// IsValid reports whether s is exactly two digits, a colon, and two digits,
// with hours 00-23 and minutes 00-59. Single-digit hours and extra segments
// are rejected.
func IsValid(s string) bool {
	m := timeFormat.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	hour := int(m[1][0]-'0')*10 + int(m[1][1]-'0')
	minute := int(m[2][0]-'0')*10 + int(m[2][1]-'0')
	return hour <= 23 && minute <= 59
}

// Parse converts an HH:MM string into a TimeOfDay.
func Parse(s string) (TimeOfDay, error) {
	if !IsValid(s) {
		return TimeOfDay{}, &FormatError{Value: s}
	}
	return TimeOfDay{
		Hour:   int(s[0]-'0')*10 + int(s[1]-'0'),
		Minute: int(s[3]-'0')*10 + int(s[4]-'0'),
	}, nil
}

// String renders the time zero-padded, so Parse(t.String()) == t.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// AddMinutes returns t shifted forward by n minutes, wrapping at midnight.
// n must be non-negative; callers chain per-task additions, so a single
// call never needs to represent more than one day.
func AddMinutes(t TimeOfDay, n int) TimeOfDay {
	total := (t.Hour*60 + t.Minute + n) % minutesPerDay
	return TimeOfDay{Hour: total / 60, Minute: total % 60}
}

// FromTime captures the clock portion of a wall-clock instant. The engine
// never reads the system clock itself; callers pass an already-captured
// value through here.
func FromTime(now time.Time) TimeOfDay {
	return TimeOfDay{Hour: now.Hour(), Minute: now.Minute()}
}
