package schedule

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"timeboxer/internal/model"
)

const minutesPerDay = 24 * 60

// Duration text is laxer than schedule start times: a single-digit hour
// ("1:30") is accepted, since spreadsheets render time-formatted cells
// that way. Minutes still need two digits.
var durationFormat = regexp.MustCompile(`^([0-9]{1,2}):([0-9]{2})$`)

// ValidateRow checks one raw row and turns it into a task candidate.
// Checks run in a fixed order and stop at the first failure; the returned
// error is always a *ValidationError and the caller decides whether to
// propagate it or record it as a rejection.
func ValidateRow(row Row) (model.Task, error) {
	orderID, err := parseOrderID(row.OrderID)
	if err != nil {
		return model.Task{}, err
	}

	name := strings.TrimSpace(row.Name.Text)
	if row.Name.Kind == CellEmpty || name == "" {
		return model.Task{}, &ValidationError{Field: "name", Message: msgNameRequired}
	}

	minutes, err := normalizeDuration(row.Duration)
	if err != nil {
		return model.Task{}, err
	}
	if minutes <= 0 {
		return model.Task{}, &ValidationError{Field: "duration", Message: msgDurationNotPositive}
	}

	return NewTask(TaskInput{
		OrderID:         orderID,
		Name:            name,
		DurationMinutes: minutes,
		Notes:           strings.TrimSpace(row.Notes.Text),
	})
}

func parseOrderID(c Cell) (int, error) {
	switch c.Kind {
	case CellEmpty:
		return 0, &ValidationError{Field: "orderId", Message: msgOrderIDRequired}
	case CellNumber:
		rounded := math.Round(c.Number)
		if rounded != c.Number || rounded < 1 {
			return 0, &ValidationError{Field: "orderId", Message: msgOrderIDNotNumber}
		}
		return int(rounded), nil
	default:
		value, err := strconv.Atoi(strings.TrimSpace(c.Text))
		if err != nil || value < 1 {
			return 0, &ValidationError{Field: "orderId", Message: msgOrderIDNotNumber}
		}
		return value, nil
	}
}

// normalizeDuration converts either duration representation into whole
// minutes. Numeric cells hold spreadsheet fractional days (0.0625 == 90
// minutes); they are re-rendered as H:MM and pushed through the same text
// path, so both representations share one validation path.
func normalizeDuration(c Cell) (int, error) {
	switch c.Kind {
	case CellEmpty:
		return 0, &ValidationError{Field: "duration", Message: msgDurationRequired}
	case CellNumber:
		minutes := int(math.Round(c.Number * minutesPerDay))
		if minutes < 0 {
			return 0, &ValidationError{Field: "duration", Message: msgDurationNotPositive}
		}
		return parseDurationText(fmt.Sprintf("%d:%02d", minutes/60, minutes%60))
	default:
		return parseDurationText(strings.TrimSpace(c.Text))
	}
}

func parseDurationText(s string) (int, error) {
	m := durationFormat.FindStringSubmatch(s)
	if m == nil {
		return 0, &ValidationError{Field: "duration", Message: msgDurationBadFormat}
	}
	hours, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	if hours > 23 || mins > 59 {
		return 0, &ValidationError{Field: "duration", Message: msgDurationBadFormat}
	}
	return hours*60 + mins, nil
}
