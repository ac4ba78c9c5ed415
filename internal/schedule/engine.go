// Package schedule implements the scheduling engine: sequential time
// recalculation, row validation, batch import with order-ID dedup, and the
// merge policy. The engine holds no state between calls; every operation
// receives the schedule from the caller and hands it back.
package schedule

import (
	"timeboxer/internal/clock"
	"timeboxer/internal/model"
)

// CalculateTimes derives start and end times for every task in order,
// mutating the slice in place. The first task starts at start; each
// following task starts when its predecessor ends, wrapping at midnight.
// An invalid start fails with *clock.FormatError before anything is
// mutated. A nil or empty slice is a legitimate no-op.
func CalculateTimes(tasks []model.Task, start string) error {
	current, err := clock.Parse(start)
	if err != nil {
		return err
	}

	for i := range tasks {
		end := clock.AddMinutes(current, tasks[i].DurationMinutes)
		tasks[i].StartTime = current.String()
		tasks[i].EndTime = end.String()
		current = end
	}
	return nil
}
