package schedule

import "timeboxer/internal/model"

// Merge appends imported tasks after the existing ones, preserving the
// relative order of both inputs exactly. Order IDs are not deduplicated
// across the two inputs; dedup is scoped to a single import batch. The
// caller recomputes times on the result before treating it as
// authoritative.
func Merge(existing, imported []model.Task) []model.Task {
	merged := make([]model.Task, 0, len(existing)+len(imported))
	merged = append(merged, existing...)
	merged = append(merged, imported...)
	return merged
}
