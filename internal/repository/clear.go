package repository

// Storage areas a full wipe touches.
const (
	AreaTasks    = "tasks"
	AreaSchedule = "schedule"
	AreaHistory  = "history"
)

// AreaStatus is the outcome of clearing one storage area.
type AreaStatus struct {
	Area string
	Err  error
}

// ClearResult reports a wipe per storage area, so "tasks cleared, history
// not" stays visible instead of collapsing into one failure.
type ClearResult struct {
	Statuses []AreaStatus
}

func (r ClearResult) Success() bool {
	for _, s := range r.Statuses {
		if s.Err != nil {
			return false
		}
	}
	return true
}

func (r ClearResult) Errors() []error {
	var errs []error
	for _, s := range r.Statuses {
		if s.Err != nil {
			errs = append(errs, s.Err)
		}
	}
	return errs
}
