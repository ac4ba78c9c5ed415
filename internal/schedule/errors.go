package schedule

// Field-level validation messages are fixed so the bot and import history
// always show the same wording for the same failure.
const (
	msgOrderIDRequired     = "Order ID is required"
	msgOrderIDNotNumber    = "Order ID must be a number"
	msgNameRequired        = "Task name is required"
	msgDurationRequired    = "Estimated Duration is required"
	msgDurationNotNumber   = "Estimated Duration must be a number"
	msgDurationBadFormat   = "Estimated Duration must be in H:MM format"
	msgDurationNotPositive = "Estimated Duration must be greater than 0"
)

// ValidationError reports a task field that failed construction checks.
// Import converts these into rejection records; direct task creation
// propagates them to the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
