package schedule

import (
	"strings"

	"github.com/google/uuid"

	"timeboxer/internal/model"
)

// TaskInput carries the fields a caller supplies when creating a task
// directly, outside the import path.
type TaskInput struct {
	ID              string
	OrderID         int
	Name            string
	DurationMinutes int
	Notes           string
}

// NewTask validates the input and builds a task. The ID is generated when
// not supplied. Start and end times stay empty until the engine computes
// them.
func NewTask(input TaskInput) (model.Task, error) {
	if input.OrderID < 1 {
		return model.Task{}, &ValidationError{Field: "orderId", Message: msgOrderIDRequired}
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return model.Task{}, &ValidationError{Field: "name", Message: msgNameRequired}
	}
	if input.DurationMinutes <= 0 {
		return model.Task{}, &ValidationError{Field: "duration", Message: msgDurationNotPositive}
	}

	id := input.ID
	if id == "" {
		id = uuid.NewString()
	}

	return model.Task{
		ID:              id,
		OrderID:         input.OrderID,
		Name:            name,
		DurationMinutes: input.DurationMinutes,
		Notes:           input.Notes,
	}, nil
}
