package service

import (
	"context"
	"fmt"
	"log"

	"timeboxer/internal/clock"
	"timeboxer/internal/model"
	"timeboxer/internal/repository"
	"timeboxer/internal/schedule"
)

// PlannerService is the trigger surface in front of the scheduling engine.
// Every operation loads the user's schedule, runs the engine, and saves
// the result; the engine itself keeps no state between calls. Callers are
// expected to serialize mutations per user — the bot's single update loop
// does that naturally.
type PlannerService struct {
	scheduleRepo *repository.ScheduleRepository
	historyRepo  *repository.HistoryRepository
	defaultStart string
}

func NewPlannerService(scheduleRepo *repository.ScheduleRepository, historyRepo *repository.HistoryRepository, defaultStart string) *PlannerService {
	return &PlannerService{
		scheduleRepo: scheduleRepo,
		historyRepo:  historyRepo,
		defaultStart: defaultStart,
	}
}

// ImportOutcome is what one import run hands back to the UI: the updated
// schedule and the batch summary, so partial success is always visible.
type ImportOutcome struct {
	Tasks     []model.Task
	StartTime string
	Summary   model.ImportRecord
}

func (s *PlannerService) load(ctx context.Context, user *model.User) ([]model.Task, string, error) {
	tasks, start, err := s.scheduleRepo.LoadSchedule(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	if start == "" {
		start = s.defaultStart
	}
	return tasks, start, nil
}

// Plan returns the user's schedule with times freshly recomputed, so a
// display never shows stale derived values.
func (s *PlannerService) Plan(ctx context.Context, user *model.User) ([]model.Task, string, error) {
	tasks, start, err := s.load(ctx, user)
	if err != nil {
		return nil, "", err
	}
	if err := schedule.CalculateTimes(tasks, start); err != nil {
		return nil, "", err
	}
	return tasks, start, nil
}

// Import validates the raw rows, appends the accepted tasks to the
// existing schedule, recomputes every time, and persists both the
// schedule and the batch summary.
func (s *PlannerService) Import(ctx context.Context, user *model.User, rows []schedule.Row, sourceName string) (*ImportOutcome, error) {
	existing, start, err := s.load(ctx, user)
	if err != nil {
		return nil, err
	}

	result := schedule.ImportBatch(rows, sourceName)
	merged := schedule.Merge(existing, result.Tasks)
	if err := schedule.CalculateTimes(merged, start); err != nil {
		return nil, err
	}

	if err := s.scheduleRepo.SaveSchedule(ctx, user.ID, merged, start); err != nil {
		return nil, err
	}

	result.Summary.UserID = user.ID
	if err := s.historyRepo.Save(ctx, &result.Summary); err != nil {
		// The schedule is already saved; report the history failure
		// instead of pretending the whole import failed.
		log.Printf("save import history for user %d: %v", user.ID, err)
	}

	log.Printf("[info] import user=%d source=%s accepted=%d rejected=%d",
		user.ID, sourceName, result.Summary.AcceptedCount, result.Summary.RejectedCount)

	return &ImportOutcome{Tasks: merged, StartTime: start, Summary: result.Summary}, nil
}

// Reorder moves the task at index from to index to (both zero-based) and
// recomputes every time.
func (s *PlannerService) Reorder(ctx context.Context, user *model.User, from, to int) ([]model.Task, string, error) {
	tasks, start, err := s.load(ctx, user)
	if err != nil {
		return nil, "", err
	}
	if from < 0 || from >= len(tasks) || to < 0 || to >= len(tasks) {
		return nil, "", fmt.Errorf("task index out of range (1-%d)", len(tasks))
	}

	moved := tasks[from]
	tasks = append(tasks[:from], tasks[from+1:]...)
	tasks = append(tasks[:to], append([]model.Task{moved}, tasks[to:]...)...)

	if err := schedule.CalculateTimes(tasks, start); err != nil {
		return nil, "", err
	}
	if err := s.scheduleRepo.SaveSchedule(ctx, user.ID, tasks, start); err != nil {
		return nil, "", err
	}
	return tasks, start, nil
}

// SetStartTime validates the new start first; on a format error the
// stored schedule is left untouched.
func (s *PlannerService) SetStartTime(ctx context.Context, user *model.User, startTime string) ([]model.Task, error) {
	if !clock.IsValid(startTime) {
		return nil, &clock.FormatError{Value: startTime}
	}

	tasks, _, err := s.load(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := schedule.CalculateTimes(tasks, startTime); err != nil {
		return nil, err
	}
	if err := s.scheduleRepo.SaveSchedule(ctx, user.ID, tasks, startTime); err != nil {
		return nil, err
	}
	return tasks, nil
}

// SetToNow anchors the schedule at a wall clock the caller already
// captured; the engine itself never reads the system clock.
func (s *PlannerService) SetToNow(ctx context.Context, user *model.User, now clock.TimeOfDay) ([]model.Task, error) {
	return s.SetStartTime(ctx, user, now.String())
}

// AddTask appends one directly-created task. Validation errors propagate
// to the caller; nothing is saved on failure.
func (s *PlannerService) AddTask(ctx context.Context, user *model.User, input schedule.TaskInput) ([]model.Task, error) {
	task, err := schedule.NewTask(input)
	if err != nil {
		return nil, err
	}

	tasks, start, err := s.load(ctx, user)
	if err != nil {
		return nil, err
	}
	tasks = append(tasks, task)
	if err := schedule.CalculateTimes(tasks, start); err != nil {
		return nil, err
	}
	if err := s.scheduleRepo.SaveSchedule(ctx, user.ID, tasks, start); err != nil {
		return nil, err
	}
	return tasks, nil
}

// RemoveTask deletes the task at the zero-based index and recomputes.
func (s *PlannerService) RemoveTask(ctx context.Context, user *model.User, index int) ([]model.Task, error) {
	tasks, start, err := s.load(ctx, user)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(tasks) {
		return nil, fmt.Errorf("task index out of range (1-%d)", len(tasks))
	}

	tasks = append(tasks[:index], tasks[index+1:]...)
	if err := schedule.CalculateTimes(tasks, start); err != nil {
		return nil, err
	}
	if err := s.scheduleRepo.SaveSchedule(ctx, user.ID, tasks, start); err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateNotes sets the free-text notes of the task at the zero-based
// index. Notes are the only task field with a direct setter.
func (s *PlannerService) UpdateNotes(ctx context.Context, user *model.User, index int, notes string) (*model.Task, error) {
	tasks, start, err := s.load(ctx, user)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(tasks) {
		return nil, fmt.Errorf("task index out of range (1-%d)", len(tasks))
	}

	tasks[index].Notes = notes
	if err := s.scheduleRepo.SaveSchedule(ctx, user.ID, tasks, start); err != nil {
		return nil, err
	}
	task := tasks[index]
	return &task, nil
}

// History lists the user's import summaries, newest first.
func (s *PlannerService) History(ctx context.Context, user *model.User) ([]model.ImportRecord, error) {
	return s.historyRepo.ListByUser(ctx, user.ID)
}

// ClearAll wipes the user's tasks, start time, and import history,
// reporting each area separately so partial failures stay visible.
func (s *PlannerService) ClearAll(ctx context.Context, user *model.User) repository.ClearResult {
	return repository.ClearResult{Statuses: []repository.AreaStatus{
		{Area: repository.AreaTasks, Err: s.scheduleRepo.DeleteTasks(ctx, user.ID)},
		{Area: repository.AreaSchedule, Err: s.scheduleRepo.DeleteSchedule(ctx, user.ID)},
		{Area: repository.AreaHistory, Err: s.historyRepo.DeleteByUser(ctx, user.ID)},
	}}
}
