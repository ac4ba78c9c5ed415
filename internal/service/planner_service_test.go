package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"timeboxer/internal/clock"
	"timeboxer/internal/model"
	"timeboxer/internal/repository"
	"timeboxer/internal/schedule"
)

func newTestPlanner(t *testing.T) (*PlannerService, *model.User) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Schedule{}, &model.Task{}, &model.ImportRecord{}, &model.ImportRejection{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	user := &model.User{TelegramID: 42, FirstName: "Test"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	planner := NewPlannerService(
		repository.NewScheduleRepository(db),
		repository.NewHistoryRepository(db),
		"09:00",
	)
	return planner, user
}

func importRows() []schedule.Row {
	row := func(orderID, name, duration string) schedule.Row {
		return schedule.Row{
			OrderID:  schedule.TextCell(orderID),
			Name:     schedule.TextCell(name),
			Duration: schedule.TextCell(duration),
		}
	}
	return []schedule.Row{
		row("1", "Standup", "0:30"),
		row("2", "Code review", "0:45"),
		row("3", "Deep work", "1:00"),
	}
}

func TestPlannerImport(t *testing.T) {
	ctx := context.Background()

	t.Run("import computes and persists times", func(t *testing.T) {
		planner, user := newTestPlanner(t)

		outcome, err := planner.Import(ctx, user, importRows(), "monday.xlsx")
		if err != nil {
			t.Fatalf("import: %v", err)
		}
		if outcome.Summary.AcceptedCount != 3 || outcome.Summary.RejectedCount != 0 {
			t.Errorf("summary = (%d, %d)", outcome.Summary.AcceptedCount, outcome.Summary.RejectedCount)
		}

		want := [][2]string{
			{"09:00", "09:30"},
			{"09:30", "10:15"},
			{"10:15", "11:15"},
		}
		for i, pair := range want {
			if outcome.Tasks[i].StartTime != pair[0] || outcome.Tasks[i].EndTime != pair[1] {
				t.Errorf("task %d: (%s, %s), want (%s, %s)",
					i, outcome.Tasks[i].StartTime, outcome.Tasks[i].EndTime, pair[0], pair[1])
			}
		}

		// The persisted copy matches what was returned.
		tasks, start, err := planner.Plan(ctx, user)
		if err != nil {
			t.Fatalf("plan: %v", err)
		}
		if start != "09:00" || len(tasks) != 3 || tasks[2].EndTime != "11:15" {
			t.Errorf("persisted plan diverged: start=%s tasks=%+v", start, tasks)
		}
	})

	t.Run("import history is recorded", func(t *testing.T) {
		planner, user := newTestPlanner(t)
		rows := append(importRows(), schedule.Row{
			OrderID:  schedule.TextCell("4"),
			Name:     schedule.TextCell(""),
			Duration: schedule.TextCell("0:30"),
		})
		if _, err := planner.Import(ctx, user, rows, "tuesday.xlsx"); err != nil {
			t.Fatalf("import: %v", err)
		}

		records, err := planner.History(ctx, user)
		if err != nil {
			t.Fatalf("history: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("got %d history records, want 1", len(records))
		}
		if records[0].RejectedCount != 1 || len(records[0].Rejections) != 1 {
			t.Errorf("record = %+v", records[0])
		}
		if records[0].Rejections[0].RowNumber != 4 {
			t.Errorf("rejection row = %d, want 4", records[0].Rejections[0].RowNumber)
		}
	})

	t.Run("second import appends after existing tasks", func(t *testing.T) {
		planner, user := newTestPlanner(t)
		if _, err := planner.Import(ctx, user, importRows(), "first.xlsx"); err != nil {
			t.Fatalf("first import: %v", err)
		}
		outcome, err := planner.Import(ctx, user, importRows()[:1], "second.xlsx")
		if err != nil {
			t.Fatalf("second import: %v", err)
		}
		if len(outcome.Tasks) != 4 {
			t.Fatalf("got %d tasks, want 4", len(outcome.Tasks))
		}
		if outcome.Tasks[3].StartTime != "11:15" {
			t.Errorf("appended task starts at %s, want 11:15", outcome.Tasks[3].StartTime)
		}
		// Cross-batch order-id collisions stay as-is.
		if outcome.Tasks[0].OrderID != 1 || outcome.Tasks[3].OrderID != 1 {
			t.Errorf("cross-batch order ids changed: %d, %d",
				outcome.Tasks[0].OrderID, outcome.Tasks[3].OrderID)
		}
	})
}

func TestPlannerReorder(t *testing.T) {
	ctx := context.Background()
	planner, user := newTestPlanner(t)
	if _, err := planner.Import(ctx, user, importRows(), "plan.xlsx"); err != nil {
		t.Fatalf("import: %v", err)
	}

	t.Run("move last task first", func(t *testing.T) {
		tasks, _, err := planner.Reorder(ctx, user, 2, 0)
		if err != nil {
			t.Fatalf("reorder: %v", err)
		}
		want := [][2]string{
			{"09:00", "10:00"},
			{"10:00", "10:30"},
			{"10:30", "11:15"},
		}
		for i, pair := range want {
			if tasks[i].StartTime != pair[0] || tasks[i].EndTime != pair[1] {
				t.Errorf("task %d: (%s, %s), want (%s, %s)",
					i, tasks[i].StartTime, tasks[i].EndTime, pair[0], pair[1])
			}
		}
		if tasks[0].Name != "Deep work" {
			t.Errorf("moved task is %q", tasks[0].Name)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		if _, _, err := planner.Reorder(ctx, user, 0, 5); err == nil {
			t.Error("expected an error for an out-of-range index")
		}
	})
}

func TestPlannerStartTime(t *testing.T) {
	ctx := context.Background()

	t.Run("change shifts every task", func(t *testing.T) {
		planner, user := newTestPlanner(t)
		if _, err := planner.Import(ctx, user, importRows(), "plan.xlsx"); err != nil {
			t.Fatalf("import: %v", err)
		}

		tasks, err := planner.SetStartTime(ctx, user, "14:00")
		if err != nil {
			t.Fatalf("set start: %v", err)
		}
		if tasks[0].StartTime != "14:00" || tasks[2].EndTime != "16:15" {
			t.Errorf("shifted plan = %+v", tasks)
		}
	})

	t.Run("invalid format leaves the schedule untouched", func(t *testing.T) {
		planner, user := newTestPlanner(t)
		if _, err := planner.Import(ctx, user, importRows(), "plan.xlsx"); err != nil {
			t.Fatalf("import: %v", err)
		}

		_, err := planner.SetStartTime(ctx, user, "9:00")
		var formatErr *clock.FormatError
		if !errors.As(err, &formatErr) {
			t.Fatalf("expected *clock.FormatError, got %v", err)
		}

		_, start, err := planner.Plan(ctx, user)
		if err != nil {
			t.Fatalf("plan: %v", err)
		}
		if start != "09:00" {
			t.Errorf("start changed to %q after a rejected update", start)
		}
	})

	t.Run("set to now uses the captured clock", func(t *testing.T) {
		planner, user := newTestPlanner(t)
		if _, err := planner.Import(ctx, user, importRows()[:1], "plan.xlsx"); err != nil {
			t.Fatalf("import: %v", err)
		}
		tasks, err := planner.SetToNow(ctx, user, clock.TimeOfDay{Hour: 16, Minute: 5})
		if err != nil {
			t.Fatalf("set to now: %v", err)
		}
		if tasks[0].StartTime != "16:05" {
			t.Errorf("start = %s, want 16:05", tasks[0].StartTime)
		}
	})
}

func TestPlannerDirectMutations(t *testing.T) {
	ctx := context.Background()

	t.Run("add task validates input", func(t *testing.T) {
		planner, user := newTestPlanner(t)
		_, err := planner.AddTask(ctx, user, schedule.TaskInput{OrderID: 1, Name: "  ", DurationMinutes: 30})
		var validationErr *schedule.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected *schedule.ValidationError, got %v", err)
		}

		tasks, _, err := planner.Plan(ctx, user)
		if err != nil {
			t.Fatalf("plan: %v", err)
		}
		if len(tasks) != 0 {
			t.Errorf("rejected task was saved: %+v", tasks)
		}
	})

	t.Run("add, annotate, remove", func(t *testing.T) {
		planner, user := newTestPlanner(t)
		tasks, err := planner.AddTask(ctx, user, schedule.TaskInput{OrderID: 1, Name: "Solo", DurationMinutes: 45})
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if tasks[0].StartTime != "09:00" || tasks[0].EndTime != "09:45" {
			t.Errorf("times = (%s, %s)", tasks[0].StartTime, tasks[0].EndTime)
		}

		task, err := planner.UpdateNotes(ctx, user, 0, "bring laptop")
		if err != nil {
			t.Fatalf("notes: %v", err)
		}
		if task.Notes != "bring laptop" {
			t.Errorf("notes = %q", task.Notes)
		}

		tasks, err = planner.RemoveTask(ctx, user, 0)
		if err != nil {
			t.Fatalf("remove: %v", err)
		}
		if len(tasks) != 0 {
			t.Errorf("task survived removal: %+v", tasks)
		}
	})
}

func TestPlannerClearAll(t *testing.T) {
	ctx := context.Background()
	planner, user := newTestPlanner(t)
	if _, err := planner.Import(ctx, user, importRows(), "plan.xlsx"); err != nil {
		t.Fatalf("import: %v", err)
	}

	result := planner.ClearAll(ctx, user)
	if !result.Success() {
		t.Fatalf("clear failed: %v", result.Errors())
	}
	if len(result.Statuses) != 3 {
		t.Errorf("got %d areas, want 3", len(result.Statuses))
	}

	tasks, start, err := planner.Plan(ctx, user)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("tasks survived: %+v", tasks)
	}
	if start != "09:00" {
		t.Errorf("start = %q, want default 09:00", start)
	}

	records, err := planner.History(ctx, user)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("history survived: %+v", records)
	}
}

func TestFormatPlan(t *testing.T) {
	tasks := []model.Task{
		{Name: "Standup", DurationMinutes: 30, StartTime: "23:45", EndTime: "00:15"},
	}
	text := FormatPlan(tasks, "23:45")
	if !strings.Contains(text, "23:45–00:15") {
		t.Errorf("plan text missing the wrapped slot: %s", text)
	}
	if !strings.Contains(text, "полночь") {
		t.Errorf("plan text missing the midnight note: %s", text)
	}
}
