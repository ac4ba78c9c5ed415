package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"timeboxer/internal/model"
)

// ScheduleRepository persists each user's ordered task list and start
// time. The slice position is authoritative: saving rewrites Position on
// every task, loading orders by it.
type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// LoadSchedule returns the user's tasks in order plus the stored start
// time. A user without a schedule row gets an empty task list and an
// empty start time; the caller decides the default.
func (r *ScheduleRepository) LoadSchedule(ctx context.Context, userID uint) ([]model.Task, string, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("position ASC").Find(&tasks).Error; err != nil {
		return nil, "", fmt.Errorf("load tasks: %w", err)
	}

	var sched model.Schedule
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&sched).Error
	switch {
	case err == nil:
		return tasks, sched.StartTime, nil
	case err == gorm.ErrRecordNotFound:
		return tasks, "", nil
	default:
		return nil, "", fmt.Errorf("load schedule: %w", err)
	}
}

// SaveSchedule replaces the user's task set and start time in one
// transaction. Positions are rewritten from slice order.
func (r *ScheduleRepository) SaveSchedule(ctx context.Context, userID uint, tasks []model.Task, startTime string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.Task{}).Error; err != nil {
			return fmt.Errorf("clear tasks: %w", err)
		}
		for i := range tasks {
			tasks[i].UserID = userID
			tasks[i].Position = i
		}
		if len(tasks) > 0 {
			if err := tx.Create(&tasks).Error; err != nil {
				return fmt.Errorf("insert tasks: %w", err)
			}
		}
		return upsertStartTime(tx, userID, startTime)
	})
	if err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	return nil
}

// SetStartTime stores only the start time, leaving tasks untouched.
func (r *ScheduleRepository) SetStartTime(ctx context.Context, userID uint, startTime string) error {
	if err := upsertStartTime(r.db.WithContext(ctx), userID, startTime); err != nil {
		return fmt.Errorf("set start time: %w", err)
	}
	return nil
}

func upsertStartTime(tx *gorm.DB, userID uint, startTime string) error {
	var sched model.Schedule
	err := tx.Where("user_id = ?", userID).First(&sched).Error
	switch {
	case err == nil:
		if err := tx.Model(&sched).Update("start_time", startTime).Error; err != nil {
			return fmt.Errorf("update start time: %w", err)
		}
		return nil
	case err == gorm.ErrRecordNotFound:
		sched = model.Schedule{UserID: userID, StartTime: startTime}
		if err := tx.Create(&sched).Error; err != nil {
			return fmt.Errorf("create schedule: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("find schedule: %w", err)
	}
}

// DeleteTasks removes every task of the user.
func (r *ScheduleRepository) DeleteTasks(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Delete(&model.Task{}).Error; err != nil {
		return fmt.Errorf("delete tasks: %w", err)
	}
	return nil
}

// DeleteSchedule removes the user's start-time row.
func (r *ScheduleRepository) DeleteSchedule(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Delete(&model.Schedule{}).Error; err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}
