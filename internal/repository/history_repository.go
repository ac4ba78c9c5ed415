package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"timeboxer/internal/model"
)

// HistoryRepository stores import summaries. Records are append-only;
// the only other operation is wiping a user's history.
type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Save(ctx context.Context, record *model.ImportRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("save import record: %w", err)
	}
	return nil
}

// ListByUser returns the user's import history, newest first, with
// rejection details attached.
func (r *HistoryRepository) ListByUser(ctx context.Context, userID uint) ([]model.ImportRecord, error) {
	var records []model.ImportRecord
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Preload("Rejections").
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list import history: %w", err)
	}
	return records, nil
}

// DeleteByUser wipes the user's import history, rejections included.
func (r *HistoryRepository) DeleteByUser(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&model.ImportRecord{}).Where("user_id = ?", userID).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) > 0 {
			if err := tx.Where("import_record_id IN ?", ids).
				Delete(&model.ImportRejection{}).Error; err != nil {
				return err
			}
		}
		return tx.Where("user_id = ?", userID).Delete(&model.ImportRecord{}).Error
	})
	if err != nil {
		return fmt.Errorf("delete import history: %w", err)
	}
	return nil
}
