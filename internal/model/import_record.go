package model

import "time"

// ImportRecord summarizes one import batch. It is written once after the
// batch finishes and never updated, so it doubles as import history.
type ImportRecord struct {
	ID            uint   `gorm:"primaryKey"`
	UserID        uint   `gorm:"index"`
	SourceName    string
	AcceptedCount int
	RejectedCount int
	Rejections    []ImportRejection `gorm:"foreignKey:ImportRecordID"`
	CreatedAt     time.Time
}

// ImportRejection records one failed row: its 1-based position in the
// batch and a human-readable reason. Rejections are data, not errors; a
// bad row never aborts its batch.
type ImportRejection struct {
	ID             uint `gorm:"primaryKey"`
	ImportRecordID uint `gorm:"index"`
	RowNumber      int
	Reason         string
}
