package models

import (
	"time"

	"gorm.io/gorm"
)

// Timestamps carries the audit columns shared by every catalog table. Both
// columns are stamped in Go rather than by database defaults, so SQLite test
// databases and PostgreSQL record identical values.
type Timestamps struct {
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (ts *Timestamps) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	ts.CreatedAt = now
	ts.UpdatedAt = now
	return nil
}

func (ts *Timestamps) BeforeUpdate(tx *gorm.DB) error {
	ts.UpdatedAt = time.Now()
	return nil
}
