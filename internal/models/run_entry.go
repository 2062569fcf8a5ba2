package models

import (
	"time"

	"github.com/google/uuid"
)

// RunEntry is a logical transport run referenced by clubbing batches.
type RunEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RunNo     string    `gorm:"uniqueIndex" json:"run_no"`
	Route     string    `json:"route"`
	RunDate   time.Time `json:"run_date"`
	CreatedAt time.Time `json:"created_at"`
}
