package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClubbingBatch groups AWBs traveling together on one run. Once locked the
// member weights are frozen; unlocked batches may still be amended.
type ClubbingBatch struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	RunEntryID uuid.UUID       `gorm:"index" json:"run_entry_id"`
	BagWeight  decimal.Decimal `gorm:"type:numeric" json:"bag_weight"`
	Locked     bool            `json:"locked"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	Members []ClubbingMember `gorm:"foreignKey:BatchID" json:"members,omitempty"`
}

type ClubbingMember struct {
	ID      uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	BatchID uuid.UUID       `gorm:"index;uniqueIndex:idx_batch_awb" json:"batch_id"`
	AWB     string          `gorm:"column:awb;uniqueIndex:idx_batch_awb" json:"awb"`
	Weight  decimal.Decimal `gorm:"type:numeric" json:"weight"`
}
