package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ManifestActive = "active"
	ManifestClosed = "closed"
)

// Manifest is a pickup batch of AWBs for one customer. AWBs holds the
// member waybill numbers as a JSON array; shipments are referenced, not owned.
type Manifest struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ManifestNo  string         `gorm:"uniqueIndex" json:"manifest_no"`
	AccountCode string         `gorm:"index" json:"account_code"`
	Status      string         `gorm:"index" json:"status"`
	AWBs        datatypes.JSON `gorm:"column:awbs" json:"awbs"`
	CreatedAt   time.Time      `json:"created_at"`
	ClosedAt    *time.Time     `json:"closed_at,omitempty"`
}
