package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Zone maps a (sector, destination zone) pair to a base rate per kg.
// Multiple zones share a sector; the destination zone disambiguates.
type Zone struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Sector          string          `gorm:"index;uniqueIndex:idx_sector_dest" json:"sector"`
	DestinationZone string          `gorm:"uniqueIndex:idx_sector_dest" json:"destination_zone"`
	RatePerKg       decimal.Decimal `gorm:"type:numeric" json:"rate_per_kg"`
	CreatedAt       time.Time       `json:"created_at"`
}
