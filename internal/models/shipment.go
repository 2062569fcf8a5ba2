package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Shipment is a single consignment identified by its air waybill number.
type Shipment struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	AWB             string          `gorm:"uniqueIndex;column:awb" json:"awb"`
	AccountCode     string          `gorm:"index" json:"account_code"`
	Origin          string          `json:"origin"`
	Sector          string          `json:"sector"`
	DestinationZone string          `json:"destination_zone"`
	Service         string          `json:"service"`
	DeclaredWeight  decimal.Decimal `gorm:"type:numeric" json:"declared_weight"`
	ShipmentDate    time.Time       `json:"shipment_date"`
	CreatedAt       time.Time       `json:"created_at"`
}
