package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SurchargeKind string

const (
	SurchargeFuel SurchargeKind = "fuel"
	SurchargeTax  SurchargeKind = "tax"
)

// SurchargeSetting is one record in the time series of fuel/tax surcharges.
// AccountCode "" means a global default; account-specific records win.
// The record with the latest EffectiveDate not after the billing date is
// authoritative, ties broken by latest CreatedAt.
type SurchargeSetting struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Kind          SurchargeKind   `gorm:"index" json:"kind"`
	AccountCode   string          `gorm:"index" json:"account_code"`
	Service       string          `gorm:"index" json:"service"`
	Percent       decimal.Decimal `gorm:"type:numeric" json:"percent"`
	EffectiveDate time.Time       `json:"effective_date"`
	CreatedAt     time.Time       `json:"created_at"`
}
