package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Invoice lifecycle: draft -> built -> applied (terminal).
// A built invoice may be voided (terminal, no balance effect); an applied
// invoice is immutable and reversed only by a compensating credit entry.
const (
	InvoiceDraft   = "draft"
	InvoiceBuilt   = "built"
	InvoiceApplied = "applied"
	InvoiceVoid    = "void"
)

type Invoice struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceNumber string          `gorm:"uniqueIndex" json:"invoice_number"`
	AccountCode   string          `gorm:"index" json:"account_code"`
	BillingDate   time.Time       `json:"billing_date"`
	Status        string          `gorm:"index" json:"status"`
	Lines         datatypes.JSON  `json:"lines"`
	Total         decimal.Decimal `gorm:"type:numeric" json:"total"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// InvoiceLine is one priced shipment on an invoice, serialized into the
// Lines JSON column. Tax is computed on the base+fuel subtotal.
type InvoiceLine struct {
	AWB           string          `json:"awb"`
	Weight        decimal.Decimal `json:"weight"`
	Rate          decimal.Decimal `json:"rate"`
	Base          decimal.Decimal `json:"base"`
	FuelSurcharge decimal.Decimal `json:"fuel_surcharge"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
}
