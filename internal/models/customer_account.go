package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerAccount is the aggregation root for invoices and balance history.
// Balance is mutated only through the ledger service; BalanceVersion guards
// concurrent updates (conditional UPDATE, bump on every write).
type CustomerAccount struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	AccountCode    string          `gorm:"uniqueIndex" json:"account_code"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Balance        decimal.Decimal `gorm:"type:numeric" json:"balance"`
	BalanceVersion int64           `json:"balance_version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
