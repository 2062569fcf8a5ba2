package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EntryInvoice = "invoice"
	EntryReceipt = "receipt"
)

// LedgerEntry is one balance-affecting event for a customer account.
// Invoices carry positive amounts, receipts negative. The unique index on
// (account, type, reference) makes application idempotent: replaying the
// same invoice or receipt is a no-op detected at insert time.
type LedgerEntry struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	AccountCode  string          `gorm:"index;uniqueIndex:idx_entry_ref" json:"account_code"`
	EntryType    string          `gorm:"uniqueIndex:idx_entry_ref" json:"entry_type"`
	ReferenceID  string          `gorm:"uniqueIndex:idx_entry_ref" json:"reference_id"`
	Amount       decimal.Decimal `gorm:"type:numeric" json:"amount"`
	BalanceAfter decimal.Decimal `gorm:"type:numeric" json:"balance_after"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
}
