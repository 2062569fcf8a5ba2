package repository

import (
	"context"
	"fmt"

	"courier-billing-backend/internal/billingerr"
	"courier-billing-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Apply commits one balance-affecting event atomically: the ledger entry
// insert, the versioned balance update, and (for invoices) the built ->
// applied status flip all land in one transaction.
//
// The entry insert uses ON CONFLICT DO NOTHING on (account, type, reference);
// zero rows affected means this invoice/receipt was already applied. The
// balance update is conditional on the version the caller read, so a
// concurrent writer rolls the whole transaction back with ErrConflict and the
// caller retries with a fresh read.
func (r *LedgerRepository) Apply(ctx context.Context, entry *models.LedgerEntry, expectVersion int64, invoiceID *uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(entry)
		if res.Error != nil {
			return fmt.Errorf("insert ledger entry: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return billingerr.ErrAlreadyApplied
		}

		upd := tx.Model(&models.CustomerAccount{}).
			Where("account_code = ? AND balance_version = ?", entry.AccountCode, expectVersion).
			Updates(map[string]interface{}{
				"balance":         entry.BalanceAfter,
				"balance_version": expectVersion + 1,
			})
		if upd.Error != nil {
			return fmt.Errorf("update balance: %w", upd.Error)
		}
		if upd.RowsAffected == 0 {
			return billingerr.ErrConflict
		}

		if invoiceID != nil {
			iu := tx.Model(&models.Invoice{}).
				Where("id = ? AND status = ?", *invoiceID, models.InvoiceBuilt).
				Update("status", models.InvoiceApplied)
			if iu.Error != nil {
				return fmt.Errorf("mark invoice applied: %w", iu.Error)
			}
			if iu.RowsAffected == 0 {
				// The invoice left built state between the caller's read and
				// this commit. Applied means a duplicate application; any
				// other state (a concurrent void) is a conflict.
				var current models.Invoice
				if err := tx.Select("status").First(&current, "id = ?", *invoiceID).Error; err != nil {
					return fmt.Errorf("check invoice status: %w", err)
				}
				if current.Status == models.InvoiceApplied {
					return billingerr.ErrAlreadyApplied
				}
				return billingerr.ErrConflict
			}
		}
		return nil
	})
}

// Entries returns the ordered balance history for an account. Replaying it
// from zero must reproduce the stored balance.
func (r *LedgerRepository) Entries(ctx context.Context, accountCode string) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("account_code = ?", accountCode).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	return entries, err
}
