package repository

import (
	"context"
	"errors"

	"courier-billing-backend/internal/billingerr"
	"courier-billing-backend/internal/models"

	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *InvoiceRepository) GetByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).First(&invoice, "invoice_number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, billingerr.ErrInvoiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *InvoiceRepository) ListByAccount(ctx context.Context, accountCode string) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.WithContext(ctx).
		Where("account_code = ?", accountCode).
		Order("created_at DESC").
		Find(&invoices).Error
	return invoices, err
}

// MarkVoid transitions built -> void. Applied invoices are immutable and
// require a compensating credit, never an in-place edit.
func (r *InvoiceRepository) MarkVoid(ctx context.Context, number string) error {
	res := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("invoice_number = ? AND status = ?", number, models.InvoiceBuilt).
		Update("status", models.InvoiceVoid)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish missing from wrong-state for the error taxonomy.
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Invoice{}).
			Where("invoice_number = ?", number).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return billingerr.ErrInvoiceNotFound
		}
		return billingerr.ErrInvoiceNotVoidable
	}
	return nil
}
