package repository

import (
	"context"

	"courier-billing-backend/internal/models"

	"gorm.io/gorm"
)

type SurchargeRepository struct {
	db *gorm.DB
}

func NewSurchargeRepository(db *gorm.DB) *SurchargeRepository {
	return &SurchargeRepository{db: db}
}

func (r *SurchargeRepository) Create(ctx context.Context, setting *models.SurchargeSetting) error {
	return r.db.WithContext(ctx).Create(setting).Error
}

func (r *SurchargeRepository) List(ctx context.Context, kind models.SurchargeKind) ([]models.SurchargeSetting, error) {
	var settings []models.SurchargeSetting
	err := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		Order("effective_date DESC").
		Find(&settings).Error
	return settings, err
}

// ListFor returns the account-specific and global records for one
// (kind, service) key, oldest effective date first.
func (r *SurchargeRepository) ListFor(ctx context.Context, kind models.SurchargeKind, accountCode, service string) ([]models.SurchargeSetting, error) {
	var settings []models.SurchargeSetting
	err := r.db.WithContext(ctx).
		Where("kind = ? AND service = ? AND account_code IN ?", kind, service, []string{accountCode, ""}).
		Order("effective_date ASC, created_at ASC").
		Find(&settings).Error
	return settings, err
}
