package repository

import (
	"context"
	"errors"
	"time"

	"courier-billing-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrManifestNotActive = errors.New("manifest is not active")

type ManifestRepository struct {
	db *gorm.DB
}

func NewManifestRepository(db *gorm.DB) *ManifestRepository {
	return &ManifestRepository{db: db}
}

func (r *ManifestRepository) Create(ctx context.Context, manifest *models.Manifest) error {
	return r.db.WithContext(ctx).Create(manifest).Error
}

func (r *ManifestRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Manifest, error) {
	var manifest models.Manifest
	if err := r.db.WithContext(ctx).First(&manifest, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &manifest, nil
}

func (r *ManifestRepository) List(ctx context.Context, accountCode string) ([]models.Manifest, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if accountCode != "" {
		query = query.Where("account_code = ?", accountCode)
	}
	var manifests []models.Manifest
	err := query.Find(&manifests).Error
	return manifests, err
}

// Close transitions active -> closed. Conditional on the current status so a
// concurrent close cannot flip it twice.
func (r *ManifestRepository) Close(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&models.Manifest{}).
		Where("id = ? AND status = ?", id, models.ManifestActive).
		Updates(map[string]interface{}{
			"status":    models.ManifestClosed,
			"closed_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrManifestNotActive
	}
	return nil
}
