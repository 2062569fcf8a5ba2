package repository

import (
	"context"
	"errors"

	"courier-billing-backend/internal/billingerr"
	"courier-billing-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ZoneRepository struct {
	db *gorm.DB
}

func NewZoneRepository(db *gorm.DB) *ZoneRepository {
	return &ZoneRepository{db: db}
}

func (r *ZoneRepository) Create(ctx context.Context, zone *models.Zone) error {
	return r.db.WithContext(ctx).Create(zone).Error
}

func (r *ZoneRepository) List(ctx context.Context) ([]models.Zone, error) {
	var zones []models.Zone
	err := r.db.WithContext(ctx).Order("sector ASC, destination_zone ASC").Find(&zones).Error
	return zones, err
}

func (r *ZoneRepository) ListBySector(ctx context.Context, sector string) ([]models.Zone, error) {
	var zones []models.Zone
	err := r.db.WithContext(ctx).Where("sector = ?", sector).Find(&zones).Error
	return zones, err
}

// GetRate resolves the base rate for a (sector, destination zone) pair.
// Sector alone is not sufficient: the destination zone disambiguates.
func (r *ZoneRepository) GetRate(ctx context.Context, sector, destinationZone string) (decimal.Decimal, error) {
	var zone models.Zone
	err := r.db.WithContext(ctx).
		First(&zone, "sector = ? AND destination_zone = ?", sector, destinationZone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, billingerr.ErrRateNotFound
	}
	if err != nil {
		return decimal.Zero, err
	}
	return zone.RatePerKg, nil
}
