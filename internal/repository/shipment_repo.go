package repository

import (
	"context"
	"errors"

	"courier-billing-backend/internal/billingerr"
	"courier-billing-backend/internal/models"

	"gorm.io/gorm"
)

type ShipmentRepository struct {
	db *gorm.DB
}

func NewShipmentRepository(db *gorm.DB) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

func (r *ShipmentRepository) Create(ctx context.Context, shipment *models.Shipment) error {
	return r.db.WithContext(ctx).Create(shipment).Error
}

func (r *ShipmentRepository) GetByAWB(ctx context.Context, awb string) (*models.Shipment, error) {
	var shipment models.Shipment
	err := r.db.WithContext(ctx).First(&shipment, "awb = ?", awb).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, billingerr.ErrShipmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &shipment, nil
}

func (r *ShipmentRepository) ListByAccount(ctx context.Context, accountCode string) ([]models.Shipment, error) {
	var shipments []models.Shipment
	err := r.db.WithContext(ctx).
		Where("account_code = ?", accountCode).
		Order("shipment_date ASC").
		Find(&shipments).Error
	return shipments, err
}

func (r *ShipmentRepository) List(ctx context.Context) ([]models.Shipment, error) {
	var shipments []models.Shipment
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(200).Find(&shipments).Error
	return shipments, err
}
