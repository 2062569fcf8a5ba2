package repository

import (
	"context"

	"courier-billing-backend/internal/models"

	"gorm.io/gorm"
)

type RunEntryRepository struct {
	db *gorm.DB
}

func NewRunEntryRepository(db *gorm.DB) *RunEntryRepository {
	return &RunEntryRepository{db: db}
}

func (r *RunEntryRepository) Create(ctx context.Context, run *models.RunEntry) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *RunEntryRepository) List(ctx context.Context) ([]models.RunEntry, error) {
	var runs []models.RunEntry
	err := r.db.WithContext(ctx).Order("run_date DESC").Find(&runs).Error
	return runs, err
}
