package repository

import (
	"context"
	"errors"

	"courier-billing-backend/internal/billingerr"
	"courier-billing-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ClubbingRepository struct {
	db *gorm.DB
}

func NewClubbingRepository(db *gorm.DB) *ClubbingRepository {
	return &ClubbingRepository{db: db}
}

func (r *ClubbingRepository) CreateBatch(ctx context.Context, batch *models.ClubbingBatch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

func (r *ClubbingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ClubbingBatch, error) {
	var batch models.ClubbingBatch
	err := r.db.WithContext(ctx).Preload("Members").First(&batch, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

// FindBatchForAWB returns the clubbing batch containing the AWB, or nil when
// the shipment travels unclubbed. Always a fresh read: lock state and member
// weights gate billing and must never be served from a cache.
func (r *ClubbingRepository) FindBatchForAWB(ctx context.Context, awb string) (*models.ClubbingBatch, error) {
	var member models.ClubbingMember
	err := r.db.WithContext(ctx).First(&member, "awb = ?", awb).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, member.BatchID)
}

// UpdateMemberWeights amends member weights on an unlocked batch. Locked
// batches are frozen; the guard lives here, not in handler code.
func (r *ClubbingRepository) UpdateMemberWeights(ctx context.Context, batchID uuid.UUID, weights map[string]decimal.Decimal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var batch models.ClubbingBatch
		if err := tx.First(&batch, "id = ?", batchID).Error; err != nil {
			return err
		}
		if batch.Locked {
			return billingerr.ErrClubbingLocked
		}
		for awb, weight := range weights {
			res := tx.Model(&models.ClubbingMember{}).
				Where("batch_id = ? AND awb = ?", batchID, awb).
				Update("weight", weight)
			if res.Error != nil {
				return res.Error
			}
		}
		return nil
	})
}

// Lock transitions open -> locked, freezing the batch weights.
func (r *ClubbingRepository) Lock(ctx context.Context, batchID uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&models.ClubbingBatch{}).
		Where("id = ? AND locked = ?", batchID, false).
		Update("locked", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return billingerr.ErrClubbingLocked
	}
	return nil
}
