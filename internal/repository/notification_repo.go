package repository

import (
	"context"

	"courier-billing-backend/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) List(ctx context.Context, accountCode string) ([]models.Notification, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC").Limit(100)
	if accountCode != "" {
		query = query.Where("account_code = ?", accountCode)
	}
	var notifications []models.Notification
	err := query.Find(&notifications).Error
	return notifications, err
}
