package repository

import (
	"context"
	"errors"

	"courier-billing-backend/internal/billingerr"
	"courier-billing-backend/internal/models"

	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, account *models.CustomerAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *CustomerRepository) List(ctx context.Context) ([]models.CustomerAccount, error) {
	var accounts []models.CustomerAccount
	err := r.db.WithContext(ctx).Order("account_code ASC").Find(&accounts).Error
	return accounts, err
}

func (r *CustomerRepository) GetByCode(ctx context.Context, code string) (*models.CustomerAccount, error) {
	var account models.CustomerAccount
	err := r.db.WithContext(ctx).First(&account, "account_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, billingerr.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}
