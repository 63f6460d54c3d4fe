package repository

import (
	"context"
	"errors"

	"storefront-service/models"

	"gorm.io/gorm"
)

// TransferMethodRepository defines read access to prepaid transfer methods.
type TransferMethodRepository interface {
	FindActiveByCode(ctx context.Context, code string) (*models.PaymentTransferMethod, error)
}

// GormTransferMethodRepository implements TransferMethodRepository using GORM.
type GormTransferMethodRepository struct {
	db *gorm.DB
}

func (r *GormTransferMethodRepository) FindActiveByCode(ctx context.Context, code string) (*models.PaymentTransferMethod, error) {
	var method models.PaymentTransferMethod
	err := r.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", code, true).
		First(&method).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &method, nil
}
