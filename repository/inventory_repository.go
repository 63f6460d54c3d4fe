package repository

import (
	"context"
	"errors"

	"storefront-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryRepository defines the interface for stock data access.
type InventoryRepository interface {
	FindVariant(ctx context.Context, id uuid.UUID) (*models.Variant, error)
	// DecrementStock decrements inventory only if enough remains, as one
	// atomic statement. Returns ErrInsufficientStock when nothing matched.
	DecrementStock(ctx context.Context, variantID uuid.UUID, quantity int) error
	// IncrementStock unconditionally restores inventory.
	IncrementStock(ctx context.Context, variantID uuid.UUID, quantity int) error
	AppendLog(ctx context.Context, entry *models.InventoryLog) error
	FindLogsByOrder(ctx context.Context, orderID uuid.UUID) ([]models.InventoryLog, error)
}

// GormInventoryRepository implements InventoryRepository using GORM.
type GormInventoryRepository struct {
	db *gorm.DB
}

func (r *GormInventoryRepository) FindVariant(ctx context.Context, id uuid.UUID) (*models.Variant, error) {
	var variant models.Variant
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("id = ?", id).
		First(&variant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &variant, nil
}

// DecrementStock is the no-oversell primitive: the inventory check and the
// write happen in one UPDATE, so concurrent reservations on the same variant
// cannot both succeed past exhaustion.
func (r *GormInventoryRepository) DecrementStock(ctx context.Context, variantID uuid.UUID, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&models.Variant{}).
		Where("id = ? AND inventory >= ?", variantID, quantity).
		UpdateColumn("inventory", gorm.Expr("inventory - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func (r *GormInventoryRepository) IncrementStock(ctx context.Context, variantID uuid.UUID, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&models.Variant{}).
		Where("id = ?", variantID).
		UpdateColumn("inventory", gorm.Expr("inventory + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormInventoryRepository) AppendLog(ctx context.Context, entry *models.InventoryLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *GormInventoryRepository) FindLogsByOrder(ctx context.Context, orderID uuid.UUID) ([]models.InventoryLog, error) {
	var logs []models.InventoryLog
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}
