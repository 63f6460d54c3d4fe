package repository

import (
	"context"
	"errors"

	"storefront-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create inserts the full order graph (items, address, initial history).
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// FindByIDForUpdate locks the order row for the enclosing transaction so
	// status checks and writes cannot interleave with a concurrent request.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByCode(ctx context.Context, code string) (*models.Order, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*models.Order, error)
	FindAll(ctx context.Context, page, limit int) ([]models.Order, int64, error)
	Save(ctx context.Context, order *models.Order) error
	AppendStatusHistory(ctx context.Context, entry *models.OrderStatusHistory) error
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

func (r *GormOrderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items").
		Preload("Address").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_status_histories.created_at ASC")
		})
}

func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.preloaded(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	// Lock only the orders row; preloads run as separate unlocked queries.
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := r.db.WithContext(ctx).Where("order_id = ?", id).Find(&order.Items).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindByCode(ctx context.Context, code string) (*models.Order, error) {
	var order models.Order
	if err := r.preloaded(ctx).Where("code = ?", code).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindByIdempotencyKey(ctx context.Context, key string) (*models.Order, error) {
	var order models.Order
	if err := r.preloaded(ctx).Where("idempotency_key = ?", key).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll retrieves all orders with pagination, newest first.
func (r *GormOrderRepository) FindAll(ctx context.Context, page, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Order{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Preload("Items").
		Preload("Address").
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *GormOrderRepository) Save(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).
		Omit("Items", "Address", "StatusHistory").
		Save(order).Error
}

func (r *GormOrderRepository) AppendStatusHistory(ctx context.Context, entry *models.OrderStatusHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
