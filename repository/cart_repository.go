package repository

import (
	"context"
	"errors"

	"storefront-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	FindActiveByToken(ctx context.Context, token string) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	FindItem(ctx context.Context, cartID, variantID uuid.UUID) (*models.CartItem, error)
	SaveItem(ctx context.Context, item *models.CartItem) error
	DeleteItem(ctx context.Context, cartID, variantID uuid.UUID) error
	// MarkConverted flips the cart to CONVERTED and purges its items.
	MarkConverted(ctx context.Context, cartID uuid.UUID) error
}

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// FindActiveByToken retrieves the ACTIVE cart for a token with items and
// their variants preloaded.
func (r *GormCartRepository) FindActiveByToken(ctx context.Context, token string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.created_at ASC") }).
		Preload("Items.Variant").
		Preload("Items.Variant.Product").
		Where("token = ? AND status = ?", token, models.CartStatusActive).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cart, nil
}

func (r *GormCartRepository) Create(ctx context.Context, cart *models.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

func (r *GormCartRepository) FindItem(ctx context.Context, cartID, variantID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND variant_id = ?", cartID, variantID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *GormCartRepository) SaveItem(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *GormCartRepository) DeleteItem(ctx context.Context, cartID, variantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND variant_id = ?", cartID, variantID).
		Delete(&models.CartItem{}).Error
}

// MarkConverted flips status and deletes the cart's items in place. Must run
// inside the checkout transaction so conversion is atomic with order insert.
func (r *GormCartRepository) MarkConverted(ctx context.Context, cartID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("status", models.CartStatusConverted).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}).Error
}
