package repository

import (
	"context"
	"errors"

	"storefront-service/models"

	"gorm.io/gorm"
)

// ShippingRuleRepository defines read access to shipping rules. Rules are
// managed elsewhere; checkout only resolves against active rows.
type ShippingRuleRepository interface {
	FindActiveByTownship(ctx context.Context, township string) (*models.ShippingRule, error)
	FindActiveByZoneKey(ctx context.Context, zoneKey string) (*models.ShippingRule, error)
	// FindActiveByStateRegion matches rules scoped to the state with no
	// township restriction.
	FindActiveByStateRegion(ctx context.Context, stateRegion string) (*models.ShippingRule, error)
	FindActiveFallback(ctx context.Context) (*models.ShippingRule, error)
}

// GormShippingRuleRepository implements ShippingRuleRepository using GORM.
type GormShippingRuleRepository struct {
	db *gorm.DB
}

func (r *GormShippingRuleRepository) first(ctx context.Context, conds string, args ...interface{}) (*models.ShippingRule, error) {
	var rule models.ShippingRule
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where(conds, args...).
		Order("sort_order ASC").
		First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rule, nil
}

func (r *GormShippingRuleRepository) FindActiveByTownship(ctx context.Context, township string) (*models.ShippingRule, error) {
	return r.first(ctx, "township_city = ?", township)
}

func (r *GormShippingRuleRepository) FindActiveByZoneKey(ctx context.Context, zoneKey string) (*models.ShippingRule, error) {
	return r.first(ctx, "zone_key = ?", zoneKey)
}

func (r *GormShippingRuleRepository) FindActiveByStateRegion(ctx context.Context, stateRegion string) (*models.ShippingRule, error) {
	return r.first(ctx, "state_region = ? AND township_city IS NULL", stateRegion)
}

func (r *GormShippingRuleRepository) FindActiveFallback(ctx context.Context) (*models.ShippingRule, error) {
	return r.first(ctx, "is_fallback = ?", true)
}
