package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShippingRule maps a delivery zone to a flat fee. Exactly one active rule
// should carry is_fallback for checkout to succeed on unmatched locations.
type ShippingRule struct {
	ID                    uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ZoneKey               string           `gorm:"type:varchar(64);not null;index" json:"zone_key"`
	ZoneLabel             string           `gorm:"type:varchar(128);not null" json:"zone_label"`
	StateRegion           *string          `gorm:"type:varchar(128);index" json:"state_region,omitempty"`
	TownshipCity          *string          `gorm:"type:varchar(128);index" json:"township_city,omitempty"`
	Fee                   decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"fee"`
	FreeShippingThreshold *decimal.Decimal `gorm:"type:decimal(12,2)" json:"free_shipping_threshold,omitempty"`
	ETALabel              string           `gorm:"type:varchar(128)" json:"eta_label,omitempty"`
	IsFallback            bool             `gorm:"not null;default:false" json:"is_fallback"`
	IsActive              bool             `gorm:"not null;default:true" json:"is_active"`
	SortOrder             int              `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt             time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// FeeFor applies the free-shipping threshold against the order subtotal.
func (r *ShippingRule) FeeFor(subtotal decimal.Decimal) decimal.Decimal {
	if r.FreeShippingThreshold != nil && subtotal.GreaterThanOrEqual(*r.FreeShippingThreshold) {
		return decimal.Zero
	}
	return r.Fee
}
