package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartStatus string

const (
	CartStatusActive    CartStatus = "ACTIVE"
	CartStatusConverted CartStatus = "CONVERTED"
)

// Cart is keyed by an opaque client token. A token whose cart was converted
// gets a fresh ACTIVE cart on next use, so the token index is not unique.
type Cart struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Token     string     `gorm:"type:varchar(128);not null;index" json:"token"`
	Status    CartStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	Currency  string     `gorm:"type:varchar(8);not null;default:'MMK'" json:"currency"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// CartItem snapshots the unit price at add-time; checkout totals are computed
// from these snapshots, not the live catalog price.
type CartItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CartID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_variant" json:"cart_id"`
	VariantID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_variant" json:"variant_id"`
	Variant   *Variant        `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// Subtotal sums quantity times the snapshotted unit price over all items.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
