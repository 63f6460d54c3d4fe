package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is the sellable item; catalog CRUD lives elsewhere, checkout only
// reads the active flag and base price.
type Product struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Active    bool            `gorm:"not null;default:true" json:"active"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Variants  []Variant       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

// Variant carries the inventory counter. Inventory must never go negative;
// that is enforced by the conditional decrement in the inventory repository.
type Variant struct {
	ID        uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID uuid.UUID        `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product         `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	SKU       string           `gorm:"type:varchar(64);uniqueIndex;not null" json:"sku"`
	Active    bool             `gorm:"not null;default:true" json:"active"`
	Inventory int              `gorm:"not null;default:0;check:inventory >= 0" json:"inventory"`
	Price     *decimal.Decimal `gorm:"type:decimal(12,2)" json:"price,omitempty"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// EffectivePrice returns the variant override price when set, else the
// product base price.
func (v *Variant) EffectivePrice() decimal.Decimal {
	if v.Price != nil {
		return *v.Price
	}
	if v.Product != nil {
		return v.Product.Price
	}
	return decimal.Zero
}

// Sellable reports whether the variant and its product are both active.
func (v *Variant) Sellable() bool {
	return v.Active && v.Product != nil && v.Product.Active
}
