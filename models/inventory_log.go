package models

import (
	"time"

	"github.com/google/uuid"
)

type InventoryChangeType string

const (
	InventoryChangeOrderConfirmed   InventoryChangeType = "ORDER_CONFIRMED"
	InventoryChangeOrderCancelled   InventoryChangeType = "ORDER_CANCELLED"
	InventoryChangeManualAdjustment InventoryChangeType = "MANUAL_ADJUSTMENT"
)

// InventoryLog is the append-only audit trail of every stock delta. Quantity
// is signed: negative for reservations, positive for restores.
type InventoryLog struct {
	ID         uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VariantID  uuid.UUID           `gorm:"type:uuid;not null;index" json:"variant_id"`
	OrderID    *uuid.UUID          `gorm:"type:uuid;index" json:"order_id,omitempty"`
	Quantity   int                 `gorm:"not null" json:"quantity"`
	ChangeType InventoryChangeType `gorm:"type:varchar(32);not null" json:"change_type"`
	Note       string              `gorm:"type:text" json:"note,omitempty"`
	CreatedAt  time.Time           `gorm:"autoCreateTime" json:"created_at"`
}
