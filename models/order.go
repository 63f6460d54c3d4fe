package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusDelivering OrderStatus = "DELIVERING"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

type PaymentMethod string

const (
	PaymentMethodCOD             PaymentMethod = "COD"
	PaymentMethodPrepaidTransfer PaymentMethod = "PREPAID_TRANSFER"
)

type PaymentStatus string

const (
	PaymentStatusNotRequired   PaymentStatus = "NOT_REQUIRED"
	PaymentStatusPendingReview PaymentStatus = "PENDING_REVIEW"
	PaymentStatusVerified      PaymentStatus = "VERIFIED"
	PaymentStatusRejected      PaymentStatus = "REJECTED"
)

// orderTransitions is the full adjacency list; DELIVERED and CANCELLED are
// terminal. Cancellation restores stock exactly once because CANCELLED has no
// outgoing edges.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusDelivering, OrderStatusCancelled},
	OrderStatusDelivering: {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// AllowedTransitions returns the targets reachable from s, in table order.
func (s OrderStatus) AllowedTransitions() []OrderStatus {
	return orderTransitions[s]
}

// CanTransitionTo reports whether target is reachable from s.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s has no outgoing transitions.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// ValidOrderStatus reports whether s is one of the known statuses.
func ValidOrderStatus(s OrderStatus) bool {
	_, ok := orderTransitions[s]
	return ok
}

// Order is created once by checkout and mutated only through the status
// state machine. Money columns render as decimal strings in JSON.
type Order struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code           string          `gorm:"type:varchar(40);uniqueIndex;not null" json:"code"`
	IdempotencyKey *string         `gorm:"type:varchar(128);uniqueIndex" json:"-"`
	Status         OrderStatus     `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	PaymentMethod  PaymentMethod   `gorm:"type:varchar(20);not null" json:"payment_method"`
	PaymentStatus  PaymentStatus   `gorm:"type:varchar(20);not null" json:"payment_status"`

	PaymentProofURL  *string `gorm:"type:varchar(1024)" json:"payment_proof_url,omitempty"`
	PaymentReference *string `gorm:"type:varchar(255)" json:"payment_reference,omitempty"`

	Currency    string          `gorm:"type:varchar(8);not null;default:'MMK'" json:"currency"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	DeliveryFee decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"delivery_fee"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`

	// Shipping zone snapshot; rule edits after checkout must not change it.
	ShippingZoneKey   string `gorm:"type:varchar(64);not null" json:"shipping_zone_key"`
	ShippingZoneLabel string `gorm:"type:varchar(128);not null" json:"shipping_zone_label"`
	ShippingETALabel  string `gorm:"type:varchar(128)" json:"shipping_eta_label"`

	Items         []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Address       *OrderAddress        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"address,omitempty"`
	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"status_history,omitempty"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// OrderItem denormalizes product and variant identity so later catalog edits
// cannot rewrite order history.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	VariantID   uuid.UUID       `gorm:"type:uuid;not null" json:"variant_id"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	VariantSKU  string          `gorm:"type:varchar(64);not null" json:"variant_sku"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"line_total"`
}

type OrderAddress struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	CustomerName  string    `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone string    `gorm:"type:varchar(40);not null" json:"customer_phone"`
	CustomerEmail string    `gorm:"type:varchar(255)" json:"customer_email,omitempty"`
	Country       string    `gorm:"type:varchar(64);not null" json:"country"`
	StateRegion   string    `gorm:"type:varchar(128);not null" json:"state_region"`
	TownshipCity  string    `gorm:"type:varchar(128);not null" json:"township_city"`
	AddressLine1  string    `gorm:"type:varchar(255);not null" json:"address_line1"`
	AddressLine2  string    `gorm:"type:varchar(255)" json:"address_line2,omitempty"`
	Note          string    `gorm:"type:text" json:"note,omitempty"`
}

// OrderStatusHistory is append-only; current state is derivable from it.
type OrderStatusHistory struct {
	ID         uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"order_id"`
	FromStatus *OrderStatus `gorm:"type:varchar(20)" json:"from_status"`
	ToStatus   OrderStatus  `gorm:"type:varchar(20);not null" json:"to_status"`
	Note       string       `gorm:"type:text" json:"note,omitempty"`
	Actor      string       `gorm:"type:varchar(128)" json:"actor,omitempty"`
	CreatedAt  time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

// HasPaymentProof reports whether a non-empty proof URL is attached.
func (o *Order) HasPaymentProof() bool {
	return o.PaymentProofURL != nil && *o.PaymentProofURL != ""
}
