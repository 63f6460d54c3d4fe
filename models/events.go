package models

import "time"

// OrderEvent is published to Kafka/SNS after an order transaction commits.
// Publishing is best-effort and never happens before commit.
type OrderEvent struct {
	EventType     string    `json:"event_type"` // "order.created" | "order.status_changed" | "order.payment_reviewed"
	OrderID       string    `json:"order_id"`
	OrderCode     string    `json:"order_code"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	Total         string    `json:"total"`
	Currency      string    `json:"currency"`
	Timestamp     time.Time `json:"timestamp"`
}
