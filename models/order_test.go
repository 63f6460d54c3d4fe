package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusConfirmed))
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusPending.CanTransitionTo(OrderStatusDelivered))
	assert.False(t, OrderStatusPending.CanTransitionTo(OrderStatusPending))

	assert.True(t, OrderStatusConfirmed.CanTransitionTo(OrderStatusDelivering))
	assert.False(t, OrderStatusConfirmed.CanTransitionTo(OrderStatusConfirmed))

	assert.True(t, OrderStatusDelivering.CanTransitionTo(OrderStatusDelivered))
	assert.False(t, OrderStatusDelivering.CanTransitionTo(OrderStatusConfirmed))
}

func TestOrderStatusTerminality(t *testing.T) {
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusConfirmed.IsTerminal())
	assert.False(t, OrderStatusDelivering.IsTerminal())

	assert.Empty(t, OrderStatusDelivered.AllowedTransitions())
	assert.Empty(t, OrderStatusCancelled.AllowedTransitions())
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivering,
		OrderStatusDelivered, OrderStatusCancelled,
	} {
		assert.True(t, ValidOrderStatus(s))
	}
	assert.False(t, ValidOrderStatus("SHIPPED"))
	assert.False(t, ValidOrderStatus(""))
}

func TestHasPaymentProof(t *testing.T) {
	order := &Order{}
	assert.False(t, order.HasPaymentProof())

	empty := ""
	order.PaymentProofURL = &empty
	assert.False(t, order.HasPaymentProof())

	url := "https://img.example/slip.jpg"
	order.PaymentProofURL = &url
	assert.True(t, order.HasPaymentProof())
}
