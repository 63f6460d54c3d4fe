package services

import (
	"context"
	"testing"

	apperrors "storefront-service/common/errors"
	"storefront-service/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAdjustStock(t *testing.T) {
	store := newMemStore()
	svc := NewInventoryService(store, zap.NewNop())
	variant := store.addVariant("Thingyan T-Shirt", "TSHIRT-M", "4000", 5, true)
	ctx := context.Background()

	updated, err := svc.AdjustStock(ctx, variant.ID, 10, "restock delivery")
	require.NoError(t, err)
	assert.Equal(t, 15, updated.Inventory)

	updated, err = svc.AdjustStock(ctx, variant.ID, -3, "damaged units")
	require.NoError(t, err)
	assert.Equal(t, 12, updated.Inventory)

	// Every adjustment leaves a ledger entry with no order attached.
	assert.Len(t, store.invLogs, 2)
	for _, entry := range store.invLogs {
		assert.Equal(t, models.InventoryChangeManualAdjustment, entry.ChangeType)
		assert.Nil(t, entry.OrderID)
	}
}

func TestAdjustStock_CannotGoNegative(t *testing.T) {
	store := newMemStore()
	svc := NewInventoryService(store, zap.NewNop())
	variant := store.addVariant("Thingyan T-Shirt", "TSHIRT-M", "4000", 2, true)

	_, err := svc.AdjustStock(context.Background(), variant.ID, -5, "oops")
	assert.ErrorIs(t, err, apperrors.ErrInvalidStockAdjustment)
	assert.Equal(t, 2, variant.Inventory)
	assert.Empty(t, store.invLogs)
}

func TestAdjustStock_ZeroDeltaRejected(t *testing.T) {
	store := newMemStore()
	svc := NewInventoryService(store, zap.NewNop())
	variant := store.addVariant("Thingyan T-Shirt", "TSHIRT-M", "4000", 2, true)

	_, err := svc.AdjustStock(context.Background(), variant.ID, 0, "")
	var domainErr *apperrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_ADJUSTMENT", domainErr.Code)
}

func TestAdjustStock_UnknownVariant(t *testing.T) {
	store := newMemStore()
	svc := NewInventoryService(store, zap.NewNop())

	_, err := svc.AdjustStock(context.Background(), uuid.New(), 5, "")
	assert.ErrorIs(t, err, apperrors.ErrVariantUnavailable)
}
