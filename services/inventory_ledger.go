package services

import (
	"context"
	"errors"

	apperrors "storefront-service/common/errors"
	"storefront-service/models"
	"storefront-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// reserveStock decrements variant inventory for an order line and appends the
// matching negative ledger entry. Must run inside the order transaction; the
// conditional decrement is what prevents overselling under concurrency.
func reserveStock(ctx context.Context, tx repository.Store, variantID, orderID uuid.UUID, quantity int) error {
	if err := tx.Inventory().DecrementStock(ctx, variantID, quantity); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return apperrors.ErrInsufficientStock
		}
		return err
	}
	return tx.Inventory().AppendLog(ctx, &models.InventoryLog{
		VariantID:  variantID,
		OrderID:    &orderID,
		Quantity:   -quantity,
		ChangeType: models.InventoryChangeOrderConfirmed,
		Note:       "Reserved at checkout",
	})
}

// restoreStock returns a cancelled order line's quantity to inventory with a
// positive ledger entry. Invoked only by the cancellation transition; the
// transition table guarantees it runs at most once per order.
func restoreStock(ctx context.Context, tx repository.Store, variantID, orderID uuid.UUID, quantity int) error {
	if err := tx.Inventory().IncrementStock(ctx, variantID, quantity); err != nil {
		return err
	}
	return tx.Inventory().AppendLog(ctx, &models.InventoryLog{
		VariantID:  variantID,
		OrderID:    &orderID,
		Quantity:   quantity,
		ChangeType: models.InventoryChangeOrderCancelled,
		Note:       "Restored on cancellation",
	})
}

// InventoryService exposes operator stock adjustments through the ledger.
type InventoryService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewInventoryService(store repository.Store, logger *zap.Logger) *InventoryService {
	return &InventoryService{store: store, logger: logger}
}

// AdjustStock applies a signed manual delta. Negative deltas go through the
// conditional decrement so inventory cannot be driven below zero.
func (s *InventoryService) AdjustStock(ctx context.Context, variantID uuid.UUID, delta int, note string) (*models.Variant, error) {
	if delta == 0 {
		return nil, apperrors.New(400, "INVALID_ADJUSTMENT", "Adjustment delta must be non-zero")
	}

	var variant *models.Variant
	err := s.store.InTransaction(ctx, func(tx repository.Store) error {
		if delta < 0 {
			if err := tx.Inventory().DecrementStock(ctx, variantID, -delta); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					return apperrors.ErrInvalidStockAdjustment
				}
				return err
			}
		} else {
			if err := tx.Inventory().IncrementStock(ctx, variantID, delta); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return apperrors.ErrVariantUnavailable
				}
				return err
			}
		}

		if err := tx.Inventory().AppendLog(ctx, &models.InventoryLog{
			VariantID:  variantID,
			Quantity:   delta,
			ChangeType: models.InventoryChangeManualAdjustment,
			Note:       note,
		}); err != nil {
			return err
		}

		v, err := tx.Inventory().FindVariant(ctx, variantID)
		if err != nil {
			return err
		}
		variant = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Stock adjusted",
		zap.String("variant_id", variantID.String()),
		zap.Int("delta", delta),
		zap.Int("inventory", variant.Inventory),
	)
	return variant, nil
}
