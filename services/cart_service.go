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

// CartService manages token-scoped carts. A token whose cart was converted to
// an order (or never existed) silently gets a fresh ACTIVE cart on next use.
type CartService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewCartService(store repository.Store, logger *zap.Logger) *CartService {
	return &CartService{store: store, logger: logger}
}

// GetCart returns the ACTIVE cart for token, creating one if needed.
func (s *CartService) GetCart(ctx context.Context, token string) (*models.Cart, error) {
	var cart *models.Cart
	err := s.store.InTransaction(ctx, func(tx repository.Store) error {
		c, err := s.getOrCreate(ctx, tx, token)
		if err != nil {
			return err
		}
		cart = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem adds quantity of a variant to the cart, snapshotting the effective
// price at add-time. Adding an existing variant accumulates quantity but
// keeps the original price snapshot.
func (s *CartService) AddItem(ctx context.Context, token string, variantID uuid.UUID, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, apperrors.New(400, "INVALID_QUANTITY", "Quantity must be at least 1")
	}

	err := s.store.InTransaction(ctx, func(tx repository.Store) error {
		cart, err := s.getOrCreate(ctx, tx, token)
		if err != nil {
			return err
		}

		variant, err := tx.Inventory().FindVariant(ctx, variantID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.ErrVariantUnavailable
			}
			return err
		}
		if !variant.Sellable() {
			return apperrors.ErrVariantUnavailable
		}

		item, err := tx.Carts().FindItem(ctx, cart.ID, variantID)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			item = &models.CartItem{
				CartID:    cart.ID,
				VariantID: variantID,
				Quantity:  quantity,
				UnitPrice: variant.EffectivePrice(),
			}
		} else {
			item.Quantity += quantity
		}
		return tx.Carts().SaveItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	return s.store.Carts().FindActiveByToken(ctx, token)
}

// UpdateItemQuantity sets the quantity for a variant line; zero removes it.
func (s *CartService) UpdateItemQuantity(ctx context.Context, token string, variantID uuid.UUID, quantity int) (*models.Cart, error) {
	if quantity < 0 {
		return nil, apperrors.New(400, "INVALID_QUANTITY", "Quantity must not be negative")
	}

	err := s.store.InTransaction(ctx, func(tx repository.Store) error {
		cart, err := tx.Carts().FindActiveByToken(ctx, token)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.ErrCartNotFound
			}
			return err
		}

		if quantity == 0 {
			return tx.Carts().DeleteItem(ctx, cart.ID, variantID)
		}

		item, err := tx.Carts().FindItem(ctx, cart.ID, variantID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.ErrVariantUnavailable
			}
			return err
		}
		item.Quantity = quantity
		return tx.Carts().SaveItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	return s.store.Carts().FindActiveByToken(ctx, token)
}

// getOrCreate implements reactivation-on-reuse: a missing or converted cart
// yields a fresh ACTIVE one under the same token.
func (s *CartService) getOrCreate(ctx context.Context, tx repository.Store, token string) (*models.Cart, error) {
	cart, err := tx.Carts().FindActiveByToken(ctx, token)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	cart = &models.Cart{
		Token:    token,
		Status:   models.CartStatusActive,
		Currency: "MMK",
	}
	if err := tx.Carts().Create(ctx, cart); err != nil {
		return nil, err
	}
	s.logger.Info("Started fresh cart", zap.String("token", token))
	return cart, nil
}
