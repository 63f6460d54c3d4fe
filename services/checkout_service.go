package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "storefront-service/common/errors"
	"storefront-service/kafka"
	"storefront-service/models"
	aws_pkg "storefront-service/pkg/aws"
	"storefront-service/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// maxCreateAttempts bounds the retry loop that absorbs order-code
// collisions. It is not a general retry-on-failure policy.
const maxCreateAttempts = 3

// CheckoutRequest is the validated checkout input. The idempotency key
// arrives out-of-band in the Idempotency-Key header, not in this body.
type CheckoutRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"omitempty,email"`
	Note          string `json:"note"`

	Country      string `json:"country" binding:"required"`
	StateRegion  string `json:"state_region" binding:"required"`
	TownshipCity string `json:"township_city" binding:"required"`
	AddressLine1 string `json:"address_line1" binding:"required"`
	AddressLine2 string `json:"address_line2"`

	// Optional client-declared method; must agree with the zone policy.
	PaymentMethod    string `json:"payment_method" binding:"omitempty,oneof=COD PREPAID_TRANSFER"`
	PaymentProofURL  string `json:"payment_proof_url"`
	PaymentReference string `json:"payment_reference"`
}

// CheckoutService converts a mutable cart into an immutable order exactly
// once, inside a single relational transaction per attempt.
type CheckoutService struct {
	store repository.Store
	eventSinks
}

func NewCheckoutService(store repository.Store, producer kafka.ProducerAPI, snsClient aws_pkg.SNSPublisher, snsTopicArn string, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		store: store,
		eventSinks: eventSinks{
			producer:    producer,
			snsClient:   snsClient,
			snsTopicArn: snsTopicArn,
			logger:      logger,
		},
	}
}

// CreateOrderFromCart places an order from the ACTIVE cart behind cartToken.
// A non-empty idempotencyKey makes retried submissions return the original
// order instead of creating a second one.
func (s *CheckoutService) CreateOrderFromCart(ctx context.Context, cartToken string, req *CheckoutRequest, idempotencyKey string) (*models.Order, error) {
	// Replay short-circuit: same key, same order, no side effects.
	if idempotencyKey != "" {
		existing, err := s.store.Orders().FindByIdempotencyKey(ctx, idempotencyKey)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		code := generateOrderCode()

		var created *models.Order
		err := s.store.InTransaction(ctx, func(tx repository.Store) error {
			order, err := s.placeOrder(ctx, tx, cartToken, req, code, idempotencyKey)
			if err != nil {
				return err
			}
			created = order
			return nil
		})
		if err == nil {
			s.logger.Info("Order created",
				zap.String("order_code", created.Code),
				zap.String("zone", created.ShippingZoneKey),
				zap.String("total", created.Total.String()),
			)
			s.publishOrderEvent(ctx, created, "order.created")
			return created, nil
		}

		var domainErr *apperrors.Error
		if errors.As(err, &domainErr) {
			return nil, domainErr
		}

		if repository.IsDuplicateKey(err) {
			// Two requests raced on the same idempotency key: the loser
			// re-reads and returns the winner's order.
			if idempotencyKey != "" {
				if existing, rerr := s.store.Orders().FindByIdempotencyKey(ctx, idempotencyKey); rerr == nil {
					return existing, nil
				}
			}
			// Otherwise the order code collided; retry with a fresh one.
			s.logger.Warn("Order code collision, retrying",
				zap.Int("attempt", attempt),
				zap.String("code", code),
			)
			continue
		}

		return nil, err
	}

	return nil, apperrors.ErrOrderCreateFailed
}

// placeOrder runs the whole checkout inside one transaction: validate cart,
// resolve shipping and payment policy, insert the order graph, reserve stock
// per line, convert the cart. Any error rolls everything back.
func (s *CheckoutService) placeOrder(ctx context.Context, tx repository.Store, cartToken string, req *CheckoutRequest, code, idempotencyKey string) (*models.Order, error) {
	cart, err := tx.Carts().FindActiveByToken(ctx, cartToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrCartNotFound
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.ErrCartEmpty
	}

	// Advisory pre-check per line; the conditional decrement below is the
	// binding no-oversell guarantee.
	for i := range cart.Items {
		item := &cart.Items[i]
		variant := item.Variant
		if variant == nil {
			variant, err = tx.Inventory().FindVariant(ctx, item.VariantID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return nil, apperrors.ErrVariantUnavailable
				}
				return nil, err
			}
			item.Variant = variant
		}
		if !variant.Sellable() {
			return nil, apperrors.ErrVariantUnavailable
		}
		if variant.Inventory < item.Quantity {
			return nil, apperrors.ErrInsufficientStock
		}
	}

	subtotal := cart.Subtotal()

	resolved, err := ResolveShippingZone(ctx, tx.ShippingRules(), req.Country, req.StateRegion, req.TownshipCity, subtotal)
	if err != nil {
		return nil, err
	}

	policy := PolicyForZone(resolved.ZoneKey)
	payment, err := validatePaymentInput(ctx, tx.TransferMethods(), policy, req.PaymentMethod, req.PaymentProofURL, req.PaymentReference)
	if err != nil {
		return nil, err
	}

	var idemPtr *string
	if idempotencyKey != "" {
		key := idempotencyKey
		idemPtr = &key
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		lineTotal := item.UnitPrice.Mul(decimalFromInt(item.Quantity))
		items = append(items, models.OrderItem{
			ProductID:   item.Variant.ProductID,
			VariantID:   item.VariantID,
			ProductName: item.Variant.Product.Name,
			VariantSKU:  item.Variant.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   lineTotal,
		})
	}

	order := &models.Order{
		Code:             code,
		IdempotencyKey:   idemPtr,
		Status:           models.OrderStatusPending,
		PaymentMethod:    policy.Method,
		PaymentStatus:    policy.InitialPaymentStatus,
		PaymentProofURL:  payment.ProofURL,
		PaymentReference: payment.Reference,
		Currency:         cart.Currency,
		Subtotal:         subtotal,
		DeliveryFee:      resolved.Fee,
		Total:            subtotal.Add(resolved.Fee),

		ShippingZoneKey:   resolved.ZoneKey,
		ShippingZoneLabel: resolved.ZoneLabel,
		ShippingETALabel:  resolved.ETALabel,

		Items: items,
		Address: &models.OrderAddress{
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			CustomerEmail: req.CustomerEmail,
			Country:       req.Country,
			StateRegion:   req.StateRegion,
			TownshipCity:  req.TownshipCity,
			AddressLine1:  req.AddressLine1,
			AddressLine2:  req.AddressLine2,
			Note:          req.Note,
		},
		StatusHistory: []models.OrderStatusHistory{{
			FromStatus: nil,
			ToStatus:   models.OrderStatusPending,
			Note:       "Order placed by customer",
			Actor:      "customer",
		}},
	}

	if err := tx.Orders().Create(ctx, order); err != nil {
		return nil, err
	}

	for _, item := range cart.Items {
		if err := reserveStock(ctx, tx, item.VariantID, order.ID, item.Quantity); err != nil {
			return nil, err
		}
	}

	if err := tx.Carts().MarkConverted(ctx, cart.ID); err != nil {
		return nil, err
	}

	return order, nil
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

// generateOrderCode embeds a timestamp plus a short random suffix for
// readability and collision resistance.
func generateOrderCode() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102-150405"), suffix)
}
