package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	apperrors "storefront-service/common/errors"
	"storefront-service/kafka"
	"storefront-service/models"
	aws_pkg "storefront-service/pkg/aws"
	"storefront-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderStatusService drives the post-creation lifecycle: status transitions
// and the payment review sub-flow. Every check-and-write pair runs against a
// row-locked order inside one transaction.
type OrderStatusService struct {
	store repository.Store
	eventSinks
}

func NewOrderStatusService(store repository.Store, producer kafka.ProducerAPI, snsClient aws_pkg.SNSPublisher, snsTopicArn string, logger *zap.Logger) *OrderStatusService {
	return &OrderStatusService{
		store: store,
		eventSinks: eventSinks{
			producer:    producer,
			snsClient:   snsClient,
			snsTopicArn: snsTopicArn,
			logger:      logger,
		},
	}
}

// Transition moves the order to target if the transition table allows it.
// Cancellation restores every line's stock through the ledger; the table
// guarantees this runs at most once because CANCELLED has no outgoing edges.
func (s *OrderStatusService) Transition(ctx context.Context, orderID uuid.UUID, target models.OrderStatus, note, actor string) (*models.Order, error) {
	if !models.ValidOrderStatus(target) {
		return nil, apperrors.ErrInvalidStatusTransition
	}

	var updated *models.Order
	err := s.store.InTransaction(ctx, func(tx repository.Store) error {
		order, err := tx.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.ErrOrderNotFound
			}
			return err
		}

		if !order.Status.CanTransitionTo(target) {
			return apperrors.ErrInvalidStatusTransition
		}

		from := order.Status
		now := time.Now().UTC()

		if target == models.OrderStatusCancelled {
			for _, item := range order.Items {
				if err := restoreStock(ctx, tx, item.VariantID, order.ID, item.Quantity); err != nil {
					return err
				}
			}
			order.CancelledAt = &now
		}
		if target == models.OrderStatusDelivered {
			order.DeliveredAt = &now
		}

		order.Status = target
		if err := tx.Orders().Save(ctx, order); err != nil {
			return err
		}

		if err := tx.Orders().AppendStatusHistory(ctx, &models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: &from,
			ToStatus:   target,
			Note:       note,
			Actor:      actor,
		}); err != nil {
			return err
		}

		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order status changed",
		zap.String("order_code", updated.Code),
		zap.String("status", string(updated.Status)),
		zap.String("actor", actor),
	)
	s.publishOrderEvent(ctx, updated, "order.status_changed")
	return updated, nil
}

// VerifyPayment marks a pending prepaid payment as verified.
func (s *OrderStatusService) VerifyPayment(ctx context.Context, orderID uuid.UUID, actor string) (*models.Order, error) {
	return s.reviewPayment(ctx, orderID, models.PaymentStatusVerified, actor)
}

// RejectPayment marks a pending prepaid payment as rejected. The order stays
// cancellable through the normal status table.
func (s *OrderStatusService) RejectPayment(ctx context.Context, orderID uuid.UUID, actor string) (*models.Order, error) {
	return s.reviewPayment(ctx, orderID, models.PaymentStatusRejected, actor)
}

func (s *OrderStatusService) reviewPayment(ctx context.Context, orderID uuid.UUID, verdict models.PaymentStatus, actor string) (*models.Order, error) {
	var updated *models.Order
	err := s.store.InTransaction(ctx, func(tx repository.Store) error {
		order, err := tx.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.ErrOrderNotFound
			}
			return err
		}

		if reason := paymentReviewBlockReason(order.PaymentMethod, order.HasPaymentProof(), order.PaymentStatus); reason != "" {
			return apperrors.New(http.StatusConflict, "PAYMENT_REVIEW_NOT_PENDING",
				fmt.Sprintf("Payment review blocked: %s", reason))
		}

		order.PaymentStatus = verdict
		if err := tx.Orders().Save(ctx, order); err != nil {
			return err
		}

		status := order.Status
		if err := tx.Orders().AppendStatusHistory(ctx, &models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: &status,
			ToStatus:   status,
			Note:       fmt.Sprintf("Payment marked %s", verdict),
			Actor:      actor,
		}); err != nil {
			return err
		}

		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment reviewed",
		zap.String("order_code", updated.Code),
		zap.String("payment_status", string(updated.PaymentStatus)),
		zap.String("actor", actor),
	)
	s.publishOrderEvent(ctx, updated, "order.payment_reviewed")
	return updated, nil
}

// Actions returns the pure action projection for an order.
func (s *OrderStatusService) Actions(ctx context.Context, orderID uuid.UUID) (*ActionSet, error) {
	order, err := s.store.Orders().FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, err
	}

	set := ProjectActions(ActionInput{
		OrderStatus:     order.Status,
		PaymentMethod:   order.PaymentMethod,
		PaymentStatus:   order.PaymentStatus,
		HasPaymentProof: order.HasPaymentProof(),
	})
	return &set, nil
}
