package services

import (
	"context"
	"encoding/json"
	"time"

	"storefront-service/kafka"
	"storefront-service/models"
	aws_pkg "storefront-service/pkg/aws"

	"go.uber.org/zap"
)

// eventSinks publishes order events to Kafka and SNS after a transaction has
// committed. Both sinks are optional and best-effort; a publish failure never
// fails the request.
type eventSinks struct {
	producer    kafka.ProducerAPI
	snsClient   aws_pkg.SNSPublisher
	snsTopicArn string
	logger      *zap.Logger
}

func (e *eventSinks) publishOrderEvent(ctx context.Context, order *models.Order, eventType string) {
	if order == nil {
		return
	}

	event := models.OrderEvent{
		EventType:     eventType,
		OrderID:       order.ID.String(),
		OrderCode:     order.Code,
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		Total:         order.Total.String(),
		Currency:      order.Currency,
		Timestamp:     time.Now().UTC(),
	}

	b, err := json.Marshal(event)
	if err != nil {
		e.logger.Error("Failed to marshal order event", zap.Error(err))
		return
	}

	if e.producer != nil {
		if err := e.producer.Publish([]byte(order.Code), b); err != nil {
			e.logger.Warn("Kafka publish failed", zap.String("event", eventType), zap.Error(err))
		}
	}

	if e.snsClient != nil && e.snsTopicArn != "" {
		if err := e.snsClient.Publish(ctx, e.snsTopicArn, b); err != nil {
			e.logger.Warn("SNS publish failed", zap.String("event", eventType), zap.Error(err))
		}
	}
}
