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

type OrderListResponse struct {
	Orders []models.Order `json:"orders"`
	Meta   MetaData       `json:"meta"`
}

type MetaData struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalOrders int64 `json:"total_orders"`
	TotalPages  int64 `json:"total_pages"`
	HasMore     bool  `json:"has_more"`
}

// OrderService serves the read side: customer lookup by code and the admin
// order list.
type OrderService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewOrderService(store repository.Store, logger *zap.Logger) *OrderService {
	return &OrderService{store: store, logger: logger}
}

func (s *OrderService) GetOrderByCode(ctx context.Context, code string) (*models.Order, error) {
	order, err := s.store.Orders().FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.store.Orders().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// GetAllOrders retrieves paginated orders for the admin dashboard.
func (s *OrderService) GetAllOrders(ctx context.Context, page, limit int) (*OrderListResponse, error) {
	orders, total, err := s.store.Orders().FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("Failed to fetch orders", zap.Error(err))
		return nil, err
	}

	return &OrderListResponse{
		Orders: orders,
		Meta: MetaData{
			Page:        page,
			Limit:       limit,
			TotalOrders: total,
			TotalPages:  calculateTotalPages(total, limit),
			HasMore:     total > int64(page*limit),
		},
	}, nil
}

func calculateTotalPages(total int64, limit int) int64 {
	if limit == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
