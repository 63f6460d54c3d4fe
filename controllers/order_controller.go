package controllers

import (
	"net/http"
	"strconv"

	apperrors "storefront-service/common/errors"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderController struct {
	orderService *services.OrderService
}

func NewOrderController(orderService *services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// GetOrderByCode returns a customer's order by its human order code.
func (oc *OrderController) GetOrderByCode(ctx *gin.Context) {
	order, err := oc.orderService.GetOrderByCode(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		apperrors.Handle(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"order": order})
}

// GetAllOrders returns paginated orders (admin only).
func (oc *OrderController) GetAllOrders(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)

	result, err := oc.orderService.GetAllOrders(ctx.Request.Context(), page, limit)
	if err != nil {
		apperrors.Handle(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetOrderByID returns one order with items, address and history (admin only).
func (oc *OrderController) GetOrderByID(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	order, svcErr := oc.orderService.GetOrderByID(ctx.Request.Context(), orderID)
	if svcErr != nil {
		apperrors.Handle(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"order": order})
}

// parsePaginationParams extracts and validates pagination parameters
func parsePaginationParams(ctx *gin.Context) (int, int) {
	const MaxLimit = 100

	page := 1
	limit := 10

	if p, err := strconv.Atoi(ctx.DefaultQuery("page", "1")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(ctx.DefaultQuery("limit", "10")); err == nil && l > 0 {
		limit = l
		if limit > MaxLimit {
			limit = MaxLimit
		}
	}

	return page, limit
}
