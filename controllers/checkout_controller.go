package controllers

import (
	"net/http"

	apperrors "storefront-service/common/errors"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader carries the client-supplied idempotency key
// out-of-band; retried submissions with the same key return the same order.
const IdempotencyKeyHeader = "Idempotency-Key"

type CheckoutController struct {
	checkoutService *services.CheckoutService
}

func NewCheckoutController(checkoutService *services.CheckoutService) *CheckoutController {
	return &CheckoutController{checkoutService: checkoutService}
}

// Checkout converts the cart behind the token into an order.
func (cc *CheckoutController) Checkout(ctx *gin.Context) {
	var req services.CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	idempotencyKey := ctx.GetHeader(IdempotencyKeyHeader)

	order, err := cc.checkoutService.CreateOrderFromCart(ctx.Request.Context(), ctx.Param("token"), &req, idempotencyKey)
	if err != nil {
		apperrors.Handle(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"order": order})
}
