package controllers

import (
	"net/http"

	apperrors "storefront-service/common/errors"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminOrderController exposes the operator action surface: the pure action
// projection plus the mutating status and payment-review endpoints.
type AdminOrderController struct {
	statusService *services.OrderStatusService
}

func NewAdminOrderController(statusService *services.OrderStatusService) *AdminOrderController {
	return &AdminOrderController{statusService: statusService}
}

type transitionRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// GetActions returns {allowedActions, recommendedAction, blockedActions};
// side-effect free, used to render operator controls.
func (ac *AdminOrderController) GetActions(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	actions, svcErr := ac.statusService.Actions(ctx.Request.Context(), orderID)
	if svcErr != nil {
		apperrors.Handle(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, actions)
}

// TransitionStatus applies a status transition.
func (ac *AdminOrderController) TransitionStatus(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	var req transitionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, svcErr := ac.statusService.Transition(ctx.Request.Context(), orderID, req.Status, req.Note, middleware.GetAdminUser(ctx))
	if svcErr != nil {
		apperrors.Handle(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"order": order})
}

// VerifyPayment marks a pending prepaid payment as verified.
func (ac *AdminOrderController) VerifyPayment(ctx *gin.Context) {
	ac.reviewPayment(ctx, true)
}

// RejectPayment marks a pending prepaid payment as rejected.
func (ac *AdminOrderController) RejectPayment(ctx *gin.Context) {
	ac.reviewPayment(ctx, false)
}

func (ac *AdminOrderController) reviewPayment(ctx *gin.Context, verify bool) {
	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	actor := middleware.GetAdminUser(ctx)
	var order *models.Order
	var svcErr error
	if verify {
		order, svcErr = ac.statusService.VerifyPayment(ctx.Request.Context(), orderID, actor)
	} else {
		order, svcErr = ac.statusService.RejectPayment(ctx.Request.Context(), orderID, actor)
	}
	if svcErr != nil {
		apperrors.Handle(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"order": order})
}
