package controllers

import (
	"net/http"

	apperrors "storefront-service/common/errors"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartController struct {
	cartService *services.CartService
}

func NewCartController(cartService *services.CartService) *CartController {
	return &CartController{cartService: cartService}
}

type addItemRequest struct {
	VariantID uuid.UUID `json:"variant_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,gte=0"`
}

// GetCart returns the ACTIVE cart for the token, creating one if needed.
func (cc *CartController) GetCart(ctx *gin.Context) {
	cart, err := cc.cartService.GetCart(ctx.Request.Context(), ctx.Param("token"))
	if err != nil {
		apperrors.Handle(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"cart": cart})
}

// AddItem adds a variant to the cart.
func (cc *CartController) AddItem(ctx *gin.Context) {
	var req addItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	cart, err := cc.cartService.AddItem(ctx.Request.Context(), ctx.Param("token"), req.VariantID, req.Quantity)
	if err != nil {
		apperrors.Handle(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"cart": cart})
}

// UpdateItem sets a line quantity; zero removes the line.
func (cc *CartController) UpdateItem(ctx *gin.Context) {
	variantID, err := uuid.Parse(ctx.Param("variantId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid variant ID format"})
		return
	}

	var req updateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	cart, svcErr := cc.cartService.UpdateItemQuantity(ctx.Request.Context(), ctx.Param("token"), variantID, *req.Quantity)
	if svcErr != nil {
		apperrors.Handle(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"cart": cart})
}
