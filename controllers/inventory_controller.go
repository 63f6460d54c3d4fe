package controllers

import (
	"net/http"

	apperrors "storefront-service/common/errors"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventoryController struct {
	inventoryService *services.InventoryService
}

func NewInventoryController(inventoryService *services.InventoryService) *InventoryController {
	return &InventoryController{inventoryService: inventoryService}
}

type adjustStockRequest struct {
	Delta *int   `json:"delta" binding:"required"`
	Note  string `json:"note"`
}

// AdjustStock applies a signed manual stock delta through the ledger.
func (ic *InventoryController) AdjustStock(ctx *gin.Context) {
	variantID, err := uuid.Parse(ctx.Param("variantId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid variant ID format"})
		return
	}

	var req adjustStockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	variant, svcErr := ic.inventoryService.AdjustStock(ctx.Request.Context(), variantID, *req.Delta, req.Note)
	if svcErr != nil {
		apperrors.Handle(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"variant": variant})
}
