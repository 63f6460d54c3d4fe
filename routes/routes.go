package routes

import (
	"storefront-service/controllers"
	"storefront-service/middleware"

	"github.com/gin-gonic/gin"
)

// Register wires the storefront and admin surfaces onto the engine.
func Register(
	r *gin.Engine,
	cartController *controllers.CartController,
	checkoutController *controllers.CheckoutController,
	orderController *controllers.OrderController,
	adminOrderController *controllers.AdminOrderController,
	inventoryController *controllers.InventoryController,
) {
	cart := r.Group("/cart")
	cart.GET("/:token", cartController.GetCart)
	cart.POST("/:token/items", cartController.AddItem)
	cart.PUT("/:token/items/:variantId", cartController.UpdateItem)

	r.POST("/checkout/:token", checkoutController.Checkout)
	r.GET("/orders/:code", orderController.GetOrderByCode)

	admin := r.Group("/admin")
	admin.Use(middleware.AdminMiddleware())
	admin.GET("/orders", orderController.GetAllOrders)
	admin.GET("/orders/:id", orderController.GetOrderByID)
	admin.GET("/orders/:id/actions", adminOrderController.GetActions)
	admin.POST("/orders/:id/status", adminOrderController.TransitionStatus)
	admin.POST("/orders/:id/payment/verify", adminOrderController.VerifyPayment)
	admin.POST("/orders/:id/payment/reject", adminOrderController.RejectPayment)
	admin.POST("/inventory/:variantId/adjust", inventoryController.AdjustStock)
}
