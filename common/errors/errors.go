package errors

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is a domain error carrying an HTTP status and a stable machine code.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(status int, code, message string) *Error {
	return &Error{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// Wrap returns a copy of e carrying err as its cause.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		Status:  e.Status,
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// Checkout / cart preconditions
var (
	ErrCartNotFound       = New(http.StatusNotFound, "CART_NOT_FOUND", "Cart not found or no longer active")
	ErrCartEmpty          = New(http.StatusBadRequest, "CART_EMPTY", "Cart has no items")
	ErrVariantUnavailable = New(http.StatusConflict, "VARIANT_UNAVAILABLE", "Product variant is not available")
	ErrInsufficientStock  = New(http.StatusConflict, "INSUFFICIENT_STOCK", "Not enough stock for requested quantity")
)

// Payment policy violations
var (
	ErrInvalidPaymentMethodForZone = New(http.StatusBadRequest, "INVALID_PAYMENT_METHOD_FOR_ZONE", "Payment method not allowed for delivery zone")
	ErrPaymentProofRequired        = New(http.StatusBadRequest, "PAYMENT_PROOF_REQUIRED", "Payment proof is required for prepaid orders")
	ErrTransferMethodRequired      = New(http.StatusBadRequest, "TRANSFER_METHOD_REQUIRED", "Transfer method code is required in the payment reference")
	ErrInvalidTransferMethod       = New(http.StatusBadRequest, "INVALID_TRANSFER_METHOD", "Transfer method is unknown or inactive")
)

// Shipping configuration gaps
var (
	ErrShippingRuleUnavailable = New(http.StatusConflict, "SHIPPING_RULE_UNAVAILABLE", "No shipping rule matches the delivery address")
	ErrFallbackRuleRequired    = New(http.StatusConflict, "FALLBACK_RULE_REQUIRED", "No active fallback shipping rule is configured")
)

// Order lifecycle
var (
	ErrOrderNotFound           = New(http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
	ErrInvalidStatusTransition = New(http.StatusConflict, "INVALID_ORDER_STATUS_TRANSITION", "Order status transition not allowed")
	ErrPaymentReviewNotPending = New(http.StatusConflict, "PAYMENT_REVIEW_NOT_PENDING", "Order payment is not pending review")
	ErrOrderCreateFailed       = New(http.StatusInternalServerError, "ORDER_CREATE_FAILED", "Order could not be created, please retry")
	ErrInvalidStockAdjustment  = New(http.StatusConflict, "INSUFFICIENT_STOCK", "Stock adjustment would make inventory negative")
)

// Handle renders err on the gin context, mapping unknown errors to a 500.
func Handle(c *gin.Context, err error) {
	if appErr, ok := err.(*Error); ok {
		c.JSON(appErr.Status, gin.H{"error": appErr})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{
		"code":    "INTERNAL_ERROR",
		"message": "Internal server error",
	}})
}
