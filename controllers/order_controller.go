package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mahasultan/resouq-backend/models"
	"github.com/mahasultan/resouq-backend/pkg/apperrors"
	"github.com/mahasultan/resouq-backend/services"
)

// OrderController handles HTTP requests for checkout and order history.
type OrderController struct {
	orderService services.OrderService
}

// NewOrderController creates a new OrderController.
func NewOrderController(orderService services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// PlaceOrder handles POST /orders.
func (oc *OrderController) PlaceOrder(ctx *gin.Context) {
	var req models.PlaceOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, apperrors.Wrap(apperrors.ErrBadRequest, err))
		return
	}

	order, err := oc.orderService.PlaceOrder(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, order)
}

// GetOrders handles GET /orders?buyer=<id>.
func (oc *OrderController) GetOrders(ctx *gin.Context) {
	buyerID := ctx.Query("buyer")
	if buyerID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "buyer query parameter is required"})
		return
	}

	orders, err := oc.orderService.ListOrders(ctx.Request.Context(), buyerID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"orders": orders})
}
