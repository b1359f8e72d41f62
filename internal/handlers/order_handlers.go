package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/flowershop-golang/internal/common"
	"github.com/01moynul/flowershop-golang/internal/models"
)

//
// --- Order Handlers (Owner-Scoped) ---
//

type CreateOrderInput struct {
	Status        models.OrderStatus `json:"status" binding:"required,oneof=pending delivered canceled"`
	FlowerDetails map[string]any     `json:"flower_details" binding:"required"`
	Quantity      int                `json:"quantity" binding:"required,min=1"`
	Address       string             `json:"address" binding:"required,min=3,max=255"`
}

// UpdateOrderInput uses pointers so "absent" and "zero" stay distinct.
type UpdateOrderInput struct {
	Status        *models.OrderStatus `json:"status" binding:"omitnil,oneof=pending delivered canceled"`
	FlowerDetails map[string]any      `json:"flower_details"`
	Quantity      *int                `json:"quantity" binding:"omitnil,min=1"`
	Address       *string             `json:"address" binding:"omitnil,min=3,max=255"`
}

func (in UpdateOrderInput) toUpdate() models.OrderUpdate {
	return models.OrderUpdate{
		Status:        in.Status,
		FlowerDetails: in.FlowerDetails,
		Quantity:      in.Quantity,
		Address:       in.Address,
	}
}

const orderNotFoundMsg = "Order not found or unauthorized"

// CreateOrder is the handler for POST /api/orders
func (h *Handlers) CreateOrder(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, ok := h.identity(c)
	if !ok {
		return
	}

	// 2. --- Insert & Read Back ---
	order, err := h.Orders.Create(c.Request.Context(), identity, models.NewOrder{
		Status:        input.Status,
		FlowerDetails: input.FlowerDetails,
		Quantity:      input.Quantity,
		Address:       input.Address,
	})
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.storeFailure(c, err, "Failed to create order", "owner_id", identity.ID)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created",
		"order":   order,
	})
}

// UpdateOrder is the handler for PUT /api/orders/:id
func (h *Handlers) UpdateOrder(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input UpdateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := input.toUpdate()
	if update.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one field must be provided"})
		return
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	identity, ok := h.identity(c)
	if !ok {
		return
	}

	// 2. --- Confirm Ownership, Update, Re-fetch ---
	order, err := h.Orders.Update(c.Request.Context(), identity, orderID, update)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": orderNotFoundMsg})
		case errors.Is(err, common.ErrorEmptyUpdate):
			c.JSON(http.StatusBadRequest, gin.H{"error": "At least one field must be provided"})
		default:
			h.storeFailure(c, err, "Database error", "owner_id", identity.ID, "order_id", orderID)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order updated",
		"order":   order,
	})
}

// GetOrders is the handler for GET /api/orders?status=
func (h *Handlers) GetOrders(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}

	orders, err := h.Orders.Get(c.Request.Context(), identity, c.Query("status"))
	if err != nil {
		h.storeFailure(c, err, "Failed to fetch orders", "owner_id", identity.ID)
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder is the handler for GET /api/orders/:id
func (h *Handlers) GetOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	identity, ok := h.identity(c)
	if !ok {
		return
	}

	order, err := h.Orders.FetchByID(c.Request.Context(), identity, orderID)
	if err != nil {
		h.storeFailure(c, err, "Failed to fetch order", "owner_id", identity.ID, "order_id", orderID)
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": orderNotFoundMsg})
		return
	}

	c.JSON(http.StatusOK, order)
}
