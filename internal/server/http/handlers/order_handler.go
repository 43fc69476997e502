package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/webshoplab/orders/internal/domain/errors"
	"github.com/webshoplab/orders/internal/domain/model"
	"github.com/webshoplab/orders/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /order. A repeated idempotency key returns the id of
// the previously created order with the same 200.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	cart := make([]model.CartItem, 0, len(req.CartContent))
	for _, item := range req.CartContent {
		cart = append(cart, model.CartItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, _, err := h.facade.CreateOrder(c.Request.Context(), req.IdempotencyKey, req.CustomerID, cart)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidRequest) {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.CreateOrderResponse{OrderID: order.ID})
}

// List handles GET /order.
func (h *OrderHandler) List(c *gin.Context) {
	ids, err := h.facade.OrderIDs(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, ids)
}

// Get handles GET /order/byid/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidRequest):
			c.Status(http.StatusBadRequest)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Delete handles DELETE /order/byid/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	err := h.facade.DeleteOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidRequest):
			c.Status(http.StatusBadRequest)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	cart := make([]dto.CartItemPayload, 0, len(order.CartContent))
	for _, item := range order.CartContent {
		cart = append(cart, dto.CartItemPayload{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return dto.OrderResponse{
		ID:               order.ID,
		CustomerID:       order.CustomerID,
		CartContent:      cart,
		State:            string(order.State),
		LastModification: order.LastModification,
	}
}
