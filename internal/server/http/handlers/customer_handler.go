package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/webshoplab/orders/internal/domain/errors"
	"github.com/webshoplab/orders/internal/domain/model"
	"github.com/webshoplab/orders/internal/server/http/dto"
)

// CustomerHandler manages customer-related endpoints.
type CustomerHandler struct {
	facade CustomerFacade
}

// NewCustomerHandler constructs CustomerHandler.
func NewCustomerHandler(facade CustomerFacade) *CustomerHandler {
	return &CustomerHandler{facade: facade}
}

// Create handles POST /customer.
func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	customer, _, err := h.facade.CreateCustomer(c.Request.Context(), req.IdempotencyKey, req.Name, req.Credit)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidRequest) {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.CreateEntityResponse{ID: customer.ID})
}

// List handles GET /customer.
func (h *CustomerHandler) List(c *gin.Context) {
	ids, err := h.facade.CustomerIDs(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, ids)
}

// Get handles GET /customer/byid/:id.
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.facade.Customer(c.Request.Context(), c.Param("id"))
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

	c.JSON(http.StatusOK, dto.CustomerResponse{
		ID:               customer.ID,
		Name:             customer.Name,
		Credit:           customer.Credit,
		Creation:         customer.Creation,
		LastModification: customer.LastModification,
	})
}

// Delete handles DELETE /customer/byid/:id.
func (h *CustomerHandler) Delete(c *gin.Context) {
	err := h.facade.DeleteCustomer(c.Request.Context(), c.Param("id"))
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

// IncrementCredit handles POST /customer/credit/increment.
func (h *CustomerHandler) IncrementCredit(c *gin.Context) {
	var req dto.CreditIncrementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	modified, err := h.facade.Increment(c.Request.Context(), model.IncrementRequest{
		IdempotencyKey: req.IdempotencyKey,
		EntityID:       req.CustomerID,
		Increment:      req.Increment,
	})
	if err != nil {
		respondIncrementError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.IncrementResponse{Modified: modified})
}

// UndoIncrementCredit handles DELETE /customer/credit/increment.
func (h *CustomerHandler) UndoIncrementCredit(c *gin.Context) {
	var req dto.UndoIncrementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	modified, err := h.facade.UndoIncrement(c.Request.Context(), req.IdempotencyKey)
	if err != nil {
		respondIncrementError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.IncrementResponse{Modified: modified})
}
