package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/webshoplab/orders/internal/domain/errors"
	"github.com/webshoplab/orders/internal/domain/model"
	"github.com/webshoplab/orders/internal/server/http/dto"
)

// ProductHandler manages product-related endpoints.
type ProductHandler struct {
	facade ProductFacade
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(facade ProductFacade) *ProductHandler {
	return &ProductHandler{facade: facade}
}

// Create handles POST /product.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	product, _, err := h.facade.CreateProduct(c.Request.Context(), req.IdempotencyKey, req.Name, req.Price, req.Quantity)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidRequest) {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.CreateEntityResponse{ID: product.ID})
}

// List handles GET /product.
func (h *ProductHandler) List(c *gin.Context) {
	ids, err := h.facade.ProductIDs(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, ids)
}

// Get handles GET /product/byid/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.facade.Product(c.Request.Context(), c.Param("id"))
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

	c.JSON(http.StatusOK, dto.ProductResponse{
		ID:               product.ID,
		Name:             product.Name,
		Price:            product.Price,
		Quantity:         product.Quantity,
		Creation:         product.Creation,
		LastModification: product.LastModification,
	})
}

// Delete handles DELETE /product/byid/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	err := h.facade.DeleteProduct(c.Request.Context(), c.Param("id"))
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

// IncrementQuantity handles POST /product/quantity/increment.
func (h *ProductHandler) IncrementQuantity(c *gin.Context) {
	var req dto.QuantityIncrementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	modified, err := h.facade.Increment(c.Request.Context(), model.IncrementRequest{
		IdempotencyKey: req.IdempotencyKey,
		EntityID:       req.ProductID,
		Increment:      req.Increment,
	})
	if err != nil {
		respondIncrementError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.IncrementResponse{Modified: modified})
}

// UndoIncrementQuantity handles DELETE /product/quantity/increment.
func (h *ProductHandler) UndoIncrementQuantity(c *gin.Context) {
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
