package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/webshoplab/orders/internal/domain/errors"
)

// respondIncrementError maps increment failures onto HTTP statuses. A
// mutation that would drive the field negative is a business rejection, so
// the caller sees 400 rather than a server fault.
func respondIncrementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidRequest), errors.Is(err, domainErrors.ErrNegativeResult):
		c.Status(http.StatusBadRequest)
	default:
		c.Status(http.StatusInternalServerError)
	}
}
