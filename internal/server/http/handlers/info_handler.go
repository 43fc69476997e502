package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/webshoplab/orders/internal/server/http/dto"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// InfoHandler serves service metadata.
type InfoHandler struct {
	service string
	started int64
}

// NewInfoHandler constructs InfoHandler for the named service.
func NewInfoHandler(service string) *InfoHandler {
	return &InfoHandler{
		service: service,
		started: time.Now().UnixMilli(),
	}
}

// Info handles GET /info.
func (h *InfoHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, dto.InfoResponse{
		Service: h.service,
		Version: Version,
		Started: h.started,
	})
}
