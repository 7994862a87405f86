package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mobolade/chowpay/internal/server/http/dto"
)

// HealthHandler reports service liveness and storage connectivity.
type HealthHandler struct {
	pinger Pinger
}

// NewHealthHandler constructs HealthHandler.
func NewHealthHandler(pinger Pinger) *HealthHandler {
	return &HealthHandler{pinger: pinger}
}

// Check handles GET /healthz.
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.pinger.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "storage unavailable"})
		return
	}
	c.Status(http.StatusOK)
}
