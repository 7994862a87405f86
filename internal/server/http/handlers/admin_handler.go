package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mobolade/chowpay/internal/server/http/dto"
)

// AdminHandler manages the manual override endpoints.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// Complete handles POST /api/admin/withdrawals/:id/complete.
func (h *AdminHandler) Complete(c *gin.Context) {
	withdrawalID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.AdminCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AdminID <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed request"})
		return
	}

	withdrawal, err := h.facade.CompleteWithdrawal(c.Request.Context(), withdrawalID, req.AdminID, req.GatewayReference, req.AdminNotes)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toWithdrawalResponse(*withdrawal))
}
