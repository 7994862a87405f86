package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mobolade/chowpay/internal/server/http/dto"
)

// BankHandler manages payout profile verification endpoints.
type BankHandler struct {
	facade BankFacade
}

// NewBankHandler constructs BankHandler.
func NewBankHandler(facade BankFacade) *BankHandler {
	return &BankHandler{facade: facade}
}

// Verify handles POST /api/agents/:id/bank.
func (h *BankHandler) Verify(c *gin.Context) {
	agentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.BankVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed request"})
		return
	}

	profile, err := h.facade.VerifyBankAccount(c.Request.Context(), agentID, req.AccountNumber, req.BankCode)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BankVerifyResponse{
		AccountNumber: profile.AccountNumber,
		BankCode:      profile.BankCode,
		AccountName:   profile.AccountName,
		Verified:      profile.Verified,
	})
}
