package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mobolade/chowpay/internal/domain/model"
	"github.com/mobolade/chowpay/internal/metrics"
	"github.com/mobolade/chowpay/internal/server/http/dto"
)

// WithdrawalHandler manages withdrawal endpoints.
type WithdrawalHandler struct {
	facade  WithdrawalFacade
	metrics *metrics.Metrics
}

// NewWithdrawalHandler constructs WithdrawalHandler.
func NewWithdrawalHandler(facade WithdrawalFacade, m *metrics.Metrics) *WithdrawalHandler {
	return &WithdrawalHandler{facade: facade, metrics: m}
}

// Request handles POST /api/agents/:id/withdrawals.
func (h *WithdrawalHandler) Request(c *gin.Context) {
	agentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed request"})
		return
	}

	withdrawal, err := h.facade.RequestWithdrawal(c.Request.Context(), agentID, req.Amount, req.Type)
	if err != nil {
		h.metrics.Withdrawals.WithLabelValues("rejected").Inc()
		writeError(c, err)
		return
	}

	h.metrics.Withdrawals.WithLabelValues("accepted").Inc()
	resp := dto.WithdrawResponse{
		Success:      true,
		WithdrawalID: withdrawal.ID,
		Reference:    withdrawal.Reference,
		Status:       string(withdrawal.Status),
	}
	if withdrawal.TransferCode != nil {
		resp.TransferCode = *withdrawal.TransferCode
	}
	c.JSON(http.StatusOK, resp)
}

// List handles GET /api/agents/:id/withdrawals.
func (h *WithdrawalHandler) List(c *gin.Context) {
	agentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	withdrawals, err := h.facade.Withdrawals(c.Request.Context(), agentID)
	if err != nil {
		writeError(c, err)
		return
	}
	if len(withdrawals) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.WithdrawalResponse, 0, len(withdrawals))
	for _, w := range withdrawals {
		resp = append(resp, toWithdrawalResponse(w))
	}
	c.JSON(http.StatusOK, resp)
}

func toWithdrawalResponse(w model.Withdrawal) dto.WithdrawalResponse {
	return dto.WithdrawalResponse{
		ID:           w.ID,
		Amount:       w.Amount,
		Type:         w.Type,
		Status:       string(w.Status),
		Reference:    w.Reference,
		TransferCode: w.TransferCode,
		ErrorMessage: w.ErrorMessage,
		CreatedAt:    w.CreatedAt,
		ProcessedAt:  w.ProcessedAt,
	}
}
