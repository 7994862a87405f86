package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/mobolade/chowpay/internal/domain/errors"
	"github.com/mobolade/chowpay/internal/metrics"
	"github.com/mobolade/chowpay/internal/server/http/dto"
	"github.com/mobolade/chowpay/internal/server/http/middleware"
)

const (
	eventChargeSuccess  = "charge.success"
	eventTransferOK     = "transfer.success"
	eventTransferFailed = "transfer.failed"
)

// WebhookHandler dispatches verified gateway events to the settlement flows.
type WebhookHandler struct {
	facade  WebhookFacade
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(facade WebhookFacade, m *metrics.Metrics, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{facade: facade, metrics: m, logger: logger}
}

// Handle processes POST /api/webhooks/paystack. The signature middleware has
// already authenticated the raw body. Unrecognized events are acknowledged
// with 200 so the gateway does not retry them.
func (h *WebhookHandler) Handle(c *gin.Context) {
	body := middleware.RawBody(c)

	var event dto.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed event"})
		return
	}

	switch event.Event {
	case eventChargeSuccess:
		h.handleCharge(c, event.Data)
	case eventTransferOK, eventTransferFailed:
		h.handleTransfer(c, event.Event, event.Data)
	default:
		h.metrics.WebhookEvents.WithLabelValues(event.Event, "ignored").Inc()
		c.JSON(http.StatusOK, dto.WebhookAck{Status: "not handled"})
	}
}

func (h *WebhookHandler) handleCharge(c *gin.Context, data json.RawMessage) {
	var charge dto.ChargeEventData
	if err := json.Unmarshal(data, &charge); err != nil || charge.Reference == "" {
		h.metrics.WebhookEvents.WithLabelValues(eventChargeSuccess, "malformed").Inc()
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed charge data"})
		return
	}

	err := h.facade.ProcessChargeSuccess(c.Request.Context(), charge.Reference, charge.Amount)
	if err != nil {
		h.metrics.WebhookEvents.WithLabelValues(eventChargeSuccess, "error").Inc()
		h.logger.Error("charge settlement failed",
			slog.String("reference", charge.Reference), slog.String("error", err.Error()))
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "order not found"})
			return
		}
		writeError(c, err)
		return
	}

	h.metrics.WebhookEvents.WithLabelValues(eventChargeSuccess, "ok").Inc()
	h.metrics.SplitsApplied.Inc()
	c.JSON(http.StatusOK, dto.WebhookAck{Status: "ok"})
}

func (h *WebhookHandler) handleTransfer(c *gin.Context, eventName string, data json.RawMessage) {
	var transfer dto.TransferEventData
	if err := json.Unmarshal(data, &transfer); err != nil || transfer.TransferCode == "" {
		h.metrics.WebhookEvents.WithLabelValues(eventName, "malformed").Inc()
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed transfer data"})
		return
	}

	var err error
	if eventName == eventTransferOK {
		err = h.facade.HandleTransferSuccess(c.Request.Context(), transfer.TransferCode)
	} else {
		err = h.facade.HandleTransferFailed(c.Request.Context(), transfer.TransferCode, transfer.FailReason)
	}
	if err != nil {
		h.metrics.WebhookEvents.WithLabelValues(eventName, "error").Inc()
		h.logger.Error("transfer reconciliation failed",
			slog.String("transfer_code", transfer.TransferCode), slog.String("error", err.Error()))
		writeError(c, err)
		return
	}

	h.metrics.WebhookEvents.WithLabelValues(eventName, "ok").Inc()
	c.JSON(http.StatusOK, dto.WebhookAck{Status: "ok"})
}
