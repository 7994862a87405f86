package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mobolade/chowpay/internal/adapter/paystack"
	domainErrors "github.com/mobolade/chowpay/internal/domain/errors"
	"github.com/mobolade/chowpay/internal/server/http/dto"
)

// pathID parses a positive int64 path parameter, writing a 400 on failure.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid " + name})
		return 0, false
	}
	return id, true
}

// writeError maps domain errors onto HTTP responses. Unexpected errors
// become an opaque 500; the detail is for the request log only.
func writeError(c *gin.Context, err error) {
	var gatewayErr *paystack.GatewayError

	switch {
	case errors.Is(err, domainErrors.ErrNotFound),
		errors.Is(err, domainErrors.ErrProfileMissing):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrInvalidAmount),
		errors.Is(err, domainErrors.ErrInvalidBankDetails),
		errors.Is(err, domainErrors.ErrInsufficientBalance),
		errors.Is(err, domainErrors.ErrProfileUnverified),
		errors.Is(err, domainErrors.ErrRecipientCreation),
		errors.Is(err, domainErrors.ErrNoAgentAssigned),
		errors.Is(err, domainErrors.ErrWithdrawalFinalized):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.As(err, &gatewayErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: gatewayErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
	}
}
