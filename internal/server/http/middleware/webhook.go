package middleware

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mobolade/chowpay/internal/pkg/signature"
	"github.com/mobolade/chowpay/internal/server/http/dto"
)

const (
	// RawBodyContextKey is a gin context key holding the raw webhook body.
	RawBodyContextKey = "rawBody"
	// SignatureHeader carries the HMAC of the raw request body.
	SignatureHeader = "X-Signature"
)

// VerifyWebhook authenticates webhook deliveries before any business logic
// runs. The HMAC covers the exact bytes received, so the body is captured
// here and handed to handlers through the context.
func VerifyWebhook(verifier *signature.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unreadable body"})
			return
		}

		if !verifier.Verify(body, c.GetHeader(SignatureHeader)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid signature"})
			return
		}

		c.Set(RawBodyContextKey, body)
		c.Next()
	}
}

// RawBody extracts the verified webhook body from context.
func RawBody(c *gin.Context) []byte {
	val, ok := c.Get(RawBodyContextKey)
	if !ok {
		return nil
	}
	body, _ := val.([]byte)
	return body
}
