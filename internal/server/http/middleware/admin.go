package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/mobolade/chowpay/internal/pkg/auth"
	"github.com/mobolade/chowpay/internal/server/http/dto"
)

// AdminKeyHeader carries the shared admin API key.
const AdminKeyHeader = "X-Admin-Key"

// AdminRequired gates admin endpoints behind the configured API key.
func AdminRequired(guard *pkgAuth.AdminKeyGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := guard.Check(c.GetHeader(AdminKeyHeader)); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
			return
		}
		c.Next()
	}
}
