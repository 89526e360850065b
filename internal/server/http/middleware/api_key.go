package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/polkiloo/orderrelay/internal/pkg/auth"
	"github.com/polkiloo/orderrelay/internal/server/http/dto"
)

// APIKeyHeader carries the host credential.
const APIKeyHeader = "X-API-Key"

// APIKeyVerifier checks host credentials.
type APIKeyVerifier interface {
	Enabled() bool
	Verify(key string) error
}

// APIKeyRequired rejects requests without a valid host key. It is a pass-through when the
// verifier has no key configured.
func APIKeyRequired(verifier APIKeyVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil || !verifier.Enabled() {
			c.Next()
			return
		}

		err := verifier.Verify(c.GetHeader(APIKeyHeader))
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, pkgAuth.ErrMissingAPIKey), errors.Is(err, pkgAuth.ErrInvalidAPIKey):
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error(), Code: "unauthorized"})
		default:
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error", Code: "internal"})
		}
	}
}
