package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"artportfolio/internal/domain"
	"artportfolio/internal/pkg/response"
)

const (
	ContextUserID   = "user_id"
	ContextRole     = "role"
	ContextIdentity = "identity"
)

// TokenValidator verifies a bearer token and returns who it belongs to.
type TokenValidator interface {
	ValidateToken(token string) (domain.Identity, error)
}

// JWTAuth requires "Authorization: Bearer <token>". A missing or malformed
// header is 401, a token that fails verification is 403.
func JWTAuth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			response.Abort(c, http.StatusUnauthorized, "TOKEN_REQUIRED", "Access token required")
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Abort(c, http.StatusUnauthorized, "TOKEN_REQUIRED", "Access token required")
			return
		}

		identity, err := tokens.ValidateToken(tokenStr)
		if err != nil {
			log.Printf("auth_reject path=%s client_ip=%s reason=%q", c.Request.URL.Path, c.ClientIP(), err.Error())
			response.Abort(c, http.StatusForbidden, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		c.Set(ContextUserID, identity.ID)
		c.Set(ContextRole, string(identity.Role))
		c.Set(ContextIdentity, identity)

		c.Next()
	}
}

// IdentityFrom returns the identity JWTAuth attached to the request.
func IdentityFrom(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)
	return identity, ok
}
