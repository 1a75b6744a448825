package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/learnsphere/learnsphere-api/internal/domain/entity"
	"github.com/learnsphere/learnsphere-api/pkg/helpers"
	"github.com/learnsphere/learnsphere-api/pkg/response"
)

// Identity is the authenticated caller, attached to the Gin context by Auth.
type Identity struct {
	ID    string
	Email string
	Role  entity.Role
}

const ctxIdentityKey = "identity"

// IdentityFrom returns the authenticated identity set by Auth.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(ctxIdentityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// Auth validates the bearer token from the Authorization header and attaches
// the authenticated identity to the context. It deliberately checks nothing
// but the token itself, so authentication keeps working for already-issued
// tokens during a database outage. Expired and malformed tokens are both
// rejected as unauthenticated but logged under distinct reasons.
func Auth(jwt *helpers.JWTManager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing bearer token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			if logger != nil {
				reason := "malformed"
				if errors.Is(err, helpers.ErrTokenExpired) {
					reason = "expired"
				}
				logger.WithFields(logrus.Fields{"reason": reason, "path": c.FullPath()}).Debug("token rejected")
			}
			response.Error[any](c, http.StatusUnauthorized, "invalid or expired token", nil)
			c.Abort()
			return
		}
		c.Set(ctxIdentityKey, Identity{
			ID:    claims.UserID,
			Email: claims.Email,
			Role:  entity.Role(claims.Role),
		})
		// kept for rate-limit key funcs
		c.Set("userID", claims.UserID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
