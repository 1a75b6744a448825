package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnsphere/learnsphere-api/internal/domain/entity"
	"github.com/learnsphere/learnsphere-api/pkg/response"
)

// CanAccess is the owner-or-admin rule: an admin may touch any resource, a
// non-admin only resources they own.
func CanAccess(id Identity, ownerID string) bool {
	return id.Role == entity.RoleAdmin || id.ID == ownerID
}

// RequireRoles gates a route to the given roles. Must run after Auth.
func RequireRoles(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			response.Error[any](c, http.StatusUnauthorized, "missing bearer token", nil)
			c.Abort()
			return
		}
		for _, r := range roles {
			if id.Role == r {
				c.Next()
				return
			}
		}
		response.Error[any](c, http.StatusForbidden, "access denied", nil)
		c.Abort()
	}
}

// RequireSelfOrAdmin gates a route holding a user id path parameter to the
// owning user or an admin. Must run after Auth.
func RequireSelfOrAdmin(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			response.Error[any](c, http.StatusUnauthorized, "missing bearer token", nil)
			c.Abort()
			return
		}
		if !CanAccess(id, c.Param(param)) {
			response.Error[any](c, http.StatusForbidden, "access denied", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
