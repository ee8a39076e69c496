package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storelaunch/backend/internal/domain/identity"
	"github.com/storelaunch/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Role groups used by the router
var (
	// Managers may write stores, templates, manuals, groups and vendors
	Managers = []identity.Role{identity.RoleAdmin, identity.RolePM}
	// Contributors may additionally update tasks and inventory counts
	Contributors = []identity.Role{identity.RoleAdmin, identity.RolePM, identity.RoleContributor}
	// Admins only
	Admins = []identity.Role{identity.RoleAdmin}
)

// RequireRole creates middleware that lets through only the listed roles.
// It must run after JWTAuthMiddleware; a request without claims gets 401.
func RequireRole(log *zap.Logger, roles ...identity.Role) gin.HandlerFunc {
	allowed := make([]string, len(roles))
	for i, r := range roles {
		allowed[i] = string(r)
	}

	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, "Unauthorized", c.GetString("request_id")))
			return
		}

		if !claims.HasRole(allowed...) {
			if log != nil {
				log.Warn("Role denied",
					zap.String("user_id", claims.UserID),
					zap.String("role", claims.Role),
					zap.Strings("required_any", allowed),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
				)
			}
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, "Forbidden", c.GetString("request_id")))
			return
		}

		c.Next()
	}
}
