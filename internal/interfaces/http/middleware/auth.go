package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"crm-admin.backend/internal/domain/entities"
	domainerrors "crm-admin.backend/internal/domain/errors"
	"crm-admin.backend/internal/interfaces/http/response"
	"crm-admin.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserKey is the gin context key of the authorized user
	UserKey = "user"
)

// Authorizer resolves a bearer token into a user holding one of roles
type Authorizer interface {
	Authorize(ctx context.Context, token string, roles ...entities.RoleID) (*entities.User, error)
}

// RequireRoles authorizes the bearer token against roles and stores the
// user in the context
func RequireRoles(guard Authorizer, roles ...entities.RoleID) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.Abort(c, domainerrors.Unauthenticated("Not authenticated"))
			return
		}

		user, err := guard.Authorize(c.Request.Context(), strings.TrimPrefix(authHeader, BearerPrefix), roles...)
		if err != nil {
			response.Abort(c, err)
			return
		}

		c.Set(UserKey, user)
		c.Request = c.Request.WithContext(logger.WithCaller(c.Request.Context(), user.ID))
		c.Next()
	}
}

// GetUser gets the authorized user from context
func GetUser(c *gin.Context) (*entities.User, bool) {
	v, exists := c.Get(UserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*entities.User)
	return user, ok
}
