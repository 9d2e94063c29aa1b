package usecases

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"crm-admin.backend/internal/domain/entities"
	domainerrors "crm-admin.backend/internal/domain/errors"
	"crm-admin.backend/internal/domain/repositories"
	"crm-admin.backend/pkg/jwt"
	"crm-admin.backend/pkg/logger"
	"crm-admin.backend/pkg/metrics"
)

// Role sets used by the HTTP layer
var (
	SuperAdminOnly     = []entities.RoleID{entities.RoleSuperAdmin}
	AdminOrAbove       = []entities.RoleID{entities.RoleSuperAdmin, entities.RoleAdmin}
	AdminOnly          = []entities.RoleID{entities.RoleAdmin}
	SalesPersonOnly    = []entities.RoleID{entities.RoleSalesPerson}
	AnyAuthenticated   = entities.AllRoles
	lastLoginStampRole = entities.RoleAdmin
)

// AccessGuard turns a bearer token into an authorized user
type AccessGuard struct {
	jwtService *jwt.JWTService
	userRepo   repositories.UserRepository
	roles      *RoleRegistry
}

// NewAccessGuard creates a new access guard
func NewAccessGuard(jwtService *jwt.JWTService, userRepo repositories.UserRepository, roles *RoleRegistry) *AccessGuard {
	return &AccessGuard{
		jwtService: jwtService,
		userRepo:   userRepo,
		roles:      roles,
	}
}

// Authorize validates token and checks that its user holds one of required.
// The blocked flag is not consulted here.
func (g *AccessGuard) Authorize(ctx context.Context, token string, required ...entities.RoleID) (*entities.User, error) {
	user, err := g.authorize(ctx, token, required)
	metrics.IncAuthDecision(authOutcome(err))
	return user, err
}

func (g *AccessGuard) authorize(ctx context.Context, token string, required []entities.RoleID) (*entities.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domainerrors.Unauthenticated("Could not validate credentials")
	}
	claims, err := g.jwtService.ValidateAccessToken(token)
	if err != nil {
		return nil, domainerrors.Unauthenticated("Could not validate credentials")
	}

	user, err := g.userRepo.GetByEmail(ctx, claims.Email())
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	if user.Deleted {
		return nil, domainerrors.NotFound("User not found")
	}

	role, ok, err := g.roles.RoleOf(ctx, user.ID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	if !ok || !entities.RoleIn(role, required...) {
		logger.Debug(ctx, "Access denied",
			zap.Int64("user_id", user.ID),
			zap.String("role", role.String()),
		)
		return nil, domainerrors.Forbidden("Permission denied")
	}
	return user, nil
}

func authOutcome(err error) string {
	switch {
	case err == nil:
		return "allowed"
	case errors.Is(err, domainerrors.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, domainerrors.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domainerrors.ErrNotFound):
		return "not_found"
	}
	return "error"
}
