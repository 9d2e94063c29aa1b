package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"crm-admin.backend/internal/domain/entities"
	domainerrors "crm-admin.backend/internal/domain/errors"
	"crm-admin.backend/internal/domain/repositories"
	"crm-admin.backend/pkg/crypto"
	"crm-admin.backend/pkg/jwt"
	"crm-admin.backend/pkg/logger"
)

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo    repositories.UserRepository
	adminRepo   repositories.AdminProfileRepository
	roles       *RoleRegistry
	credentials *crypto.CredentialService
	jwtService  *jwt.JWTService
	now         func() time.Time
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	adminRepo repositories.AdminProfileRepository,
	roles *RoleRegistry,
	credentials *crypto.CredentialService,
	jwtService *jwt.JWTService,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:    userRepo,
		adminRepo:   adminRepo,
		roles:       roles,
		credentials: credentials,
		jwtService:  jwtService,
		now:         time.Now,
	}
}

// Login authenticates a user for the requested role and returns tokens
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	if !input.Role.IsValid() {
		return nil, domainerrors.InvalidInput("Unknown role")
	}

	user, err := u.userRepo.GetByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	if user.Deleted {
		return nil, domainerrors.NotFound("User not found")
	}
	if user.Blocked {
		return nil, domainerrors.Unauthenticated("User is blocked")
	}

	hasRole, err := u.roles.HasRole(ctx, user.ID, input.Role)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	if !hasRole {
		return nil, domainerrors.NotFound("User not found with this role")
	}

	if !u.credentials.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.InvalidCredentials("Incorrect password")
	}

	if input.Role == lastLoginStampRole {
		if err := u.adminRepo.UpdateLastLogin(ctx, user.ID, u.now()); err != nil {
			if !errors.Is(err, domainerrors.ErrNotFound) {
				return nil, domainerrors.InternalError(err)
			}
			logger.Warn(ctx, "Admin has no profile to stamp last login", zap.Int64("user_id", user.ID))
		}
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(user.Email)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	logger.Info(ctx, "User logged in", zap.Int64("user_id", user.ID), zap.String("role", input.Role.String()))
	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		TokenType:    tokenPair.TokenType,
		ID:           user.ID,
		FullName:     user.FullName,
		Email:        user.Email,
		PhoneNumber:  user.PhoneNumber,
	}, nil
}

// Logout ends the caller's session. Tokens are stateless, so only the
// event is recorded.
func (u *AuthUsecase) Logout(ctx context.Context, user *entities.User) error {
	logger.Info(ctx, "User logged out", zap.Int64("user_id", user.ID))
	return nil
}

// RefreshToken generates new tokens from a refresh token
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.Unauthenticated("Could not validate credentials")
	}

	user, err := u.userRepo.GetByEmail(ctx, claims.Email())
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	if user.Deleted {
		return nil, domainerrors.NotFound("User not found")
	}
	if user.Blocked {
		return nil, domainerrors.Unauthenticated("User is blocked")
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(user.Email)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return tokenPair, nil
}
