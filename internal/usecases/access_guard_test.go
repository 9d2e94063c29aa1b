package usecases_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crm-admin.backend/internal/domain/entities"
	domainerrors "crm-admin.backend/internal/domain/errors"
	"crm-admin.backend/internal/usecases"
	"crm-admin.backend/pkg/jwt"
)

func newGuardForTest() (*usecases.AccessGuard, *jwt.JWTService, *MockUserRepository, *MockRoleRepository) {
	jwtSvc := newTestJWT()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)
	guard := usecases.NewAccessGuard(jwtSvc, userRepo, usecases.NewRoleRegistry(roleRepo))
	return guard, jwtSvc, userRepo, roleRepo
}

func accessToken(t *testing.T, svc *jwt.JWTService, email string) string {
	t.Helper()
	pair, err := svc.GenerateTokenPair(email)
	require.NoError(t, err)
	return pair.AccessToken
}

func TestAccessGuard_RejectsBadTokensWithoutStoreAccess(t *testing.T) {
	guard, _, userRepo, roleRepo := newGuardForTest()
	other := jwt.NewJWTService("other-secret", time.Hour, time.Hour)
	forged, err := other.GenerateTokenPair("a@x.com")
	require.NoError(t, err)

	for _, token := range []string{"", "   ", "not-a-jwt", forged.AccessToken} {
		_, err := guard.Authorize(context.Background(), token, usecases.AnyAuthenticated...)
		assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated, token)
	}

	userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	roleRepo.AssertNotCalled(t, "GetUserRole", mock.Anything, mock.Anything)
}

func TestAccessGuard_RejectsRefreshTokenAsBearer(t *testing.T) {
	guard, jwtSvc, userRepo, roleRepo := newGuardForTest()
	pair, err := jwtSvc.GenerateTokenPair("a@x.com")
	require.NoError(t, err)

	_, err = guard.Authorize(context.Background(), pair.RefreshToken, usecases.AnyAuthenticated...)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)

	userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	roleRepo.AssertNotCalled(t, "GetUserRole", mock.Anything, mock.Anything)
}

func TestAccessGuard_UserMissingOrDeleted(t *testing.T) {
	guard, jwtSvc, userRepo, _ := newGuardForTest()
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "gone@x.com").Return(nil, domainerrors.ErrNotFound).Once()
	_, err := guard.Authorize(ctx, accessToken(t, jwtSvc, "gone@x.com"), usecases.AnyAuthenticated...)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	userRepo.On("GetByEmail", ctx, "deleted@x.com").Return(&entities.User{ID: 3, Email: "deleted@x.com", Deleted: true}, nil).Once()
	_, err = guard.Authorize(ctx, accessToken(t, jwtSvc, "deleted@x.com"), usecases.AnyAuthenticated...)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAccessGuard_RoleChecks(t *testing.T) {
	guard, jwtSvc, userRepo, roleRepo := newGuardForTest()
	ctx := context.Background()
	token := accessToken(t, jwtSvc, "sp@x.com")

	userRepo.On("GetByEmail", ctx, "sp@x.com").Return(&entities.User{ID: 5, Email: "sp@x.com"}, nil)

	// No role row never defaults to a role.
	roleRepo.On("GetUserRole", ctx, int64(5)).Return(nil, domainerrors.ErrNotFound).Once()
	_, err := guard.Authorize(ctx, token, usecases.SalesPersonOnly...)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	roleRepo.On("GetUserRole", ctx, int64(5)).Return(userRole(5, entities.RoleSalesPerson), nil)

	_, err = guard.Authorize(ctx, token, usecases.AdminOrAbove...)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	user, err := guard.Authorize(ctx, token, usecases.SalesPersonOnly...)
	require.NoError(t, err)
	assert.Equal(t, int64(5), user.ID)
}

func TestAccessGuard_DoesNotCheckBlocked(t *testing.T) {
	guard, jwtSvc, userRepo, roleRepo := newGuardForTest()
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "blocked@x.com").Return(&entities.User{ID: 9, Email: "blocked@x.com", Blocked: true}, nil).Once()
	roleRepo.On("GetUserRole", ctx, int64(9)).Return(userRole(9, entities.RoleAdmin), nil).Once()

	user, err := guard.Authorize(ctx, accessToken(t, jwtSvc, "blocked@x.com"), usecases.AdminOrAbove...)
	require.NoError(t, err)
	assert.True(t, user.Blocked)
}

func TestAccessGuard_StoreFailureIsInternal(t *testing.T) {
	guard, jwtSvc, userRepo, roleRepo := newGuardForTest()
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "a@x.com").Return(&entities.User{ID: 1, Email: "a@x.com"}, nil).Once()
	roleRepo.On("GetUserRole", ctx, int64(1)).Return(nil, errors.New("db down")).Once()

	_, err := guard.Authorize(ctx, accessToken(t, jwtSvc, "a@x.com"), usecases.SuperAdminOnly...)
	assert.Equal(t, http.StatusInternalServerError, domainerrors.FromError(err).Status)
}
