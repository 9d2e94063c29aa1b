package usecases_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"crm-admin.backend/internal/domain/entities"
	"crm-admin.backend/pkg/crypto"
	"crm-admin.backend/pkg/jwt"
)

func newTestJWT() *jwt.JWTService {
	return jwt.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)
}

func newTestCredentials(t *testing.T) *crypto.CredentialService {
	t.Helper()
	svc, err := crypto.NewCredentialService(4, "test-salt")
	require.NoError(t, err)
	return svc
}

func userRole(userID int64, role entities.RoleID) *entities.UserRole {
	return &entities.UserRole{ID: userID, UserID: userID, RoleID: role}
}

func strPtr(s string) *string { return &s }
