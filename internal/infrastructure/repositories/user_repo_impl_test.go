package repositories

import (
	"context"
	"testing"

	"crm-admin.backend/internal/domain/entities"
	domainerrors "crm-admin.backend/internal/domain/errors"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &entities.User{
		FullName:     "Alice",
		Email:        "a@x.com",
		PhoneNumber:  "+911234567890",
		PasswordHash: "hash",
		ReferralCode: "abc123",
		ReferredBy:   null.StringFrom("zzz999"),
	}
	require.NoError(t, repo.Create(ctx, u))
	require.NotZero(t, u.ID)

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", byID.Email)
	require.Equal(t, "hash", byID.PasswordHash)
	require.Equal(t, "zzz999", byID.ReferredBy.String)
	require.False(t, byID.Blocked)

	byEmail, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	byPhone, err := repo.GetByPhone(ctx, "+911234567890")
	require.NoError(t, err)
	require.Equal(t, u.ID, byPhone.ID)

	_, err = repo.GetByEmail(ctx, "missing@x.com")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserRepository_EmailIgnoresCase(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &entities.User{FullName: "Ann", Email: " Ann@Example.com ", PhoneNumber: "1", PasswordHash: "h", ReferralCode: "r1"}
	require.NoError(t, repo.Create(ctx, u))
	require.Equal(t, "ann@example.com", u.Email)

	for _, email := range []string{"Ann@Example.com", "ann@example.com", "ANN@EXAMPLE.COM "} {
		got, err := repo.GetByEmail(ctx, email)
		require.NoError(t, err, email)
		require.Equal(t, u.ID, got.ID)
		require.Equal(t, "ann@example.com", got.Email)
	}

	err := repo.Create(ctx, &entities.User{FullName: "B", Email: "ANN@example.com", PhoneNumber: "2", PasswordHash: "h", ReferralCode: "r2"})
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entities.User{FullName: "A", Email: "a@x.com", PhoneNumber: "1", PasswordHash: "h", ReferralCode: "r1"}))
	err := repo.Create(ctx, &entities.User{FullName: "B", Email: "a@x.com", PhoneNumber: "2", PasswordHash: "h", ReferralCode: "r2"})
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestUserRepository_Updates(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()
	seedUser(t, db, 5, "sp@x.com", "+919999999999", false, false)

	require.NoError(t, repo.UpdateFullName(ctx, 5, "Renamed"))
	require.NoError(t, repo.UpdatePassword(ctx, 5, "newhash"))

	u, err := repo.GetByID(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, "Renamed", u.FullName)
	require.Equal(t, "newhash", u.PasswordHash)

	require.ErrorIs(t, repo.UpdateFullName(ctx, 404, "x"), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.UpdatePassword(ctx, 404, "x"), domainerrors.ErrNotFound)
}

func TestUserRepository_SetBlockedCompareAndSwap(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()
	seedUser(t, db, 5, "sp@x.com", "+919999999999", false, false)

	require.NoError(t, repo.SetBlocked(ctx, 5, true))
	// Already blocked: the guard on the current value matches no row.
	require.ErrorIs(t, repo.SetBlocked(ctx, 5, true), domainerrors.ErrNotFound)

	u, err := repo.GetByID(ctx, 5)
	require.NoError(t, err)
	require.True(t, u.Blocked)

	require.NoError(t, repo.SetBlocked(ctx, 5, false))
	require.ErrorIs(t, repo.SetBlocked(ctx, 5, false), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.SetBlocked(ctx, 77, true), domainerrors.ErrNotFound)
}

func TestUserRepository_DBErrors(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	// No table: every call surfaces the driver error.
	_, err := repo.GetByID(ctx, 1)
	require.Error(t, err)
	require.NotErrorIs(t, err, domainerrors.ErrNotFound)
	require.Error(t, repo.Create(ctx, &entities.User{Email: "x"}))
	require.Error(t, repo.SetBlocked(ctx, 1, true))
}
