package usecases

import (
	"context"
	"errors"

	"crm-admin.backend/internal/domain/entities"
	domainerrors "crm-admin.backend/internal/domain/errors"
	"crm-admin.backend/internal/domain/repositories"
)

// RoleRegistry resolves the single role held by a user
type RoleRegistry struct {
	roleRepo repositories.RoleRepository
}

// NewRoleRegistry creates a new role registry
func NewRoleRegistry(roleRepo repositories.RoleRepository) *RoleRegistry {
	return &RoleRegistry{roleRepo: roleRepo}
}

// RoleOf returns the user's role. ok is false when no assignment exists or
// the stored role is outside the known set.
func (r *RoleRegistry) RoleOf(ctx context.Context, userID int64) (entities.RoleID, bool, error) {
	ur, err := r.roleRepo.GetUserRole(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	if !ur.RoleID.IsValid() {
		return 0, false, nil
	}
	return ur.RoleID, true, nil
}

// HasRole reports whether the user holds exactly role
func (r *RoleRegistry) HasRole(ctx context.Context, userID int64, role entities.RoleID) (bool, error) {
	got, ok, err := r.RoleOf(ctx, userID)
	if err != nil || !ok {
		return false, err
	}
	return got == role, nil
}

// Assign gives the user its role. A user holds at most one role.
func (r *RoleRegistry) Assign(ctx context.Context, userID int64, role entities.RoleID) error {
	if !role.IsValid() {
		return domainerrors.InvalidInput("Unknown role")
	}
	if err := r.roleRepo.Assign(ctx, userID, role); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return domainerrors.Conflict("User already has a role")
		}
		return err
	}
	return nil
}
