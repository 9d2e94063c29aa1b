package repositories

import (
	"context"

	"crm-admin.backend/internal/domain/entities"
)

// RoleRepository defines role and role assignment operations
type RoleRepository interface {
	GetRole(ctx context.Context, id entities.RoleID) (*entities.Role, error)
	GetUserRole(ctx context.Context, userID int64) (*entities.UserRole, error)
	Assign(ctx context.Context, userID int64, roleID entities.RoleID) error
}
