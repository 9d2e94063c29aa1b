package repositories

import (
	"context"
	"time"

	"crm-admin.backend/internal/domain/entities"
	"crm-admin.backend/internal/infrastructure/models"
	"gorm.io/gorm"
)

// RoleRepository implements role lookups and assignment
type RoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// GetRole gets a reference role row
func (r *RoleRepository) GetRole(ctx context.Context, id entities.RoleID) (*entities.Role, error) {
	var m models.Role
	if err := GetDB(ctx, r.db).Where("id = ?", int64(id)).First(&m).Error; err != nil {
		return nil, translateReadError(err)
	}
	return &entities.Role{ID: entities.RoleID(m.ID), Role: m.Role, Description: m.Description}, nil
}

// GetUserRole gets the single role row of a user
func (r *RoleRepository) GetUserRole(ctx context.Context, userID int64) (*entities.UserRole, error) {
	var m models.UserRole
	if err := GetDB(ctx, r.db).Where("users_id = ?", userID).Order("id ASC").First(&m).Error; err != nil {
		return nil, translateReadError(err)
	}
	return &entities.UserRole{
		ID:        m.ID,
		UserID:    m.UserID,
		RoleID:    entities.RoleID(m.RoleID),
		CreatedAt: m.CreatedAt,
	}, nil
}

// Assign stores the role of a user. A second assignment is ErrAlreadyExists.
func (r *RoleRepository) Assign(ctx context.Context, userID int64, roleID entities.RoleID) error {
	now := time.Now()
	m := &models.UserRole{
		UserID:    userID,
		RoleID:    int64(roleID),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return translateWriteError(GetDB(ctx, r.db).Create(m).Error)
}
