package repositories

import (
	"context"
	"time"

	"crm-admin.backend/internal/domain/entities"
)

// AdminProfileRepository defines admin profile operations
type AdminProfileRepository interface {
	Create(ctx context.Context, profile *entities.AdminProfile) error
	GetByID(ctx context.Context, id int64) (*entities.AdminProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*entities.AdminProfile, error)
	GetView(ctx context.Context, id int64) (*entities.AdminView, error)
	List(ctx context.Context, filter entities.ListFilter) ([]*entities.AdminView, int64, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
	SetProfileImage(ctx context.Context, id int64, blobID *string) error
}

// SalesPersonProfileRepository defines sales person profile operations
type SalesPersonProfileRepository interface {
	Create(ctx context.Context, profile *entities.SalesPersonProfile) error
	GetByID(ctx context.Context, id int64) (*entities.SalesPersonProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*entities.SalesPersonProfile, error)
	GetView(ctx context.Context, id int64) (*entities.SalesPersonView, error)
	List(ctx context.Context, filter entities.ListFilter) ([]*entities.SalesPersonView, int64, error)
	ListTeam(ctx context.Context, excludeUserID int64, skip, limit int) ([]*entities.SalesPersonView, int64, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	SetProfileImage(ctx context.Context, id int64, blobID *string) error
}
