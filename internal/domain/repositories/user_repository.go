package repositories

import (
	"context"

	"crm-admin.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id int64) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByPhone(ctx context.Context, phone string) (*entities.User, error)
	UpdateFullName(ctx context.Context, id int64, fullName string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	// SetBlocked flips the flag only when it currently holds !blocked.
	// ErrNotFound means no row matched.
	SetBlocked(ctx context.Context, id int64, blocked bool) error
}
