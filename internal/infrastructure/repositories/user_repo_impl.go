package repositories

import (
	"context"
	"time"

	"crm-admin.backend/internal/domain/entities"
	domainerrors "crm-admin.backend/internal/domain/errors"
	"crm-admin.backend/internal/infrastructure/models"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user and sets its ID
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	now := time.Now()
	m := &models.User{
		FullName:     user.FullName,
		Email:        entities.NormalizeEmail(user.Email),
		Password:     user.PasswordHash,
		PhoneNumber:  user.PhoneNumber,
		ReferralCode: user.ReferralCode,
		ReferredBy:   user.ReferredBy.Ptr(),
		Blocked:      user.Blocked,
		Deleted:      user.Deleted,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translateWriteError(err)
	}
	user.ID = m.ID
	user.Email = m.Email
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByEmail gets a user by email, ignoring case and surrounding spaces
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.first(ctx, "email = ?", entities.NormalizeEmail(email))
}

// GetByPhone gets a user by phone number
func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*entities.User, error) {
	return r.first(ctx, "phone_number = ?", phone)
}

// UpdateFullName changes the display name
func (r *UserRepository) UpdateFullName(ctx context.Context, id int64, fullName string) error {
	return r.update(ctx, r.byID(ctx, id), map[string]interface{}{"full_name": fullName})
}

// UpdatePassword replaces the password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.update(ctx, r.byID(ctx, id), map[string]interface{}{"password": passwordHash})
}

// SetBlocked flips the blocked flag with a compare-and-swap on its current value
func (r *UserRepository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	q := r.byID(ctx, id).Where("blocked = ?", !blocked)
	return r.update(ctx, q, map[string]interface{}{"blocked": blocked})
}

func (r *UserRepository) byID(ctx context.Context, id int64) *gorm.DB {
	return GetDB(ctx, r.db).Model(&models.User{}).Where("id = ?", id)
}

func (r *UserRepository) update(_ context.Context, q *gorm.DB, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := q.Updates(updates)
	if result.Error != nil {
		return translateWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) first(ctx context.Context, query string, args ...interface{}) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where(query, args...).First(&m).Error; err != nil {
		return nil, translateReadError(err)
	}
	return r.toEntity(&m), nil
}

func (r *UserRepository) toEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:           m.ID,
		FullName:     m.FullName,
		Email:        m.Email,
		PhoneNumber:  m.PhoneNumber,
		PasswordHash: m.Password,
		ReferralCode: m.ReferralCode,
		ReferredBy:   null.StringFromPtr(m.ReferredBy),
		Blocked:      m.Blocked,
		Deleted:      m.Deleted,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
