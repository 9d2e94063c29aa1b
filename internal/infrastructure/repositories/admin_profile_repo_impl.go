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

const adminViewColumns = "admin_profile.*, users.full_name, users.email, users.phone_number, users.referral_code, users.blocked"

// AdminProfileRepository implements admin profile operations
type AdminProfileRepository struct {
	db *gorm.DB
}

// NewAdminProfileRepository creates a new admin profile repository
func NewAdminProfileRepository(db *gorm.DB) *AdminProfileRepository {
	return &AdminProfileRepository{db: db}
}

// Create creates an admin profile and sets its ID
func (r *AdminProfileRepository) Create(ctx context.Context, profile *entities.AdminProfile) error {
	now := time.Now()
	m := &models.AdminProfile{
		UserID:       profile.UserID,
		DOB:          profile.DOB.Ptr(),
		Gender:       int(profile.Gender),
		LastLogin:    profile.LastLogin.Ptr(),
		ProfileImage: profile.ProfileImage.Ptr(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translateWriteError(err)
	}
	profile.ID = m.ID
	profile.CreatedAt = m.CreatedAt
	profile.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets an admin profile by ID
func (r *AdminProfileRepository) GetByID(ctx context.Context, id int64) (*entities.AdminProfile, error) {
	var m models.AdminProfile
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateReadError(err)
	}
	return adminProfileToEntity(&m), nil
}

// GetByUserID gets the admin profile owned by a user
func (r *AdminProfileRepository) GetByUserID(ctx context.Context, userID int64) (*entities.AdminProfile, error) {
	var m models.AdminProfile
	if err := GetDB(ctx, r.db).Where("users_id = ?", userID).First(&m).Error; err != nil {
		return nil, translateReadError(err)
	}
	return adminProfileToEntity(&m), nil
}

// GetView gets a profile joined with its user
func (r *AdminProfileRepository) GetView(ctx context.Context, id int64) (*entities.AdminView, error) {
	var rows []models.AdminRow
	if err := r.joined(ctx).Where("admin_profile.id = ?", id).Select(adminViewColumns).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domainerrors.ErrNotFound
	}
	return adminRowToView(&rows[0]), nil
}

// List lists admin profiles joined with their users
func (r *AdminProfileRepository) List(ctx context.Context, filter entities.ListFilter) ([]*entities.AdminView, int64, error) {
	query := r.joined(ctx).Where("users.deleted = ?", false)
	if filter.Blocked != nil {
		query = query.Where("users.blocked = ?", *filter.Blocked)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.AdminRow
	if err := query.Select(adminViewColumns).Order("admin_profile.id ASC").Offset(filter.Skip).Limit(filter.Limit).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	views := make([]*entities.AdminView, 0, len(rows))
	for i := range rows {
		views = append(views, adminRowToView(&rows[i]))
	}
	return views, total, nil
}

// Update applies column updates to a profile
func (r *AdminProfileRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.updateWhere(ctx, "id = ?", id, fields)
}

// UpdateLastLogin stamps last_login on the profile of one admin
func (r *AdminProfileRepository) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	return r.updateWhere(ctx, "users_id = ?", userID, map[string]interface{}{"last_login": at})
}

// SetProfileImage overwrites or clears (nil) the image pointer
func (r *AdminProfileRepository) SetProfileImage(ctx context.Context, id int64, blobID *string) error {
	return r.updateWhere(ctx, "id = ?", id, map[string]interface{}{"profile_image": blobID})
}

func (r *AdminProfileRepository) updateWhere(ctx context.Context, query string, arg interface{}, fields map[string]interface{}) error {
	updates := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["updated_at"] = time.Now()

	result := GetDB(ctx, r.db).Model(&models.AdminProfile{}).Where(query, arg).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *AdminProfileRepository) joined(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).
		Table("admin_profile").
		Joins("JOIN users ON users.id = admin_profile.users_id")
}

func adminProfileToEntity(m *models.AdminProfile) *entities.AdminProfile {
	return &entities.AdminProfile{
		ID:           m.ID,
		UserID:       m.UserID,
		DOB:          null.TimeFromPtr(m.DOB),
		Gender:       entities.Gender(m.Gender),
		LastLogin:    null.TimeFromPtr(m.LastLogin),
		ProfileImage: null.StringFromPtr(m.ProfileImage),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func adminRowToView(row *models.AdminRow) *entities.AdminView {
	return &entities.AdminView{
		AdminProfile: *adminProfileToEntity(&row.AdminProfile),
		FullName:     row.FullName,
		Email:        row.Email,
		PhoneNumber:  row.PhoneNumber,
		ReferralCode: row.ReferralCode,
		Blocked:      row.Blocked,
	}
}
