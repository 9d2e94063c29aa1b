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

const salesPersonViewColumns = "sales_person_profile.*, users.full_name, users.email, users.phone_number, users.referral_code, users.blocked"

// SalesPersonProfileRepository implements sales person profile operations
type SalesPersonProfileRepository struct {
	db *gorm.DB
}

// NewSalesPersonProfileRepository creates a new sales person profile repository
func NewSalesPersonProfileRepository(db *gorm.DB) *SalesPersonProfileRepository {
	return &SalesPersonProfileRepository{db: db}
}

// Create creates a sales person profile and sets its ID
func (r *SalesPersonProfileRepository) Create(ctx context.Context, profile *entities.SalesPersonProfile) error {
	now := time.Now()
	m := &models.SalesPersonProfile{
		UserID:       profile.UserID,
		DOB:          profile.DOB.Ptr(),
		Gender:       int(profile.Gender),
		Address1:     profile.Address1,
		Address2:     profile.Address2,
		City:         profile.City,
		District:     profile.District,
		State:        profile.State,
		Country:      profile.Country,
		PostalCode:   profile.PostalCode,
		ProfileImage: profile.ProfileImage.Ptr(),
		Designation:  profile.Designation,
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

// GetByID gets a sales person profile by ID
func (r *SalesPersonProfileRepository) GetByID(ctx context.Context, id int64) (*entities.SalesPersonProfile, error) {
	var m models.SalesPersonProfile
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateReadError(err)
	}
	return salesPersonProfileToEntity(&m), nil
}

// GetByUserID gets the profile owned by a user
func (r *SalesPersonProfileRepository) GetByUserID(ctx context.Context, userID int64) (*entities.SalesPersonProfile, error) {
	var m models.SalesPersonProfile
	if err := GetDB(ctx, r.db).Where("users_id = ?", userID).First(&m).Error; err != nil {
		return nil, translateReadError(err)
	}
	return salesPersonProfileToEntity(&m), nil
}

// GetView gets a profile joined with its user
func (r *SalesPersonProfileRepository) GetView(ctx context.Context, id int64) (*entities.SalesPersonView, error) {
	var rows []models.SalesPersonRow
	if err := r.joined(ctx).Where("sales_person_profile.id = ?", id).Select(salesPersonViewColumns).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domainerrors.ErrNotFound
	}
	return salesPersonRowToView(&rows[0]), nil
}

// List lists sales person profiles joined with their users
func (r *SalesPersonProfileRepository) List(ctx context.Context, filter entities.ListFilter) ([]*entities.SalesPersonView, int64, error) {
	query := r.joined(ctx).Where("users.deleted = ?", false)
	if filter.Blocked != nil {
		query = query.Where("users.blocked = ?", *filter.Blocked)
	}
	return r.page(query, filter.Skip, filter.Limit)
}

// ListTeam lists every active sales person except the caller
func (r *SalesPersonProfileRepository) ListTeam(ctx context.Context, excludeUserID int64, skip, limit int) ([]*entities.SalesPersonView, int64, error) {
	query := r.joined(ctx).
		Where("users.deleted = ?", false).
		Where("users.blocked = ?", false).
		Where("sales_person_profile.users_id <> ?", excludeUserID)
	return r.page(query, skip, limit)
}

// Update applies column updates to a profile
func (r *SalesPersonProfileRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	updates := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["updated_at"] = time.Now()

	result := GetDB(ctx, r.db).Model(&models.SalesPersonProfile{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetProfileImage overwrites or clears (nil) the image pointer
func (r *SalesPersonProfileRepository) SetProfileImage(ctx context.Context, id int64, blobID *string) error {
	return r.Update(ctx, id, map[string]interface{}{"profile_image": blobID})
}

func (r *SalesPersonProfileRepository) page(query *gorm.DB, skip, limit int) ([]*entities.SalesPersonView, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.SalesPersonRow
	if err := query.Select(salesPersonViewColumns).Order("sales_person_profile.id ASC").Offset(skip).Limit(limit).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	views := make([]*entities.SalesPersonView, 0, len(rows))
	for i := range rows {
		views = append(views, salesPersonRowToView(&rows[i]))
	}
	return views, total, nil
}

func (r *SalesPersonProfileRepository) joined(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).
		Table("sales_person_profile").
		Joins("JOIN users ON users.id = sales_person_profile.users_id")
}

func salesPersonProfileToEntity(m *models.SalesPersonProfile) *entities.SalesPersonProfile {
	return &entities.SalesPersonProfile{
		ID:           m.ID,
		UserID:       m.UserID,
		DOB:          null.TimeFromPtr(m.DOB),
		Gender:       entities.Gender(m.Gender),
		Address1:     m.Address1,
		Address2:     m.Address2,
		City:         m.City,
		District:     m.District,
		State:        m.State,
		Country:      m.Country,
		PostalCode:   m.PostalCode,
		ProfileImage: null.StringFromPtr(m.ProfileImage),
		Designation:  m.Designation,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func salesPersonRowToView(row *models.SalesPersonRow) *entities.SalesPersonView {
	return &entities.SalesPersonView{
		SalesPersonProfile: *salesPersonProfileToEntity(&row.SalesPersonProfile),
		FullName:           row.FullName,
		Email:              row.Email,
		PhoneNumber:        row.PhoneNumber,
		ReferralCode:       row.ReferralCode,
		Blocked:            row.Blocked,
	}
}
