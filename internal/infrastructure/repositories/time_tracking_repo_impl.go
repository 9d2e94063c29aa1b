package repositories

import (
	"context"

	"crm-admin.backend/internal/domain/entities"
	domainerrors "crm-admin.backend/internal/domain/errors"
	"crm-admin.backend/internal/infrastructure/models"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// TimeTrackingRepository implements login session record operations
type TimeTrackingRepository struct {
	db *gorm.DB
}

// NewTimeTrackingRepository creates a new time tracking repository
func NewTimeTrackingRepository(db *gorm.DB) *TimeTrackingRepository {
	return &TimeTrackingRepository{db: db}
}

// Create opens a session record. The partial unique index on open records
// turns a concurrent second open into ErrAlreadyExists.
func (r *TimeTrackingRepository) Create(ctx context.Context, record *entities.TimeTrackingRecord) error {
	m := &models.SalesPersonTimeTracking{
		UserID:          record.UserID,
		Date:            record.Date,
		LogInTime:       record.LogInTime,
		LogOutTime:      record.LogOutTime.Ptr(),
		ActiveLoginTime: record.ActiveLoginTime.Ptr(),
		Active:          record.Active,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translateWriteError(err)
	}
	record.ID = m.ID
	return nil
}

// GetOpenByUserID gets the open record of a user
func (r *TimeTrackingRepository) GetOpenByUserID(ctx context.Context, userID int64) (*entities.TimeTrackingRecord, error) {
	var m models.SalesPersonTimeTracking
	err := GetDB(ctx, r.db).
		Where("users_id = ? AND active = ?", userID, entities.SessionActive).
		Order("id DESC").
		First(&m).Error
	if err != nil {
		return nil, translateReadError(err)
	}
	return timeTrackingToEntity(&m), nil
}

// Close writes logout time and duration only if the record is still open
func (r *TimeTrackingRepository) Close(ctx context.Context, record *entities.TimeTrackingRecord) error {
	result := GetDB(ctx, r.db).
		Model(&models.SalesPersonTimeTracking{}).
		Where("id = ? AND active = ?", record.ID, entities.SessionActive).
		Updates(map[string]interface{}{
			"log_out_time":      record.LogOutTime.Ptr(),
			"active_login_time": record.ActiveLoginTime.Ptr(),
			"active":            entities.SessionInactive,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	record.Active = entities.SessionInactive
	return nil
}

// ListByUserID lists records of one user, newest first
func (r *TimeTrackingRepository) ListByUserID(ctx context.Context, userID int64, skip, limit int) ([]*entities.TimeTrackingRecord, int64, error) {
	return r.list(GetDB(ctx, r.db).Model(&models.SalesPersonTimeTracking{}).Where("users_id = ?", userID), skip, limit)
}

// List lists all records, newest first
func (r *TimeTrackingRepository) List(ctx context.Context, skip, limit int) ([]*entities.TimeTrackingRecord, int64, error) {
	return r.list(GetDB(ctx, r.db).Model(&models.SalesPersonTimeTracking{}), skip, limit)
}

func (r *TimeTrackingRepository) list(query *gorm.DB, skip, limit int) ([]*entities.TimeTrackingRecord, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.SalesPersonTimeTracking
	if err := query.Order("id DESC").Offset(skip).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	records := make([]*entities.TimeTrackingRecord, 0, len(rows))
	for i := range rows {
		records = append(records, timeTrackingToEntity(&rows[i]))
	}
	return records, total, nil
}

func timeTrackingToEntity(m *models.SalesPersonTimeTracking) *entities.TimeTrackingRecord {
	return &entities.TimeTrackingRecord{
		ID:              m.ID,
		UserID:          m.UserID,
		Date:            m.Date,
		LogInTime:       m.LogInTime,
		LogOutTime:      null.TimeFromPtr(m.LogOutTime),
		ActiveLoginTime: null.StringFromPtr(m.ActiveLoginTime),
		Active:          m.Active,
	}
}
