package repositories

import (
	"context"

	"crm-admin.backend/internal/domain/entities"
)

// TimeTrackingRepository defines login session record operations
type TimeTrackingRepository interface {
	// Create returns ErrAlreadyExists when the user already has an open record.
	Create(ctx context.Context, record *entities.TimeTrackingRecord) error
	GetOpenByUserID(ctx context.Context, userID int64) (*entities.TimeTrackingRecord, error)
	// Close writes the logout fields only while the record is still open.
	Close(ctx context.Context, record *entities.TimeTrackingRecord) error
	ListByUserID(ctx context.Context, userID int64, skip, limit int) ([]*entities.TimeTrackingRecord, int64, error)
	List(ctx context.Context, skip, limit int) ([]*entities.TimeTrackingRecord, int64, error)
}
