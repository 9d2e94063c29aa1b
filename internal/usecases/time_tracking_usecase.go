package usecases

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"crm-admin.backend/internal/domain/entities"
	domainerrors "crm-admin.backend/internal/domain/errors"
	"crm-admin.backend/internal/domain/repositories"
	"crm-admin.backend/pkg/logger"
	"crm-admin.backend/pkg/metrics"
	redispkg "crm-admin.backend/pkg/redis"
	"crm-admin.backend/pkg/utils"
)

// KeyedLocker serializes work per key
type KeyedLocker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// TimeTrackingUsecase opens and closes sales person login sessions
type TimeTrackingUsecase struct {
	repo   repositories.TimeTrackingRepository
	locker KeyedLocker
	policy DurationPolicy
	now    func() time.Time
}

// NewTimeTrackingUsecase creates a new time tracking usecase. A nil locker
// relies on the store's open session index alone.
func NewTimeTrackingUsecase(repo repositories.TimeTrackingRepository, locker KeyedLocker, policy DurationPolicy) *TimeTrackingUsecase {
	return &TimeTrackingUsecase{
		repo:   repo,
		locker: locker,
		policy: policy,
		now:    time.Now,
	}
}

// SetClock overrides the time source
func (u *TimeTrackingUsecase) SetClock(now func() time.Time) {
	u.now = now
}

// Start opens a session. A second open session is a conflict.
func (u *TimeTrackingUsecase) Start(ctx context.Context, userID int64) (*entities.TimeTrackingRecord, error) {
	var record *entities.TimeTrackingRecord
	err := u.withUserLock(ctx, userID, func(ctx context.Context) error {
		if _, err := u.repo.GetOpenByUserID(ctx, userID); err == nil {
			return domainerrors.Conflict("Time tracking already started")
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.InternalError(err)
		}

		now := u.now()
		record = &entities.TimeTrackingRecord{
			UserID:    userID,
			Date:      entities.NewDate(now.In(u.location())).Time,
			LogInTime: now,
			Active:    entities.SessionActive,
		}
		if err := u.repo.Create(ctx, record); err != nil {
			if errors.Is(err, domainerrors.ErrAlreadyExists) {
				return domainerrors.Conflict("Time tracking already started")
			}
			return domainerrors.InternalError(err)
		}
		return nil
	})

	metrics.IncTimeTracking("start", metrics.Outcome(err))
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "Time tracking started", zap.Int64("user_id", userID), zap.Int64("record_id", record.ID))
	return record, nil
}

// End closes the open session of userID
func (u *TimeTrackingUsecase) End(ctx context.Context, userID int64) (*entities.TimeTrackingRecord, error) {
	var record *entities.TimeTrackingRecord
	err := u.withUserLock(ctx, userID, func(ctx context.Context) error {
		open, err := u.repo.GetOpenByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("No active time tracking found")
			}
			return domainerrors.InternalError(err)
		}

		logout, active := u.policy.Apply(open.LogInTime, u.now())
		open.LogOutTime = null.TimeFrom(logout)
		open.ActiveLoginTime = null.StringFrom(FormatDuration(active))
		open.Active = entities.SessionInactive

		if err := u.repo.Close(ctx, open); err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("No active time tracking found")
			}
			return domainerrors.InternalError(err)
		}
		record = open
		return nil
	})

	metrics.IncTimeTracking("end", metrics.Outcome(err))
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "Time tracking ended",
		zap.Int64("user_id", userID),
		zap.Int64("record_id", record.ID),
		zap.String("active_login_time", record.ActiveLoginTime.String),
	)
	return record, nil
}

// ListForUser returns one user's sessions, newest first
func (u *TimeTrackingUsecase) ListForUser(ctx context.Context, userID int64, p utils.PaginationParams) ([]*entities.TimeTrackingRecord, utils.PaginationMeta, error) {
	records, total, err := u.repo.ListByUserID(ctx, userID, p.Skip, p.Limit)
	if err != nil {
		return nil, utils.PaginationMeta{}, domainerrors.InternalError(err)
	}
	return records, utils.CalculateMeta(total, p, len(records)), nil
}

// ListAll returns every session, newest first
func (u *TimeTrackingUsecase) ListAll(ctx context.Context, p utils.PaginationParams) ([]*entities.TimeTrackingRecord, utils.PaginationMeta, error) {
	records, total, err := u.repo.List(ctx, p.Skip, p.Limit)
	if err != nil {
		return nil, utils.PaginationMeta{}, domainerrors.InternalError(err)
	}
	return records, utils.CalculateMeta(total, p, len(records)), nil
}

func (u *TimeTrackingUsecase) withUserLock(ctx context.Context, userID int64, fn func(ctx context.Context) error) error {
	if u.locker == nil {
		return fn(ctx)
	}
	err := u.locker.WithLock(ctx, timeTrackingLockPrefix+strconv.FormatInt(userID, 10), fn)
	if errors.Is(err, redispkg.ErrLockHeld) {
		return domainerrors.Conflict("Time tracking request already in progress")
	}
	var appErr *domainerrors.AppError
	if err != nil && !errors.As(err, &appErr) {
		return domainerrors.InternalError(err)
	}
	return err
}

func (u *TimeTrackingUsecase) location() *time.Location {
	if u.policy.Location != nil {
		return u.policy.Location
	}
	return time.UTC
}
