package usecases

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"crm-admin.backend/internal/domain/entities"
	domainerrors "crm-admin.backend/internal/domain/errors"
	"crm-admin.backend/internal/domain/repositories"
	"crm-admin.backend/pkg/logger"
	"crm-admin.backend/pkg/utils"
)

// AdminUsecase manages admin profiles
type AdminUsecase struct {
	uow         repositories.UnitOfWork
	userRepo    repositories.UserRepository
	profileRepo repositories.AdminProfileRepository
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	uow repositories.UnitOfWork,
	userRepo repositories.UserRepository,
	profileRepo repositories.AdminProfileRepository,
) *AdminUsecase {
	return &AdminUsecase{
		uow:         uow,
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// List returns unblocked admins
func (u *AdminUsecase) List(ctx context.Context, p utils.PaginationParams) ([]*entities.AdminView, utils.PaginationMeta, error) {
	return u.list(ctx, false, p)
}

// ListBlocked returns blocked admins
func (u *AdminUsecase) ListBlocked(ctx context.Context, p utils.PaginationParams) ([]*entities.AdminView, utils.PaginationMeta, error) {
	return u.list(ctx, true, p)
}

func (u *AdminUsecase) list(ctx context.Context, blocked bool, p utils.PaginationParams) ([]*entities.AdminView, utils.PaginationMeta, error) {
	views, total, err := u.profileRepo.List(ctx, entities.ListFilter{Blocked: &blocked, Skip: p.Skip, Limit: p.Limit})
	if err != nil {
		return nil, utils.PaginationMeta{}, domainerrors.InternalError(err)
	}
	return views, utils.CalculateMeta(total, p, len(views)), nil
}

// Get returns one admin by profile id
func (u *AdminUsecase) Get(ctx context.Context, profileID int64) (*entities.AdminView, error) {
	view, err := u.profileRepo.GetView(ctx, profileID)
	if err != nil {
		return nil, profileLookupError(err, "Admin not found")
	}
	return view, nil
}

// SelfProfile returns the caller's own admin profile
func (u *AdminUsecase) SelfProfile(ctx context.Context, userID int64) (*entities.AdminView, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, profileLookupError(err, "Admin profile not found")
	}
	return u.Get(ctx, profile.ID)
}

// Update applies patch to the admin and its user in one transaction
func (u *AdminUsecase) Update(ctx context.Context, profileID int64, patch *entities.AdminProfilePatch) (*entities.AdminView, error) {
	if patch.IsEmpty() {
		return nil, domainerrors.InvalidInput("Nothing to update")
	}
	if patch.Gender != nil && !patch.Gender.IsValid() {
		return nil, domainerrors.InvalidInput("gender: must be 1, 2 or 3.")
	}
	if patch.FullName != nil && strings.TrimSpace(*patch.FullName) == "" {
		return nil, domainerrors.InvalidInput("full_name: cannot be blank.")
	}

	profile, err := u.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, profileLookupError(err, "Admin not found")
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if patch.FullName != nil {
			if err := u.userRepo.UpdateFullName(ctx, profile.UserID, strings.TrimSpace(*patch.FullName)); err != nil {
				return err
			}
		}
		if fields := patch.ProfileFields(); len(fields) > 0 {
			return u.profileRepo.Update(ctx, profile.ID, fields)
		}
		return nil
	})
	if err != nil {
		return nil, profileLookupError(err, "Admin not found")
	}

	logger.Info(ctx, "Admin profile updated", zap.Int64("profile_id", profile.ID))
	return u.Get(ctx, profile.ID)
}
