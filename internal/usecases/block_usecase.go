package usecases

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"crm-admin.backend/internal/domain/entities"
	domainerrors "crm-admin.backend/internal/domain/errors"
	"crm-admin.backend/internal/domain/repositories"
	"crm-admin.backend/pkg/logger"
	"crm-admin.backend/pkg/metrics"
)

// BlockUsecase blocks and unblocks sales persons and admins
type BlockUsecase struct {
	userRepo        repositories.UserRepository
	roles           *RoleRegistry
	salesPersonRepo repositories.SalesPersonProfileRepository
	adminRepo       repositories.AdminProfileRepository
}

// NewBlockUsecase creates a new block usecase
func NewBlockUsecase(
	userRepo repositories.UserRepository,
	roles *RoleRegistry,
	salesPersonRepo repositories.SalesPersonProfileRepository,
	adminRepo repositories.AdminProfileRepository,
) *BlockUsecase {
	return &BlockUsecase{
		userRepo:        userRepo,
		roles:           roles,
		salesPersonRepo: salesPersonRepo,
		adminRepo:       adminRepo,
	}
}

// BlockSalesPerson blocks the owner of a sales person profile
func (u *BlockUsecase) BlockSalesPerson(ctx context.Context, profileID int64) error {
	userID, err := u.salesPersonOwner(ctx, profileID)
	if err != nil {
		return u.record(ctx, true, entities.RoleSalesPerson, zap.Int64("profile_id", profileID), err)
	}
	return u.transition(ctx, userID, entities.RoleSalesPerson, true)
}

// UnblockSalesPerson unblocks the owner of a sales person profile
func (u *BlockUsecase) UnblockSalesPerson(ctx context.Context, profileID int64) error {
	userID, err := u.salesPersonOwner(ctx, profileID)
	if err != nil {
		return u.record(ctx, false, entities.RoleSalesPerson, zap.Int64("profile_id", profileID), err)
	}
	return u.transition(ctx, userID, entities.RoleSalesPerson, false)
}

// BlockAdmin blocks the owner of an admin profile
func (u *BlockUsecase) BlockAdmin(ctx context.Context, profileID int64) error {
	userID, err := u.adminOwner(ctx, profileID)
	if err != nil {
		return u.record(ctx, true, entities.RoleAdmin, zap.Int64("profile_id", profileID), err)
	}
	return u.transition(ctx, userID, entities.RoleAdmin, true)
}

// UnblockAdmin unblocks the owner of an admin profile
func (u *BlockUsecase) UnblockAdmin(ctx context.Context, profileID int64) error {
	userID, err := u.adminOwner(ctx, profileID)
	if err != nil {
		return u.record(ctx, false, entities.RoleAdmin, zap.Int64("profile_id", profileID), err)
	}
	return u.transition(ctx, userID, entities.RoleAdmin, false)
}

func (u *BlockUsecase) salesPersonOwner(ctx context.Context, profileID int64) (int64, error) {
	profile, err := u.salesPersonRepo.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return 0, domainerrors.NotFound("Sales person not found")
		}
		return 0, domainerrors.InternalError(err)
	}
	return profile.UserID, nil
}

func (u *BlockUsecase) adminOwner(ctx context.Context, profileID int64) (int64, error) {
	profile, err := u.adminRepo.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return 0, domainerrors.NotFound("Admin not found")
		}
		return 0, domainerrors.InternalError(err)
	}
	return profile.UserID, nil
}

// transition moves userID into the target blocked state. Super admins are
// rejected before the expected role is compared.
func (u *BlockUsecase) transition(ctx context.Context, userID int64, expected entities.RoleID, target bool) error {
	err := u.apply(ctx, userID, expected, target)
	return u.record(ctx, target, expected, zap.Int64("user_id", userID), err)
}

func (u *BlockUsecase) apply(ctx context.Context, userID int64, expected entities.RoleID, target bool) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("User not found")
		}
		return domainerrors.InternalError(err)
	}
	if user.Deleted {
		return domainerrors.NotFound("User not found")
	}

	role, ok, err := u.roles.RoleOf(ctx, userID)
	if err != nil {
		return domainerrors.InternalError(err)
	}
	if !ok {
		return domainerrors.NotFound("Role not assigned")
	}

	if role == entities.RoleSuperAdmin {
		if target {
			return domainerrors.Forbidden("Can not block super admin")
		}
		return domainerrors.Forbidden("Can not unblock super admin")
	}
	if role != expected {
		if expected == entities.RoleAdmin {
			return domainerrors.InvalidOperation("User is not an admin")
		}
		return domainerrors.InvalidOperation("User is not a sales person")
	}

	if user.Blocked == target {
		return alreadyInState(target)
	}
	if err := u.userRepo.SetBlocked(ctx, userID, target); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return alreadyInState(target)
		}
		return domainerrors.InternalError(err)
	}
	return nil
}

func alreadyInState(blocked bool) error {
	if blocked {
		return domainerrors.Conflict("User is already blocked")
	}
	return domainerrors.Conflict("User is not blocked")
}

func (u *BlockUsecase) record(ctx context.Context, target bool, role entities.RoleID, subject zap.Field, err error) error {
	action := "unblock"
	if target {
		action = "block"
	}
	metrics.IncBlockTransition(action, role.String(), blockOutcome(err))
	if err != nil {
		logger.Warn(ctx, "Block transition rejected",
			zap.String("action", action),
			zap.String("role", role.String()),
			subject,
			zap.Error(err),
		)
		return err
	}
	logger.Info(ctx, "Block transition applied",
		zap.String("action", action),
		zap.String("role", role.String()),
		subject,
	)
	return nil
}

func blockOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domainerrors.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return "conflict"
	case errors.Is(err, domainerrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, domainerrors.ErrInvalidOperation):
		return "invalid_operation"
	}
	return "error"
}
