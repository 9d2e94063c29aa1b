package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"crm-admin.backend/internal/domain/entities"
	domainerrors "crm-admin.backend/internal/domain/errors"
	"crm-admin.backend/internal/domain/repositories"
	"crm-admin.backend/pkg/crypto"
	"crm-admin.backend/pkg/logger"
	"crm-admin.backend/pkg/utils"
)

// SalesPersonUsecase manages sales person profiles
type SalesPersonUsecase struct {
	uow         repositories.UnitOfWork
	userRepo    repositories.UserRepository
	profileRepo repositories.SalesPersonProfileRepository
	roles       *RoleRegistry
	credentials *crypto.CredentialService
	notifier    *Notifier
}

// NewSalesPersonUsecase creates a new sales person usecase
func NewSalesPersonUsecase(
	uow repositories.UnitOfWork,
	userRepo repositories.UserRepository,
	profileRepo repositories.SalesPersonProfileRepository,
	roles *RoleRegistry,
	credentials *crypto.CredentialService,
	notifier *Notifier,
) *SalesPersonUsecase {
	return &SalesPersonUsecase{
		uow:         uow,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		roles:       roles,
		credentials: credentials,
		notifier:    notifier,
	}
}

// CreateProfile creates the profile of a registered sales person
func (u *SalesPersonUsecase) CreateProfile(ctx context.Context, input *entities.CreateSalesPersonProfileInput) (*entities.SalesPersonProfile, error) {
	user, err := u.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, profileLookupError(err, "User not found")
	}
	if user.Deleted {
		return nil, domainerrors.NotFound("User not found")
	}

	isSalesPerson, err := u.roles.HasRole(ctx, user.ID, entities.RoleSalesPerson)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	if !isSalesPerson {
		return nil, domainerrors.InvalidOperation("User is not a sales person")
	}
	if input.Gender != 0 && !input.Gender.IsValid() {
		return nil, domainerrors.InvalidInput("gender: must be 1, 2 or 3.")
	}

	if _, err := u.profileRepo.GetByUserID(ctx, user.ID); err == nil {
		return nil, domainerrors.Conflict("Sales person profile already exists")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.InternalError(err)
	}

	profile := &entities.SalesPersonProfile{
		UserID:      user.ID,
		Gender:      input.Gender,
		Address1:    strings.TrimSpace(input.Address1),
		Address2:    strings.TrimSpace(input.Address2),
		City:        strings.TrimSpace(input.City),
		District:    strings.TrimSpace(input.District),
		State:       strings.TrimSpace(input.State),
		Country:     strings.TrimSpace(input.Country),
		PostalCode:  strings.TrimSpace(input.PostalCode),
		Designation: strings.TrimSpace(input.Designation),
	}
	if dob := input.DOB.Ptr(); dob != nil {
		profile.DOB = null.TimeFrom(*dob)
	}

	if err := u.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("Sales person profile already exists")
		}
		return nil, domainerrors.InternalError(err)
	}

	logger.Info(ctx, "Sales person profile created", zap.Int64("user_id", user.ID), zap.Int64("profile_id", profile.ID))
	return profile, nil
}

// List returns unblocked sales persons
func (u *SalesPersonUsecase) List(ctx context.Context, p utils.PaginationParams) ([]*entities.SalesPersonView, utils.PaginationMeta, error) {
	return u.list(ctx, false, p)
}

// ListBlocked returns blocked sales persons
func (u *SalesPersonUsecase) ListBlocked(ctx context.Context, p utils.PaginationParams) ([]*entities.SalesPersonView, utils.PaginationMeta, error) {
	return u.list(ctx, true, p)
}

func (u *SalesPersonUsecase) list(ctx context.Context, blocked bool, p utils.PaginationParams) ([]*entities.SalesPersonView, utils.PaginationMeta, error) {
	views, total, err := u.profileRepo.List(ctx, entities.ListFilter{Blocked: &blocked, Skip: p.Skip, Limit: p.Limit})
	if err != nil {
		return nil, utils.PaginationMeta{}, domainerrors.InternalError(err)
	}
	return views, utils.CalculateMeta(total, p, len(views)), nil
}

// Get returns one sales person by profile id
func (u *SalesPersonUsecase) Get(ctx context.Context, profileID int64) (*entities.SalesPersonView, error) {
	view, err := u.profileRepo.GetView(ctx, profileID)
	if err != nil {
		return nil, profileLookupError(err, "Sales person not found")
	}
	return view, nil
}

// SelfProfile returns the caller's own sales person profile
func (u *SalesPersonUsecase) SelfProfile(ctx context.Context, userID int64) (*entities.SalesPersonView, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, profileLookupError(err, "Sales person profile not found")
	}
	return u.Get(ctx, profile.ID)
}

// TeamMembers returns every other sales person
func (u *SalesPersonUsecase) TeamMembers(ctx context.Context, userID int64, p utils.PaginationParams) ([]*entities.SalesPersonView, utils.PaginationMeta, error) {
	views, total, err := u.profileRepo.ListTeam(ctx, userID, p.Skip, p.Limit)
	if err != nil {
		return nil, utils.PaginationMeta{}, domainerrors.InternalError(err)
	}
	return views, utils.CalculateMeta(total, p, len(views)), nil
}

// Update applies patch. full_name lands on the user, the rest on the profile,
// both in one transaction.
func (u *SalesPersonUsecase) Update(ctx context.Context, profileID int64, patch *entities.SalesPersonPatch) (*entities.SalesPersonView, error) {
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
		return nil, profileLookupError(err, "Sales person not found")
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
		return nil, profileLookupError(err, "Sales person not found")
	}

	logger.Info(ctx, "Sales person profile updated", zap.Int64("profile_id", profile.ID))
	return u.Get(ctx, profile.ID)
}

// ResetPassword issues a new generated password and mails it
func (u *SalesPersonUsecase) ResetPassword(ctx context.Context, profileID int64) error {
	profile, err := u.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return profileLookupError(err, "Sales person not found")
	}
	user, err := u.userRepo.GetByID(ctx, profile.UserID)
	if err != nil {
		return profileLookupError(err, "User not found")
	}

	password, err := u.credentials.GeneratePassword()
	if err != nil {
		return domainerrors.InternalError(err)
	}
	hash, err := u.credentials.HashPassword(password)
	if err != nil {
		return domainerrors.InternalError(err)
	}
	if err := u.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return profileLookupError(err, "User not found")
	}

	u.notifier.SendPasswordReset(ctx, user, password)
	logger.Info(ctx, "Sales person password reset", zap.Int64("user_id", user.ID))
	return nil
}
