package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"crm-admin.backend/internal/domain/entities"
	domainerrors "crm-admin.backend/internal/domain/errors"
	"crm-admin.backend/internal/domain/repositories"
	"crm-admin.backend/pkg/crypto"
	"crm-admin.backend/pkg/logger"
	"crm-admin.backend/pkg/utils"
)

// RegistrationUsecase creates users together with their role
type RegistrationUsecase struct {
	uow         repositories.UnitOfWork
	userRepo    repositories.UserRepository
	adminRepo   repositories.AdminProfileRepository
	roles       *RoleRegistry
	credentials *crypto.CredentialService
	notifier    *Notifier
}

// NewRegistrationUsecase creates a new registration usecase
func NewRegistrationUsecase(
	uow repositories.UnitOfWork,
	userRepo repositories.UserRepository,
	adminRepo repositories.AdminProfileRepository,
	roles *RoleRegistry,
	credentials *crypto.CredentialService,
	notifier *Notifier,
) *RegistrationUsecase {
	return &RegistrationUsecase{
		uow:         uow,
		userRepo:    userRepo,
		adminRepo:   adminRepo,
		roles:       roles,
		credentials: credentials,
		notifier:    notifier,
	}
}

// RegisterSalesPerson creates a sales person with a generated password and
// mails it to them
func (u *RegistrationUsecase) RegisterSalesPerson(ctx context.Context, input *entities.RegisterUserInput) (*entities.User, error) {
	if input.RoleID != entities.RoleSalesPerson {
		return nil, domainerrors.InvalidOperation("Role must be sales person")
	}

	password, err := u.credentials.GeneratePassword()
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	user, err := u.register(ctx, input, password, nil)
	if err != nil {
		return nil, err
	}

	u.notifier.SendWelcome(ctx, user, password)
	logger.Info(ctx, "Sales person registered", zap.Int64("user_id", user.ID))
	return user, nil
}

// RegisterAdmin creates an admin with the chosen password and its profile
func (u *RegistrationUsecase) RegisterAdmin(ctx context.Context, input *entities.RegisterAdminInput) (*entities.User, *entities.AdminProfile, error) {
	if input.RoleID != entities.RoleAdmin {
		return nil, nil, domainerrors.InvalidOperation("Role must be admin")
	}
	if err := crypto.ValidatePassword(input.Password); err != nil {
		return nil, nil, domainerrors.InvalidInput(err.Error())
	}
	if !input.Gender.IsValid() {
		return nil, nil, domainerrors.InvalidInput("gender: must be 1, 2 or 3.")
	}

	profile := &entities.AdminProfile{
		Gender: input.Gender,
	}
	if dob := input.DOB.Ptr(); dob != nil {
		profile.DOB = null.TimeFrom(*dob)
	}

	user, err := u.register(ctx, &input.RegisterUserInput, input.Password, func(ctx context.Context, user *entities.User) error {
		profile.UserID = user.ID
		return u.adminRepo.Create(ctx, profile)
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Info(ctx, "Admin registered", zap.Int64("user_id", user.ID), zap.Int64("profile_id", profile.ID))
	return user, profile, nil
}

// RegisterSuperAdmin creates a super admin with the chosen password
func (u *RegistrationUsecase) RegisterSuperAdmin(ctx context.Context, input *entities.RegisterUserInput, password string) (*entities.User, error) {
	input.RoleID = entities.RoleSuperAdmin
	if err := crypto.ValidatePassword(password); err != nil {
		return nil, domainerrors.InvalidInput(err.Error())
	}
	user, err := u.register(ctx, input, password, nil)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "Super admin registered", zap.Int64("user_id", user.ID))
	return user, nil
}

// register validates input, checks uniqueness and writes the user, its role
// and any extra records in one transaction.
func (u *RegistrationUsecase) register(
	ctx context.Context,
	input *entities.RegisterUserInput,
	password string,
	extra func(ctx context.Context, user *entities.User) error,
) (*entities.User, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = entities.NormalizeEmail(input.Email)
	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	phone, err := utils.NormalizePhoneNumber(input.PhoneNumber, input.CountryCode)
	if err != nil {
		return nil, domainerrors.InvalidInput("Invalid phone number")
	}

	if err := u.ensureUnique(ctx, input.Email, phone); err != nil {
		return nil, err
	}

	hash, err := u.credentials.HashPassword(password)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	referral, err := u.credentials.ReferralCode(phone)
	if err != nil {
		return nil, domainerrors.InvalidInput("Invalid phone number")
	}

	now := time.Now()
	user := &entities.User{
		FullName:     input.FullName,
		Email:        input.Email,
		PhoneNumber:  phone,
		PasswordHash: hash,
		ReferralCode: referral,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if ref := strings.TrimSpace(input.ReferredBy); ref != "" {
		user.ReferredBy = null.StringFrom(ref)
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.userRepo.Create(ctx, user); err != nil {
			return err
		}
		if err := u.roles.Assign(ctx, user.ID, input.RoleID); err != nil {
			return err
		}
		if extra != nil {
			return extra(ctx, user)
		}
		return nil
	})
	if err != nil {
		var appErr *domainerrors.AppError
		switch {
		case errors.As(err, &appErr):
			return nil, appErr
		case errors.Is(err, domainerrors.ErrAlreadyExists):
			return nil, domainerrors.Conflict("User already registered")
		}
		return nil, domainerrors.InternalError(err)
	}
	return user, nil
}

func (u *RegistrationUsecase) ensureUnique(ctx context.Context, email, phone string) error {
	if _, err := u.userRepo.GetByEmail(ctx, email); err == nil {
		return domainerrors.Conflict("Email already registered")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.InternalError(err)
	}

	if _, err := u.userRepo.GetByPhone(ctx, phone); err == nil {
		return domainerrors.Conflict("Phone number already registered")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.InternalError(err)
	}
	return nil
}

func validateRegistration(in *entities.RegisterUserInput) error {
	err := validation.ValidateStruct(in,
		validation.Field(&in.FullName, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&in.PhoneNumber, validation.Required, validation.Length(4, 20)),
		validation.Field(&in.ReferredBy, validation.Length(0, 10)),
	)
	if err != nil {
		return domainerrors.InvalidInput(err.Error())
	}
	return nil
}
