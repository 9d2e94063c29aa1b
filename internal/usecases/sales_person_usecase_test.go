package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crm-admin.backend/internal/domain/entities"
	domainerrors "crm-admin.backend/internal/domain/errors"
	"crm-admin.backend/internal/usecases"
	"crm-admin.backend/pkg/utils"
)

type salesPersonFixture struct {
	uc       *usecases.SalesPersonUsecase
	uow      *MockUnitOfWork
	users    *MockUserRepository
	profiles *MockSalesPersonProfileRepository
	roles    *MockRoleRepository
	mailer   *MockMailer
}

func newSalesPersonFixture(t *testing.T) *salesPersonFixture {
	f := &salesPersonFixture{
		uow:      new(MockUnitOfWork),
		users:    new(MockUserRepository),
		profiles: new(MockSalesPersonProfileRepository),
		roles:    new(MockRoleRepository),
		mailer:   new(MockMailer),
	}
	f.uc = usecases.NewSalesPersonUsecase(
		f.uow,
		f.users,
		f.profiles,
		usecases.NewRoleRegistry(f.roles),
		newTestCredentials(t),
		usecases.NewNotifier(f.mailer, ""),
	)
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	return f
}

func TestSalesPersonUsecase_CreateProfile(t *testing.T) {
	f := newSalesPersonFixture(t)
	ctx := context.Background()

	f.users.On("GetByID", ctx, int64(50)).Return(&entities.User{ID: 50}, nil)
	f.roles.On("GetUserRole", ctx, int64(50)).Return(userRole(50, entities.RoleSalesPerson), nil)
	f.profiles.On("GetByUserID", ctx, int64(50)).Return(nil, domainerrors.ErrNotFound).Once()
	f.profiles.On("Create", ctx, mock.AnythingOfType("*entities.SalesPersonProfile")).Run(func(args mock.Arguments) {
		args.Get(1).(*entities.SalesPersonProfile).ID = 5
	}).Return(nil).Once()

	profile, err := f.uc.CreateProfile(ctx, &entities.CreateSalesPersonProfileInput{UserID: 50, City: " Pune ", Gender: entities.GenderMale})
	require.NoError(t, err)
	assert.Equal(t, int64(5), profile.ID)
	assert.Equal(t, "Pune", profile.City)

	f.profiles.On("GetByUserID", ctx, int64(50)).Return(&entities.SalesPersonProfile{ID: 5}, nil).Once()
	_, err = f.uc.CreateProfile(ctx, &entities.CreateSalesPersonProfileInput{UserID: 50})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestSalesPersonUsecase_CreateProfileRequiresSalesPerson(t *testing.T) {
	f := newSalesPersonFixture(t)
	ctx := context.Background()

	f.users.On("GetByID", ctx, int64(20)).Return(&entities.User{ID: 20}, nil)
	f.roles.On("GetUserRole", ctx, int64(20)).Return(userRole(20, entities.RoleAdmin), nil)
	f.users.On("GetByID", ctx, int64(404)).Return(nil, domainerrors.ErrNotFound)

	_, err := f.uc.CreateProfile(ctx, &entities.CreateSalesPersonProfileInput{UserID: 20})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOperation)

	_, err = f.uc.CreateProfile(ctx, &entities.CreateSalesPersonProfileInput{UserID: 404})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestSalesPersonUsecase_Lists(t *testing.T) {
	f := newSalesPersonFixture(t)
	ctx := context.Background()
	page := utils.GetPaginationParams(0, 0)

	blocked, unblocked := true, false
	f.profiles.On("List", ctx, entities.ListFilter{Blocked: &unblocked, Limit: 10}).Return([]*entities.SalesPersonView{{FullName: "A"}}, int64(1), nil).Once()
	f.profiles.On("List", ctx, entities.ListFilter{Blocked: &blocked, Limit: 10}).Return([]*entities.SalesPersonView{}, int64(0), nil).Once()
	f.profiles.On("ListTeam", ctx, int64(50), 0, 10).Return([]*entities.SalesPersonView{{FullName: "B"}, {FullName: "C"}}, int64(2), nil).Once()

	views, meta, err := f.uc.List(ctx, page)
	require.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Equal(t, int64(1), meta.Count)

	views, _, err = f.uc.ListBlocked(ctx, page)
	require.NoError(t, err)
	assert.Empty(t, views)

	views, meta, err = f.uc.TeamMembers(ctx, 50, page)
	require.NoError(t, err)
	assert.Equal(t, 2, meta.DataCount)
	assert.Len(t, views, 2)
}

func TestSalesPersonUsecase_Update(t *testing.T) {
	f := newSalesPersonFixture(t)
	ctx := context.Background()

	f.profiles.On("GetByID", ctx, int64(5)).Return(&entities.SalesPersonProfile{ID: 5, UserID: 50}, nil)
	f.users.On("UpdateFullName", ctx, int64(50), "New Name").Return(nil).Once()
	f.profiles.On("Update", ctx, int64(5), map[string]interface{}{"city": "Pune"}).Return(nil).Once()
	f.profiles.On("GetView", ctx, int64(5)).Return(&entities.SalesPersonView{FullName: "New Name"}, nil).Once()

	view, err := f.uc.Update(ctx, 5, &entities.SalesPersonPatch{FullName: strPtr(" New Name "), City: strPtr("Pune")})
	require.NoError(t, err)
	assert.Equal(t, "New Name", view.FullName)
	f.uow.AssertNumberOfCalls(t, "Do", 1)
}

func TestSalesPersonUsecase_UpdateRejects(t *testing.T) {
	f := newSalesPersonFixture(t)
	ctx := context.Background()

	_, err := f.uc.Update(ctx, 5, &entities.SalesPersonPatch{})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	bad := entities.Gender(7)
	_, err = f.uc.Update(ctx, 5, &entities.SalesPersonPatch{Gender: &bad})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	f.profiles.On("GetByID", ctx, int64(404)).Return(nil, domainerrors.ErrNotFound)
	_, err = f.uc.Update(ctx, 404, &entities.SalesPersonPatch{City: strPtr("Pune")})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestSalesPersonUsecase_ResetPassword(t *testing.T) {
	f := newSalesPersonFixture(t)
	ctx := context.Background()

	f.profiles.On("GetByID", ctx, int64(5)).Return(&entities.SalesPersonProfile{ID: 5, UserID: 50}, nil)
	f.users.On("GetByID", ctx, int64(50)).Return(&entities.User{ID: 50, Email: "sp@x.com", PasswordHash: "old"}, nil)
	f.users.On("UpdatePassword", ctx, int64(50), mock.MatchedBy(func(h string) bool { return h != "old" && h != "" })).Return(nil).Once()
	f.mailer.On("Send", ctx, mock.MatchedBy(func(m *entities.MailMessage) bool {
		return m.ToEmail == "sp@x.com"
	})).Return(errors.New("mail down")).Once()

	require.NoError(t, f.uc.ResetPassword(ctx, 5))
	f.users.AssertExpectations(t)
	f.mailer.AssertExpectations(t)
}

func TestSalesPersonUsecase_SelfProfile(t *testing.T) {
	f := newSalesPersonFixture(t)
	ctx := context.Background()

	f.profiles.On("GetByUserID", ctx, int64(50)).Return(&entities.SalesPersonProfile{ID: 5, UserID: 50}, nil).Once()
	f.profiles.On("GetView", ctx, int64(5)).Return(&entities.SalesPersonView{Email: "sp@x.com"}, nil).Once()
	f.profiles.On("GetByUserID", ctx, int64(51)).Return(nil, domainerrors.ErrNotFound).Once()

	view, err := f.uc.SelfProfile(ctx, 50)
	require.NoError(t, err)
	assert.Equal(t, "sp@x.com", view.Email)

	_, err = f.uc.SelfProfile(ctx, 51)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
