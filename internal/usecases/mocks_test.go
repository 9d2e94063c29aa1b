package usecases_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"crm-admin.backend/internal/domain/entities"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByPhone(ctx context.Context, phone string) (*entities.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) UpdateFullName(ctx context.Context, id int64, fullName string) error {
	args := m.Called(ctx, id, fullName)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	args := m.Called(ctx, id, blocked)
	return args.Error(0)
}

// Mock RoleRepository
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) GetRole(ctx context.Context, id entities.RoleID) (*entities.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Role), args.Error(1)
}

func (m *MockRoleRepository) GetUserRole(ctx context.Context, userID int64) (*entities.UserRole, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserRole), args.Error(1)
}

func (m *MockRoleRepository) Assign(ctx context.Context, userID int64, roleID entities.RoleID) error {
	args := m.Called(ctx, userID, roleID)
	return args.Error(0)
}

// Mock AdminProfileRepository
type MockAdminProfileRepository struct {
	mock.Mock
}

func (m *MockAdminProfileRepository) Create(ctx context.Context, profile *entities.AdminProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockAdminProfileRepository) GetByID(ctx context.Context, id int64) (*entities.AdminProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AdminProfile), args.Error(1)
}

func (m *MockAdminProfileRepository) GetByUserID(ctx context.Context, userID int64) (*entities.AdminProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AdminProfile), args.Error(1)
}

func (m *MockAdminProfileRepository) GetView(ctx context.Context, id int64) (*entities.AdminView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AdminView), args.Error(1)
}

func (m *MockAdminProfileRepository) List(ctx context.Context, filter entities.ListFilter) ([]*entities.AdminView, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.AdminView), args.Get(1).(int64), args.Error(2)
}

func (m *MockAdminProfileRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockAdminProfileRepository) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

func (m *MockAdminProfileRepository) SetProfileImage(ctx context.Context, id int64, blobID *string) error {
	args := m.Called(ctx, id, blobID)
	return args.Error(0)
}

// Mock SalesPersonProfileRepository
type MockSalesPersonProfileRepository struct {
	mock.Mock
}

func (m *MockSalesPersonProfileRepository) Create(ctx context.Context, profile *entities.SalesPersonProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockSalesPersonProfileRepository) GetByID(ctx context.Context, id int64) (*entities.SalesPersonProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SalesPersonProfile), args.Error(1)
}

func (m *MockSalesPersonProfileRepository) GetByUserID(ctx context.Context, userID int64) (*entities.SalesPersonProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SalesPersonProfile), args.Error(1)
}

func (m *MockSalesPersonProfileRepository) GetView(ctx context.Context, id int64) (*entities.SalesPersonView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SalesPersonView), args.Error(1)
}

func (m *MockSalesPersonProfileRepository) List(ctx context.Context, filter entities.ListFilter) ([]*entities.SalesPersonView, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.SalesPersonView), args.Get(1).(int64), args.Error(2)
}

func (m *MockSalesPersonProfileRepository) ListTeam(ctx context.Context, excludeUserID int64, skip, limit int) ([]*entities.SalesPersonView, int64, error) {
	args := m.Called(ctx, excludeUserID, skip, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.SalesPersonView), args.Get(1).(int64), args.Error(2)
}

func (m *MockSalesPersonProfileRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockSalesPersonProfileRepository) SetProfileImage(ctx context.Context, id int64, blobID *string) error {
	args := m.Called(ctx, id, blobID)
	return args.Error(0)
}

// Mock TimeTrackingRepository
type MockTimeTrackingRepository struct {
	mock.Mock
}

func (m *MockTimeTrackingRepository) Create(ctx context.Context, record *entities.TimeTrackingRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTimeTrackingRepository) GetOpenByUserID(ctx context.Context, userID int64) (*entities.TimeTrackingRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TimeTrackingRecord), args.Error(1)
}

func (m *MockTimeTrackingRepository) Close(ctx context.Context, record *entities.TimeTrackingRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTimeTrackingRepository) ListByUserID(ctx context.Context, userID int64, skip, limit int) ([]*entities.TimeTrackingRecord, int64, error) {
	args := m.Called(ctx, userID, skip, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.TimeTrackingRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockTimeTrackingRepository) List(ctx context.Context, skip, limit int) ([]*entities.TimeTrackingRecord, int64, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.TimeTrackingRecord), args.Get(1).(int64), args.Error(2)
}

// Mock BlobStore
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Put(ctx context.Context, category entities.BlobCategory, filename, contentType string, content []byte) (string, error) {
	args := m.Called(ctx, category, filename, contentType, content)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Get(ctx context.Context, category entities.BlobCategory, id string) (*entities.Blob, error) {
	args := m.Called(ctx, category, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Blob), args.Error(1)
}

func (m *MockBlobStore) Exists(ctx context.Context, category entities.BlobCategory, id string) (bool, error) {
	args := m.Called(ctx, category, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, category entities.BlobCategory, id string) error {
	args := m.Called(ctx, category, id)
	return args.Error(0)
}

// Mock Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg *entities.MailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// Mock KeyedLocker
type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, key)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}
