package user

import (
	"context"
	"errors"
	"testing"

	"github.com/bankass/awards-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- mocks ---

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Put(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserStore) ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error) {
	args := m.Called(ctx, limit, cursor)
	return args.Get(0).([]domain.User), args.String(1), args.Error(2)
}
func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}
func (m *mockUserStore) SoftDelete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *mockUserStore) CountByDeviceID(ctx context.Context, deviceID string) (int, error) {
	args := m.Called(ctx, deviceID)
	return args.Int(0), args.Error(1)
}
func (m *mockUserStore) CountByRegistrationIP(ctx context.Context, ip string) (int, error) {
	args := m.Called(ctx, ip)
	return args.Int(0), args.Error(1)
}

type mockSessionStore struct{ mock.Mock }

func (m *mockSessionStore) SoftDeleteByUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockRegistrationStore struct{ mock.Mock }

func (m *mockRegistrationStore) Put(ctx context.Context, d *domain.DeviceRegistration) error {
	return m.Called(ctx, d).Error(0)
}

// --- helpers ---

func newService(us *mockUserStore, ss *mockSessionStore, rs *mockRegistrationStore) Service {
	deps := ServiceDeps{UserRepo: us, SessionRepo: ss}
	if rs != nil {
		deps.RegistrationRepo = rs
	}
	return NewService(deps)
}

func ptr[T any](v T) *T { return &v }

func baseReq() domain.CreateUserRequest {
	return domain.CreateUserRequest{
		Name:     "Alice Smith",
		Email:    "alice@example.com",
		Password: "password123",
		DeviceID: ptr("dev-1"),
	}
}

func baseMeta() RequestMeta {
	return RequestMeta{IPAddress: "203.0.113.9", UserAgent: "test-agent"}
}

// --- Register tests ---

func TestRegister_EmailConflict(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{}, nil)

	svc := newService(us, nil, nil)
	_, err := svc.Register(context.Background(), baseReq(), baseMeta())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	us.AssertExpectations(t)
}

func TestRegister_DeviceLimitReached(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	us.On("CountByDeviceID", mock.Anything, "dev-1").Return(1, nil)
	us.On("CountByRegistrationIP", mock.Anything, "203.0.113.9").Return(0, nil)

	svc := newService(us, nil, nil)
	_, err := svc.Register(context.Background(), baseReq(), baseMeta())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrLimitReached))
	us.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestRegister_IPLimitReached(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	us.On("CountByDeviceID", mock.Anything, "dev-1").Return(0, nil)
	us.On("CountByRegistrationIP", mock.Anything, "203.0.113.9").Return(3, nil)

	svc := newService(us, nil, nil)
	_, err := svc.Register(context.Background(), baseReq(), baseMeta())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrLimitReached))
}

func TestRegister_GuardFailsOpenOnLookupError(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	us.On("CountByDeviceID", mock.Anything, "dev-1").Return(0, errors.New("index offline"))
	us.On("CountByRegistrationIP", mock.Anything, "203.0.113.9").Return(0, errors.New("index offline"))
	us.On("Put", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	svc := newService(us, nil, nil)
	u, err := svc.Register(context.Background(), baseReq(), baseMeta())

	require.NoError(t, err)
	assert.Equal(t, domain.RoleVoter, u.Role)
	us.AssertExpectations(t)
}

func TestRegister_NoDeviceFingerprintSkipsDeviceCount(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	us.On("CountByRegistrationIP", mock.Anything, "203.0.113.9").Return(0, nil)
	us.On("Put", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	svc := newService(us, nil, nil)
	req := baseReq()
	req.DeviceID = nil
	_, err := svc.Register(context.Background(), req, baseMeta())

	require.NoError(t, err)
	us.AssertNotCalled(t, "CountByDeviceID", mock.Anything, mock.Anything)
}

func TestRegister_HappyPath(t *testing.T) {
	us := &mockUserStore{}
	rs := &mockRegistrationStore{}
	us.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, domain.ErrNotFound)
	us.On("CountByDeviceID", mock.Anything, "dev-1").Return(0, nil)
	us.On("CountByRegistrationIP", mock.Anything, "203.0.113.9").Return(0, nil)

	var created *domain.User
	us.On("Put", mock.Anything, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
		created = args.Get(1).(*domain.User)
	}).Return(nil)
	rs.On("Put", mock.Anything, mock.AnythingOfType("*domain.DeviceRegistration")).Return(nil)

	svc := newService(us, nil, rs)
	u, err := svc.Register(context.Background(), baseReq(), baseMeta())

	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", u.Name)
	assert.Equal(t, domain.RoleVoter, u.Role)
	assert.False(t, u.EmailVerified)
	assert.Equal(t, 1, u.Enable)
	assert.Equal(t, "dev-1", u.DeviceID)
	assert.Equal(t, "203.0.113.9", u.RegistrationIP)

	require.NotNil(t, created)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("password123")))
	rs.AssertExpectations(t)
}

func TestRegister_AuditFailureIsSwallowed(t *testing.T) {
	us := &mockUserStore{}
	rs := &mockRegistrationStore{}
	us.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	us.On("CountByDeviceID", mock.Anything, mock.Anything).Return(0, nil)
	us.On("CountByRegistrationIP", mock.Anything, mock.Anything).Return(0, nil)
	us.On("Put", mock.Anything, mock.Anything).Return(nil)
	rs.On("Put", mock.Anything, mock.Anything).Return(errors.New("dynamo error"))

	svc := newService(us, nil, rs)
	_, err := svc.Register(context.Background(), baseReq(), baseMeta())

	require.NoError(t, err)
}

// --- Update tests ---

func TestUpdate_EmptyRequest_ReturnsExistingUser(t *testing.T) {
	us := &mockUserStore{}
	existing := &domain.User{UserID: "u1", Name: "Alice"}
	us.On("Get", mock.Anything, "u1").Return(existing, nil)

	svc := newService(us, nil, nil)
	u, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{})

	require.NoError(t, err)
	assert.Equal(t, existing, u)
	us.AssertExpectations(t)
}

func TestUpdate_InvalidRole(t *testing.T) {
	svc := newService(&mockUserStore{}, nil, nil)
	_, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{
		Role: ptr("superuser"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestUpdate_HappyPath(t *testing.T) {
	us := &mockUserStore{}
	updated := &domain.User{UserID: "u1", Name: "Bob"}
	us.On("Update", mock.Anything, "u1", map[string]interface{}{
		fieldName: "Bob",
		fieldRole: domain.RoleSuperAdmin,
	}).Return(nil)
	us.On("Get", mock.Anything, "u1").Return(updated, nil)

	svc := newService(us, nil, nil)
	u, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{
		Name: ptr("Bob"),
		Role: ptr(domain.RoleSuperAdmin),
	})

	require.NoError(t, err)
	assert.Equal(t, "Bob", u.Name)
	us.AssertExpectations(t)
}

// --- Delete tests ---

func TestDelete_PropagatesStoreError(t *testing.T) {
	us := &mockUserStore{}
	storeErr := errors.New("dynamo error")
	us.On("SoftDelete", mock.Anything, "u1").Return(storeErr)

	svc := newService(us, &mockSessionStore{}, nil)
	err := svc.Delete(context.Background(), "u1")

	require.Error(t, err)
	assert.Equal(t, storeErr, err)
	us.AssertExpectations(t)
}

func TestDelete_AlsoDeletesSessions(t *testing.T) {
	us := &mockUserStore{}
	ss := &mockSessionStore{}
	us.On("SoftDelete", mock.Anything, "u1").Return(nil)
	ss.On("SoftDeleteByUser", mock.Anything, "u1").Return(nil)

	svc := newService(us, ss, nil)
	err := svc.Delete(context.Background(), "u1")

	require.NoError(t, err)
	us.AssertExpectations(t)
	ss.AssertExpectations(t)
}

// --- ChangePassword tests ---

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	us := &mockUserStore{}
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	us.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", PasswordHash: string(hash)}, nil)

	svc := newService(us, nil, nil)
	err := svc.ChangePassword(context.Background(), "u1", "wrong", "newpassword1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	us.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangePassword_HappyPath(t *testing.T) {
	us := &mockUserStore{}
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	us.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", PasswordHash: string(hash)}, nil)
	us.On("Update", mock.Anything, "u1", mock.Anything).Return(nil)

	svc := newService(us, nil, nil)
	err := svc.ChangePassword(context.Background(), "u1", "correct-horse", "newpassword1")

	require.NoError(t, err)
	us.AssertExpectations(t)
}
