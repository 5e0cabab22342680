package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/bankass/awards-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotificationStore struct{ mock.Mock }

func (m *mockNotificationStore) Get(ctx context.Context, notificationID string) (*domain.Notification, error) {
	args := m.Called(ctx, notificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *mockNotificationStore) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *mockNotificationStore) MarkAsRead(ctx context.Context, notificationID string) error {
	args := m.Called(ctx, notificationID)
	return args.Error(0)
}

func TestListMine_PassesUnreadFilter(t *testing.T) {
	repo := new(mockNotificationStore)
	svc := NewService(ServiceDeps{NotificationRepo: repo})

	want := []domain.Notification{{NotificationID: "n1", UserID: "u1"}}
	repo.On("ListByUser", mock.Anything, "u1", true).Return(want, nil)

	got, err := svc.ListMine(context.Background(), "u1", true)

	require.NoError(t, err)
	assert.Equal(t, want, got)
	repo.AssertExpectations(t)
}

func TestMarkAsRead_OwnerOnly(t *testing.T) {
	repo := new(mockNotificationStore)
	svc := NewService(ServiceDeps{NotificationRepo: repo})

	repo.On("Get", mock.Anything, "n1").Return(&domain.Notification{NotificationID: "n1", UserID: "other"}, nil)

	err := svc.MarkAsRead(context.Background(), "u1", "n1")

	assert.True(t, errors.Is(err, domain.ErrForbidden))
	repo.AssertNotCalled(t, "MarkAsRead")
}

func TestMarkAsRead_UnknownNotification(t *testing.T) {
	repo := new(mockNotificationStore)
	svc := NewService(ServiceDeps{NotificationRepo: repo})

	repo.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	err := svc.MarkAsRead(context.Background(), "u1", "missing")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMarkAsRead_HappyPath(t *testing.T) {
	repo := new(mockNotificationStore)
	svc := NewService(ServiceDeps{NotificationRepo: repo})

	repo.On("Get", mock.Anything, "n1").Return(&domain.Notification{NotificationID: "n1", UserID: "u1"}, nil)
	repo.On("MarkAsRead", mock.Anything, "n1").Return(nil)

	require.NoError(t, svc.MarkAsRead(context.Background(), "u1", "n1"))
	repo.AssertExpectations(t)
}
