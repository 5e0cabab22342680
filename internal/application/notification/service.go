package notification

import (
	"context"
	"fmt"

	"github.com/bankass/awards-api/internal/domain"
)

type Service interface {
	ListMine(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, userID, notificationID string) error
}

type notificationStore interface {
	Get(ctx context.Context, notificationID string) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, notificationID string) error
}

type service struct {
	repo notificationStore
}

type ServiceDeps struct {
	NotificationRepo notificationStore
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.NotificationRepo}
}

func (s *service) ListMine(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID, unreadOnly)
}

// MarkAsRead flips the read flag; only the notification's owner may do so.
func (s *service) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	n, err := s.repo.Get(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return fmt.Errorf("notification belongs to another user: %w", domain.ErrForbidden)
	}
	return s.repo.MarkAsRead(ctx, notificationID)
}
