package broadcast

import (
	"context"
	"log/slog"
	"time"

	"github.com/bankass/awards-api/internal/domain"
	"github.com/bankass/awards-api/internal/pkg/id"
)

type Service interface {
	// Send stores the admin message and fans it out into per-user
	// notifications. It returns the message and how many notifications were
	// delivered.
	Send(ctx context.Context, req domain.BroadcastRequest) (*domain.AdminMessage, int, error)
	List(ctx context.Context) ([]domain.AdminMessage, error)
	// Delete removes the message and every notification it produced.
	Delete(ctx context.Context, messageID string) error
}

type messageStore interface {
	Put(ctx context.Context, m *domain.AdminMessage) error
	Get(ctx context.Context, messageID string) (*domain.AdminMessage, error)
	Scan(ctx context.Context) ([]domain.AdminMessage, error)
	HardDelete(ctx context.Context, messageID string) error
}

type notificationStore interface {
	Put(ctx context.Context, n *domain.Notification) error
	DeleteByAdminMessage(ctx context.Context, adminMessageID string) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	ScanAll(ctx context.Context) ([]domain.User, error)
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type service struct {
	messageRepo      messageStore
	notificationRepo notificationStore
	userRepo         userStore
	sms              smsSender
}

type ServiceDeps struct {
	MessageRepo      messageStore
	NotificationRepo notificationStore
	UserRepo         userStore
	// SMSSender is optional; when set, users with a phone number also get
	// the broadcast as a text message.
	SMSSender smsSender
}

func NewService(deps ServiceDeps) Service {
	return &service{
		messageRepo:      deps.MessageRepo,
		notificationRepo: deps.NotificationRepo,
		userRepo:         deps.UserRepo,
		sms:              deps.SMSSender,
	}
}

func (s *service) Send(ctx context.Context, req domain.BroadcastRequest) (*domain.AdminMessage, int, error) {
	msgType := req.Type
	if msgType == "" {
		msgType = domain.NotificationInfo
	}
	now := time.Now().UTC()
	msg := &domain.AdminMessage{
		MessageID:   id.New(),
		Title:       req.Title,
		Message:     req.Message,
		Type:        msgType,
		TargetUsers: req.TargetUsers,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.messageRepo.Put(ctx, msg); err != nil {
		return nil, 0, err
	}

	targets, err := s.resolveTargets(ctx, req.TargetUsers)
	if err != nil {
		return nil, 0, err
	}
	delivered := 0
	for _, u := range targets {
		n := &domain.Notification{
			NotificationID: id.New(),
			UserID:         u.UserID,
			Title:          req.Title,
			Message:        req.Message,
			Type:           msgType,
			AdminMessageID: &msg.MessageID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.notificationRepo.Put(ctx, n); err != nil {
			slog.Warn("deliver broadcast notification", "user_id", u.UserID, "message_id", msg.MessageID, "error", err)
			continue
		}
		delivered++
		if s.sms != nil && u.Phone != nil && *u.Phone != "" {
			if err := s.sms.SendSMS(ctx, *u.Phone, req.Title+": "+req.Message); err != nil {
				slog.Warn("send broadcast sms", "user_id", u.UserID, "error", err)
			}
		}
	}
	return msg, delivered, nil
}

func (s *service) resolveTargets(ctx context.Context, targetUsers []string) ([]domain.User, error) {
	if len(targetUsers) == 0 {
		return s.userRepo.ScanAll(ctx)
	}
	var targets []domain.User
	for _, userID := range targetUsers {
		u, err := s.userRepo.Get(ctx, userID)
		if err != nil {
			slog.Warn("broadcast target not found", "user_id", userID, "error", err)
			continue
		}
		targets = append(targets, *u)
	}
	return targets, nil
}

func (s *service) List(ctx context.Context) ([]domain.AdminMessage, error) {
	return s.messageRepo.Scan(ctx)
}

func (s *service) Delete(ctx context.Context, messageID string) error {
	if _, err := s.messageRepo.Get(ctx, messageID); err != nil {
		return err
	}
	if err := s.notificationRepo.DeleteByAdminMessage(ctx, messageID); err != nil {
		return err
	}
	return s.messageRepo.HardDelete(ctx, messageID)
}
