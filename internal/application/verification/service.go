// Package verification implements the email verification flow: issuing
// 6-digit one-time codes and consuming them. The durable email_verifications
// row is authoritative; the in-memory pending registry only ties a browser
// flow to its user between signup and confirmation.
package verification

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/bankass/awards-api/internal/domain"
	"github.com/bankass/awards-api/internal/infrastructure/smtp"
	"github.com/bankass/awards-api/internal/pending"
)

const codeTTL = 10 * time.Minute

type SendCodeRequest struct {
	UserID        string `json:"user_id" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Name          string `json:"name"`
	CreateSession bool   `json:"create_session"`
}

type SendCodeResult struct {
	SessionID string
	ExpiresAt time.Time
	// DevelopmentCode carries the issued code outside production so the flow
	// can be exercised without a real mailbox. Empty in production.
	DevelopmentCode string
}

type VerifyCodeRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Code   string `json:"code" validate:"required,len=6,numeric"`
}

type Service interface {
	SendCode(ctx context.Context, req SendCodeRequest) (*SendCodeResult, error)
	VerifyCode(ctx context.Context, req VerifyCodeRequest) error
	PendingSession(sessionID string) (pending.PendingSession, bool)
	DeletePendingSession(sessionID string) bool
}

type verificationStore interface {
	Put(ctx context.Context, v *domain.EmailVerification) error
	Get(ctx context.Context, userID string) (*domain.EmailVerification, error)
	Delete(ctx context.Context, userID string) error
}

type userStore interface {
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type service struct {
	verificationRepo verificationStore
	userRepo         userStore
	sessions         *pending.Store
	mailer           smtp.Mailer
	production       bool
	now              func() time.Time
}

type ServiceDeps struct {
	VerificationRepo verificationStore
	UserRepo         userStore
	Sessions         *pending.Store
	Mailer           smtp.Mailer
	Production       bool
	Now              func() time.Time // defaults to time.Now
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		verificationRepo: deps.VerificationRepo,
		userRepo:         deps.UserRepo,
		sessions:         deps.Sessions,
		mailer:           deps.Mailer,
		production:       deps.Production,
		now:              now,
	}
}

// SendCode issues a fresh one-time code: the durable row is upserted (one
// live code per user), a pending session is optionally registered, and the
// code is emailed best-effort. Email delivery failure never fails the call.
func (s *service) SendCode(ctx context.Context, req SendCodeRequest) (*SendCodeResult, error) {
	code, err := newCode()
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	expiresAt := now.Add(codeTTL)

	v := &domain.EmailVerification{
		UserID:    req.UserID,
		Email:     req.Email,
		Code:      code,
		ExpiresAt: expiresAt.Unix(),
		CreatedAt: now,
	}
	if err := s.verificationRepo.Put(ctx, v); err != nil {
		return nil, fmt.Errorf("save verification code: %w", err)
	}

	result := &SendCodeResult{ExpiresAt: expiresAt}
	if req.CreateSession && req.Name != "" {
		result.SessionID = s.sessions.CreateSession(req.UserID, req.Email, req.Name, code)
	}

	subject := "BANKASS AWARDS verification code"
	body := fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.\nIf you did not request this code, ignore this email.", code)
	if err := s.mailer.SendEmail(req.Email, subject, body); err != nil {
		slog.Warn("failed to send verification email", "user_id", req.UserID, "err", err)
	}

	if !s.production {
		result.DevelopmentCode = code
	}
	return result, nil
}

// VerifyCode consumes a code. The durable record is checked first; matching
// pending sessions are cleaned up afterwards. Exactly one success path.
func (s *service) VerifyCode(ctx context.Context, req VerifyCodeRequest) error {
	v, err := s.verificationRepo.Get(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no pending verification: %w", domain.ErrInvalidCode)
		}
		return fmt.Errorf("load verification record: %w", err)
	}
	if v.Email != req.Email || v.Code != req.Code {
		return fmt.Errorf("code mismatch: %w", domain.ErrInvalidCode)
	}
	if v.ExpiresAt < s.now().Unix() {
		return fmt.Errorf("code expired: %w", domain.ErrExpiredCode)
	}

	if err := s.userRepo.Update(ctx, req.UserID, map[string]interface{}{"email_verified": true}); err != nil {
		return fmt.Errorf("mark user verified: %w", err)
	}
	if err := s.verificationRepo.Delete(ctx, req.UserID); err != nil {
		slog.Warn("failed to delete consumed verification record", "user_id", req.UserID, "err", err)
	}
	s.sessions.VerifyAndDeleteSessions(req.Email, req.Code)
	return nil
}

func (s *service) PendingSession(sessionID string) (pending.PendingSession, bool) {
	return s.sessions.GetSession(sessionID)
}

func (s *service) DeletePendingSession(sessionID string) bool {
	return s.sessions.DeleteSession(sessionID)
}

// newCode draws a 6-digit decimal code in [100000, 999999], independently on
// every issuance.
func newCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
