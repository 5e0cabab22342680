package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bankass/awards-api/internal/domain"
	"github.com/bankass/awards-api/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldName         = "name"
	fieldEmail        = "email"
	fieldPhone        = "phone"
	fieldCity         = "city"
	fieldDomain       = "domain"
	fieldRole         = "role"
	fieldEnable       = "enable"
	fieldPasswordHash = "password_hash"
)

// Registration abuse limits. One account per device fingerprint, three per
// source IP. Both counts must be under the limit before an account is
// created; a failed count lookup does not block signup.
const (
	maxAccountsPerDevice = 1
	maxAccountsPerIP     = 3
)

// RequestMeta carries transport-level facts about the signup request that the
// guard and the audit trail record.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

type Service interface {
	Register(ctx context.Context, req domain.CreateUserRequest, meta RequestMeta) (*domain.User, error)
	List(ctx context.Context, limit int, cursor string) ([]domain.User, string, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error)
	Delete(ctx context.Context, userID string) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, userID string) error
	CountByDeviceID(ctx context.Context, deviceID string) (int, error)
	CountByRegistrationIP(ctx context.Context, ip string) (int, error)
}

type sessionStore interface {
	SoftDeleteByUser(ctx context.Context, userID string) error
}

type registrationStore interface {
	Put(ctx context.Context, d *domain.DeviceRegistration) error
}

type service struct {
	repo             userStore
	sessionRepo      sessionStore
	registrationRepo registrationStore
}

type ServiceDeps struct {
	UserRepo         userStore
	SessionRepo      sessionStore
	RegistrationRepo registrationStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:             deps.UserRepo,
		sessionRepo:      deps.SessionRepo,
		registrationRepo: deps.RegistrationRepo,
	}
}

func (s *service) Register(ctx context.Context, req domain.CreateUserRequest, meta RequestMeta) (*domain.User, error) {
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	deviceID := ""
	if req.DeviceID != nil {
		deviceID = *req.DeviceID
	}
	if err := s.checkRegistrationLimits(ctx, deviceID, meta.IPAddress); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:         id.New(),
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		City:           req.City,
		Domain:         req.Domain,
		PasswordHash:   string(hash),
		Role:           domain.RoleVoter,
		EmailVerified:  false,
		DeviceID:       deviceID,
		RegistrationIP: meta.IPAddress,
		UserAgent:      meta.UserAgent,
		Enable:         1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Put(ctx, u); err != nil {
		return nil, err
	}
	// Audit trail only; failures here never undo the signup.
	if s.registrationRepo != nil {
		reg := &domain.DeviceRegistration{
			RegistrationID: id.New(),
			UserID:         u.UserID,
			DeviceID:       deviceID,
			IPAddress:      meta.IPAddress,
			UserAgent:      meta.UserAgent,
			CreatedAt:      now,
		}
		if err := s.registrationRepo.Put(ctx, reg); err != nil {
			slog.Warn("record device registration", "user_id", u.UserID, "error", err)
		}
	}
	return u, nil
}

// checkRegistrationLimits enforces the per-device and per-IP account caps.
// A count that cannot be computed is treated as zero so a storage hiccup
// never blocks signups.
func (s *service) checkRegistrationLimits(ctx context.Context, deviceID, ip string) error {
	deviceCount := 0
	if deviceID != "" {
		n, err := s.repo.CountByDeviceID(ctx, deviceID)
		if err != nil {
			slog.Warn("count accounts by device", "error", err)
		} else {
			deviceCount = n
		}
	}
	ipCount := 0
	if ip != "" {
		n, err := s.repo.CountByRegistrationIP(ctx, ip)
		if err != nil {
			slog.Warn("count accounts by ip", "error", err)
		} else {
			ipCount = n
		}
	}
	if deviceCount >= maxAccountsPerDevice || ipCount >= maxAccountsPerIP {
		existing := max(deviceCount, ipCount)
		return fmt.Errorf("device already has %d account(s) registered: %w", existing, domain.ErrLimitReached)
	}
	return nil
}

func (s *service) List(ctx context.Context, limit int, cursor string) ([]domain.User, string, error) {
	if limit < 1 {
		limit = 50
	}
	return s.repo.ScanPage(ctx, int32(limit), cursor)
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}

func (s *service) Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.Email != nil {
		updates[fieldEmail] = *req.Email
	}
	if req.Phone != nil {
		updates[fieldPhone] = *req.Phone
	}
	if req.City != nil {
		updates[fieldCity] = *req.City
	}
	if req.Domain != nil {
		updates[fieldDomain] = *req.Domain
	}
	if req.Role != nil {
		switch *req.Role {
		case domain.RoleVoter, domain.RoleSuperAdmin:
			updates[fieldRole] = *req.Role
		default:
			return nil, fmt.Errorf("invalid role: %w", domain.ErrBadRequest)
		}
	}
	if req.Enable != nil {
		updates[fieldEnable] = *req.Enable
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, userID)
	}
	if err := s.repo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

func (s *service) Delete(ctx context.Context, userID string) error {
	if err := s.repo.SoftDelete(ctx, userID); err != nil {
		return err
	}
	return s.sessionRepo.SoftDeleteByUser(ctx, userID)
}

func (s *service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect: %w", domain.ErrUnauthorized)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, userID, map[string]interface{}{fieldPasswordHash: string(hash)})
}
