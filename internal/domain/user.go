package domain

import "time"

// User roles. Voters cast votes; super admins manage the awards.
const (
	RoleVoter      = "VOTER"
	RoleSuperAdmin = "SUPER_ADMIN"
)

type User struct {
	UserID         string     `json:"id" dynamodbav:"user_id"`
	Name           string     `json:"name" dynamodbav:"name"`
	Email          string     `json:"email" dynamodbav:"email"`
	Phone          *string    `json:"phone,omitempty" dynamodbav:"phone"`
	City           *string    `json:"city,omitempty" dynamodbav:"city"`
	Domain         *string    `json:"domain,omitempty" dynamodbav:"domain"`
	PasswordHash   string     `json:"-" dynamodbav:"password_hash"`
	Role           string     `json:"role" dynamodbav:"role"`
	EmailVerified  bool       `json:"email_verified" dynamodbav:"email_verified"`
	DeviceID       string     `json:"-" dynamodbav:"device_id"`
	RegistrationIP string     `json:"-" dynamodbav:"registration_ip"`
	UserAgent      string     `json:"-" dynamodbav:"user_agent"`
	Enable         int        `json:"enable" dynamodbav:"enable"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty" dynamodbav:"deleted_at"`
	CreatedAt      time.Time  `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" dynamodbav:"updated_at"`
}

type CreateUserRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Phone    *string `json:"phone"`
	City     *string `json:"city"`
	Domain   *string `json:"domain"`
	// DeviceID is the client-derived device fingerprint used by the
	// registration guard. Optional; absent fingerprints are not counted.
	DeviceID *string `json:"device_id"`
}

type UpdateUserRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email" validate:"omitempty,email"`
	Phone  *string `json:"phone"`
	City   *string `json:"city"`
	Domain *string `json:"domain"`
	Role   *string `json:"role" validate:"omitempty,oneof=VOTER SUPER_ADMIN"`
	Enable *int    `json:"enable"` // 1 = enabled, 0 = disabled
}
