package domain

import "time"

// DeviceRegistration is an audit row recorded at signup time, one per created
// account. The registration guard itself counts user rows, not these.
type DeviceRegistration struct {
	RegistrationID string    `json:"id" dynamodbav:"registration_id"`
	UserID         string    `json:"user_id" dynamodbav:"user_id"`
	DeviceID       string    `json:"device_id" dynamodbav:"device_id"`
	IPAddress      string    `json:"ip_address" dynamodbav:"ip_address"`
	UserAgent      string    `json:"user_agent" dynamodbav:"user_agent"`
	CreatedAt      time.Time `json:"created_at" dynamodbav:"created_at"`
}
