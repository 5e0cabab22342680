package domain

import "time"

// EmailVerification is the durable one-time-code record. Keyed by user_id, so
// a later issuance for the same user overwrites the prior code: at most one
// live code per user. ExpiresAt doubles as the DynamoDB TTL attribute.
type EmailVerification struct {
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	Email     string    `json:"email" dynamodbav:"email"`
	Code      string    `json:"code" dynamodbav:"code"`
	ExpiresAt int64     `json:"expires_at" dynamodbav:"expires_at"` // Unix seconds
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}
