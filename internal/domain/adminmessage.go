package domain

import "time"

// AdminMessage is a broadcast authored by a super admin. Delivery happens by
// fanning the message out into one notification row per target user.
type AdminMessage struct {
	MessageID   string    `json:"id" dynamodbav:"message_id"`
	Title       string    `json:"title" dynamodbav:"title"`
	Message     string    `json:"message" dynamodbav:"message"`
	Type        string    `json:"type" dynamodbav:"type"`
	TargetUsers []string  `json:"target_users,omitempty" dynamodbav:"target_users"` // empty = all users
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

type BroadcastRequest struct {
	Title       string   `json:"title" validate:"required"`
	Message     string   `json:"message" validate:"required"`
	Type        string   `json:"type" validate:"omitempty,oneof=info warning success error"`
	TargetUsers []string `json:"target_users"`
}
