package domain

import "time"

// VotingConfigID is the fixed key of the voting configuration singleton.
const VotingConfigID = "default"

type VotingConfig struct {
	ConfigID     string    `json:"-" dynamodbav:"config_id"`
	IsVotingOpen bool      `json:"is_voting_open" dynamodbav:"is_voting_open"`
	BlockMessage *string   `json:"block_message,omitempty" dynamodbav:"block_message"`
	CreatedAt    time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

type UpdateVotingConfigRequest struct {
	IsVotingOpen *bool   `json:"is_voting_open" validate:"required"`
	BlockMessage *string `json:"block_message"`
}
