package domain

import "time"

// Vote records one user's choice in one category. The vote id is derived from
// (user_id, category_id), so casting again in the same category replaces the
// earlier vote instead of stacking a second one.
type Vote struct {
	VoteID        string    `json:"id" dynamodbav:"vote_id"`
	UserID        string    `json:"user_id" dynamodbav:"user_id"`
	CategoryID    string    `json:"category_id" dynamodbav:"category_id"`
	CandidateID   string    `json:"candidate_id" dynamodbav:"candidate_id"`
	CandidateName string    `json:"candidate_name" dynamodbav:"candidate_name"`
	CreatedAt     time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

type CastVoteRequest struct {
	CategoryID  string `json:"category_id" validate:"required"`
	CandidateID string `json:"candidate_id" validate:"required"`
}

// CategoryResult is one category's tally in the results view.
type CategoryResult struct {
	CategoryID string         `json:"category_id"`
	TotalVotes int            `json:"total_votes"`
	Tallies    map[string]int `json:"tallies"` // candidate_id -> vote count
}
