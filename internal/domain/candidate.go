package domain

import "time"

type Candidate struct {
	CandidateID   string    `json:"id" dynamodbav:"candidate_id"`
	CategoryID    string    `json:"category_id" dynamodbav:"category_id"`
	Name          string    `json:"name" dynamodbav:"name"`
	Alias         *string   `json:"alias,omitempty" dynamodbav:"alias"`
	Image         string    `json:"image" dynamodbav:"image"`
	Bio           string    `json:"bio" dynamodbav:"bio"`
	Achievements  []string  `json:"achievements,omitempty" dynamodbav:"achievements"`
	SongCount     *int      `json:"song_count,omitempty" dynamodbav:"song_count"`
	CandidateSong *string   `json:"candidate_song,omitempty" dynamodbav:"candidate_song"`
	AudioFile     *string   `json:"audio_file,omitempty" dynamodbav:"audio_file"`
	CreatedAt     time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

type CandidateInput struct {
	CategoryID    string   `json:"category_id" validate:"required"`
	Name          string   `json:"name" validate:"required"`
	Alias         *string  `json:"alias"`
	Image         string   `json:"image"`
	Bio           string   `json:"bio"`
	Achievements  []string `json:"achievements"`
	SongCount     *int     `json:"song_count"`
	CandidateSong *string  `json:"candidate_song"`
	AudioFile     *string  `json:"audio_file"`
}

type UpdateCandidateRequest struct {
	Name          *string  `json:"name"`
	Alias         *string  `json:"alias"`
	Image         *string  `json:"image"`
	Bio           *string  `json:"bio"`
	Achievements  []string `json:"achievements"`
	SongCount     *int     `json:"song_count"`
	CandidateSong *string  `json:"candidate_song"`
	AudioFile     *string  `json:"audio_file"`
}
