package domain

import "time"

// Category is an award category. Leadership-prize categories carry a
// pre-assigned winner that stays hidden until LeadershipRevealed is set.
type Category struct {
	CategoryID                    string    `json:"id" dynamodbav:"category_id"`
	Name                          string    `json:"name" dynamodbav:"name"`
	Subtitle                      string    `json:"subtitle" dynamodbav:"subtitle"`
	Special                       bool      `json:"special" dynamodbav:"special"`
	IsLeadershipPrize             bool      `json:"is_leadership_prize" dynamodbav:"is_leadership_prize"`
	PreAssignedWinner             *string   `json:"pre_assigned_winner,omitempty" dynamodbav:"pre_assigned_winner"`
	PreAssignedWinnerBio          *string   `json:"pre_assigned_winner_bio,omitempty" dynamodbav:"pre_assigned_winner_bio"`
	PreAssignedWinnerImage        *string   `json:"pre_assigned_winner_image,omitempty" dynamodbav:"pre_assigned_winner_image"`
	PreAssignedWinnerAchievements []string  `json:"pre_assigned_winner_achievements,omitempty" dynamodbav:"pre_assigned_winner_achievements"`
	PreAssignedWinnerTribute      *string   `json:"pre_assigned_winner_tribute,omitempty" dynamodbav:"pre_assigned_winner_tribute"`
	LeadershipRevealed            bool      `json:"leadership_revealed" dynamodbav:"leadership_revealed"`
	CreatedAt                     time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt                     time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

type CategoryInput struct {
	Name                          string   `json:"name" validate:"required"`
	Subtitle                      string   `json:"subtitle"`
	Special                       *bool    `json:"special"`
	IsLeadershipPrize             *bool    `json:"is_leadership_prize"`
	PreAssignedWinner             *string  `json:"pre_assigned_winner"`
	PreAssignedWinnerBio          *string  `json:"pre_assigned_winner_bio"`
	PreAssignedWinnerImage        *string  `json:"pre_assigned_winner_image"`
	PreAssignedWinnerAchievements []string `json:"pre_assigned_winner_achievements"`
	PreAssignedWinnerTribute      *string  `json:"pre_assigned_winner_tribute"`
	LeadershipRevealed            *bool    `json:"leadership_revealed"`
}
