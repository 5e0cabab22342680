package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bankass/awards-api/internal/domain"
)

// Snapshot is the full-database backup document served to super admins.
type Snapshot struct {
	ExportDate    time.Time             `json:"export_date"`
	Users         []domain.User         `json:"users"`
	Categories    []domain.Category     `json:"categories"`
	Candidates    []domain.Candidate    `json:"candidates"`
	Votes         []domain.Vote         `json:"votes"`
	Notifications []domain.Notification `json:"notifications"`
	AdminMessages []domain.AdminMessage `json:"admin_messages"`
	VotingConfig  *domain.VotingConfig  `json:"voting_config"`
	Statistics    Statistics            `json:"statistics"`
}

// Statistics summarizes the snapshot for a quick read without loading the
// full collections.
type Statistics struct {
	TotalUsers         int            `json:"total_users"`
	TotalCategories    int            `json:"total_categories"`
	TotalCandidates    int            `json:"total_candidates"`
	TotalVotes         int            `json:"total_votes"`
	TotalNotifications int            `json:"total_notifications"`
	VotesByCategory    map[string]int `json:"votes_by_category"`
	UsersByRole        map[string]int `json:"users_by_role"`
}

type Service interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
	// Filename returns the attachment name for a snapshot taken at t.
	Filename(t time.Time) string
}

type userStore interface {
	ScanAll(ctx context.Context) ([]domain.User, error)
}

type categoryStore interface {
	Scan(ctx context.Context) ([]domain.Category, error)
}

type candidateStore interface {
	Scan(ctx context.Context) ([]domain.Candidate, error)
}

type voteStore interface {
	ScanAll(ctx context.Context) ([]domain.Vote, error)
}

type notificationStore interface {
	ScanAll(ctx context.Context) ([]domain.Notification, error)
}

type messageStore interface {
	Scan(ctx context.Context) ([]domain.AdminMessage, error)
}

type votingConfigStore interface {
	Get(ctx context.Context) (*domain.VotingConfig, error)
}

type service struct {
	userRepo         userStore
	categoryRepo     categoryStore
	candidateRepo    candidateStore
	voteRepo         voteStore
	notificationRepo notificationStore
	messageRepo      messageStore
	configRepo       votingConfigStore
	now              func() time.Time
}

type ServiceDeps struct {
	UserRepo         userStore
	CategoryRepo     categoryStore
	CandidateRepo    candidateStore
	VoteRepo         voteStore
	NotificationRepo notificationStore
	MessageRepo      messageStore
	ConfigRepo       votingConfigStore
	Now              func() time.Time
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		userRepo:         deps.UserRepo,
		categoryRepo:     deps.CategoryRepo,
		candidateRepo:    deps.CandidateRepo,
		voteRepo:         deps.VoteRepo,
		notificationRepo: deps.NotificationRepo,
		messageRepo:      deps.MessageRepo,
		configRepo:       deps.ConfigRepo,
		now:              now,
	}
}

func (s *service) Snapshot(ctx context.Context) (*Snapshot, error) {
	users, err := s.userRepo.ScanAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("export users: %w", err)
	}
	categories, err := s.categoryRepo.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("export categories: %w", err)
	}
	candidates, err := s.candidateRepo.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("export candidates: %w", err)
	}
	votes, err := s.voteRepo.ScanAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("export votes: %w", err)
	}
	notifications, err := s.notificationRepo.ScanAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("export notifications: %w", err)
	}
	messages, err := s.messageRepo.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("export admin messages: %w", err)
	}
	// An absent config row exports as null; only real failures abort.
	votingConfig, err := s.configRepo.Get(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("export voting config: %w", err)
	}

	votesByCategory := map[string]int{}
	for _, v := range votes {
		votesByCategory[v.CategoryID]++
	}
	usersByRole := map[string]int{}
	for _, u := range users {
		usersByRole[u.Role]++
	}

	return &Snapshot{
		ExportDate:    s.now().UTC(),
		Users:         users,
		Categories:    categories,
		Candidates:    candidates,
		Votes:         votes,
		Notifications: notifications,
		AdminMessages: messages,
		VotingConfig:  votingConfig,
		Statistics: Statistics{
			TotalUsers:         len(users),
			TotalCategories:    len(categories),
			TotalCandidates:    len(candidates),
			TotalVotes:         len(votes),
			TotalNotifications: len(notifications),
			VotesByCategory:    votesByCategory,
			UsersByRole:        usersByRole,
		},
	}, nil
}

func (s *service) Filename(t time.Time) string {
	return fmt.Sprintf("bankass_data_backup_%s.json", t.UTC().Format("2006-01-02"))
}
