package voting

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bankass/awards-api/internal/domain"
)

type Service interface {
	Cast(ctx context.Context, userID string, req domain.CastVoteRequest) (*domain.Vote, error)
	ListMine(ctx context.Context, userID string) ([]domain.Vote, error)
	Results(ctx context.Context) ([]domain.CategoryResult, error)
	GetConfig(ctx context.Context) (*domain.VotingConfig, error)
	SetConfig(ctx context.Context, req domain.UpdateVotingConfigRequest) (*domain.VotingConfig, error)
}

type voteStore interface {
	Put(ctx context.Context, v *domain.Vote) error
	ListByUser(ctx context.Context, userID string) ([]domain.Vote, error)
	ScanAll(ctx context.Context) ([]domain.Vote, error)
}

type categoryStore interface {
	Get(ctx context.Context, categoryID string) (*domain.Category, error)
}

type candidateStore interface {
	Get(ctx context.Context, candidateID string) (*domain.Candidate, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type configStore interface {
	Get(ctx context.Context) (*domain.VotingConfig, error)
	Put(ctx context.Context, c *domain.VotingConfig) error
}

type service struct {
	voteRepo      voteStore
	categoryRepo  categoryStore
	candidateRepo candidateStore
	userRepo      userStore
	configRepo    configStore
}

type ServiceDeps struct {
	VoteRepo      voteStore
	CategoryRepo  categoryStore
	CandidateRepo candidateStore
	UserRepo      userStore
	ConfigRepo    configStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		voteRepo:      deps.VoteRepo,
		categoryRepo:  deps.CategoryRepo,
		candidateRepo: deps.CandidateRepo,
		userRepo:      deps.UserRepo,
		configRepo:    deps.ConfigRepo,
	}
}

// voteID derives the vote key from the voter and the category, which is what
// makes a recast replace the previous vote instead of adding a second one.
func voteID(userID, categoryID string) string {
	return userID + "_" + categoryID
}

func (s *service) Cast(ctx context.Context, userID string, req domain.CastVoteRequest) (*domain.Vote, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil || !cfg.IsVotingOpen {
		msg := "voting is currently closed"
		if err == nil && cfg.BlockMessage != nil && *cfg.BlockMessage != "" {
			msg = *cfg.BlockMessage
		}
		return nil, fmt.Errorf("%s: %w", msg, domain.ErrVotingClosed)
	}
	u, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.EmailVerified {
		return nil, fmt.Errorf("email not verified: %w", domain.ErrForbidden)
	}
	cat, err := s.categoryRepo.Get(ctx, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("category not found: %w", domain.ErrNotFound)
	}
	if cat.IsLeadershipPrize {
		return nil, fmt.Errorf("category does not accept votes: %w", domain.ErrBadRequest)
	}
	cand, err := s.candidateRepo.Get(ctx, req.CandidateID)
	if err != nil {
		return nil, fmt.Errorf("candidate not found: %w", domain.ErrNotFound)
	}
	if cand.CategoryID != req.CategoryID {
		return nil, fmt.Errorf("candidate does not belong to category: %w", domain.ErrBadRequest)
	}
	now := time.Now().UTC()
	v := &domain.Vote{
		VoteID:        voteID(userID, req.CategoryID),
		UserID:        userID,
		CategoryID:    req.CategoryID,
		CandidateID:   cand.CandidateID,
		CandidateName: cand.Name,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.voteRepo.Put(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) ListMine(ctx context.Context, userID string) ([]domain.Vote, error) {
	return s.voteRepo.ListByUser(ctx, userID)
}

func (s *service) Results(ctx context.Context) ([]domain.CategoryResult, error) {
	votes, err := s.voteRepo.ScanAll(ctx)
	if err != nil {
		return nil, err
	}
	byCategory := map[string]*domain.CategoryResult{}
	for _, v := range votes {
		res, ok := byCategory[v.CategoryID]
		if !ok {
			res = &domain.CategoryResult{CategoryID: v.CategoryID, Tallies: map[string]int{}}
			byCategory[v.CategoryID] = res
		}
		res.Tallies[v.CandidateID]++
		res.TotalVotes++
	}
	results := make([]domain.CategoryResult, 0, len(byCategory))
	for _, res := range byCategory {
		results = append(results, *res)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].CategoryID < results[j].CategoryID })
	return results, nil
}

func (s *service) GetConfig(ctx context.Context) (*domain.VotingConfig, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		// No row yet means voting has never been opened.
		return &domain.VotingConfig{ConfigID: domain.VotingConfigID, IsVotingOpen: false}, nil
	}
	return cfg, nil
}

func (s *service) SetConfig(ctx context.Context, req domain.UpdateVotingConfigRequest) (*domain.VotingConfig, error) {
	if req.IsVotingOpen == nil {
		return nil, fmt.Errorf("is_voting_open is required: %w", domain.ErrBadRequest)
	}
	cfg, err := s.configRepo.Get(ctx)
	now := time.Now().UTC()
	if err != nil {
		cfg = &domain.VotingConfig{ConfigID: domain.VotingConfigID, CreatedAt: now}
	}
	cfg.IsVotingOpen = *req.IsVotingOpen
	if req.BlockMessage != nil {
		cfg.BlockMessage = req.BlockMessage
	}
	cfg.UpdatedAt = now
	if err := s.configRepo.Put(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
