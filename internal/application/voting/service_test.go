package voting

import (
	"context"
	"errors"
	"testing"

	"github.com/bankass/awards-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockVoteStore struct{ mock.Mock }

func (m *mockVoteStore) Put(ctx context.Context, v *domain.Vote) error {
	return m.Called(ctx, v).Error(0)
}
func (m *mockVoteStore) ListByUser(ctx context.Context, userID string) ([]domain.Vote, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Vote), args.Error(1)
}
func (m *mockVoteStore) ScanAll(ctx context.Context) ([]domain.Vote, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Vote), args.Error(1)
}

type mockCategoryStore struct{ mock.Mock }

func (m *mockCategoryStore) Get(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if c, _ := args.Get(0).(*domain.Category); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCandidateStore struct{ mock.Mock }

func (m *mockCandidateStore) Get(ctx context.Context, candidateID string) (*domain.Candidate, error) {
	args := m.Called(ctx, candidateID)
	if c, _ := args.Get(0).(*domain.Candidate); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockConfigStore struct{ mock.Mock }

func (m *mockConfigStore) Get(ctx context.Context) (*domain.VotingConfig, error) {
	args := m.Called(ctx)
	if c, _ := args.Get(0).(*domain.VotingConfig); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockConfigStore) Put(ctx context.Context, c *domain.VotingConfig) error {
	return m.Called(ctx, c).Error(0)
}

// --- helpers ---

type testMocks struct {
	votes      *mockVoteStore
	categories *mockCategoryStore
	candidates *mockCandidateStore
	users      *mockUserStore
	config     *mockConfigStore
}

func newTestService() (Service, testMocks) {
	m := testMocks{
		votes:      &mockVoteStore{},
		categories: &mockCategoryStore{},
		candidates: &mockCandidateStore{},
		users:      &mockUserStore{},
		config:     &mockConfigStore{},
	}
	svc := NewService(ServiceDeps{
		VoteRepo:      m.votes,
		CategoryRepo:  m.categories,
		CandidateRepo: m.candidates,
		UserRepo:      m.users,
		ConfigRepo:    m.config,
	})
	return svc, m
}

func ptr[T any](v T) *T { return &v }

func openConfig() *domain.VotingConfig {
	return &domain.VotingConfig{ConfigID: domain.VotingConfigID, IsVotingOpen: true}
}

func verifiedVoter() *domain.User {
	return &domain.User{UserID: "u1", Role: domain.RoleVoter, EmailVerified: true, Enable: 1}
}

func castReq() domain.CastVoteRequest {
	return domain.CastVoteRequest{CategoryID: "cat1", CandidateID: "cand1"}
}

// --- Cast tests ---

func TestCast_VotingClosed(t *testing.T) {
	svc, m := newTestService()
	m.config.On("Get", mock.Anything).Return(&domain.VotingConfig{
		IsVotingOpen: false,
		BlockMessage: ptr("voting opens friday"),
	}, nil)

	_, err := svc.Cast(context.Background(), "u1", castReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrVotingClosed))
	assert.Contains(t, err.Error(), "voting opens friday")
	m.votes.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestCast_NoConfigMeansClosed(t *testing.T) {
	svc, m := newTestService()
	m.config.On("Get", mock.Anything).Return(nil, domain.ErrNotFound)

	_, err := svc.Cast(context.Background(), "u1", castReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrVotingClosed))
}

func TestCast_UnverifiedEmail(t *testing.T) {
	svc, m := newTestService()
	m.config.On("Get", mock.Anything).Return(openConfig(), nil)
	u := verifiedVoter()
	u.EmailVerified = false
	m.users.On("Get", mock.Anything, "u1").Return(u, nil)

	_, err := svc.Cast(context.Background(), "u1", castReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestCast_UnknownCategory(t *testing.T) {
	svc, m := newTestService()
	m.config.On("Get", mock.Anything).Return(openConfig(), nil)
	m.users.On("Get", mock.Anything, "u1").Return(verifiedVoter(), nil)
	m.categories.On("Get", mock.Anything, "cat1").Return(nil, domain.ErrNotFound)

	_, err := svc.Cast(context.Background(), "u1", castReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCast_LeadershipCategoryRejectsVotes(t *testing.T) {
	svc, m := newTestService()
	m.config.On("Get", mock.Anything).Return(openConfig(), nil)
	m.users.On("Get", mock.Anything, "u1").Return(verifiedVoter(), nil)
	m.categories.On("Get", mock.Anything, "cat1").Return(&domain.Category{
		CategoryID:        "cat1",
		IsLeadershipPrize: true,
	}, nil)

	_, err := svc.Cast(context.Background(), "u1", castReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestCast_CandidateInWrongCategory(t *testing.T) {
	svc, m := newTestService()
	m.config.On("Get", mock.Anything).Return(openConfig(), nil)
	m.users.On("Get", mock.Anything, "u1").Return(verifiedVoter(), nil)
	m.categories.On("Get", mock.Anything, "cat1").Return(&domain.Category{CategoryID: "cat1"}, nil)
	m.candidates.On("Get", mock.Anything, "cand1").Return(&domain.Candidate{
		CandidateID: "cand1",
		CategoryID:  "other-category",
	}, nil)

	_, err := svc.Cast(context.Background(), "u1", castReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestCast_HappyPath(t *testing.T) {
	svc, m := newTestService()
	m.config.On("Get", mock.Anything).Return(openConfig(), nil)
	m.users.On("Get", mock.Anything, "u1").Return(verifiedVoter(), nil)
	m.categories.On("Get", mock.Anything, "cat1").Return(&domain.Category{CategoryID: "cat1"}, nil)
	m.candidates.On("Get", mock.Anything, "cand1").Return(&domain.Candidate{
		CandidateID: "cand1",
		CategoryID:  "cat1",
		Name:        "The Candidate",
	}, nil)
	m.votes.On("Put", mock.Anything, mock.AnythingOfType("*domain.Vote")).Return(nil)

	v, err := svc.Cast(context.Background(), "u1", castReq())

	require.NoError(t, err)
	assert.Equal(t, "u1_cat1", v.VoteID)
	assert.Equal(t, "The Candidate", v.CandidateName)
	m.votes.AssertExpectations(t)
}

func TestCast_RecastSameCategoryProducesSameVoteID(t *testing.T) {
	svc, m := newTestService()
	m.config.On("Get", mock.Anything).Return(openConfig(), nil)
	m.users.On("Get", mock.Anything, "u1").Return(verifiedVoter(), nil)
	m.categories.On("Get", mock.Anything, "cat1").Return(&domain.Category{CategoryID: "cat1"}, nil)
	m.candidates.On("Get", mock.Anything, "cand1").Return(&domain.Candidate{CandidateID: "cand1", CategoryID: "cat1"}, nil)
	m.candidates.On("Get", mock.Anything, "cand2").Return(&domain.Candidate{CandidateID: "cand2", CategoryID: "cat1"}, nil)
	m.votes.On("Put", mock.Anything, mock.Anything).Return(nil)

	first, err := svc.Cast(context.Background(), "u1", castReq())
	require.NoError(t, err)

	second, err := svc.Cast(context.Background(), "u1", domain.CastVoteRequest{
		CategoryID: "cat1", CandidateID: "cand2",
	})
	require.NoError(t, err)

	assert.Equal(t, first.VoteID, second.VoteID)
	assert.Equal(t, "cand2", second.CandidateID)
}

// --- Results tests ---

func TestResults_TalliesByCategoryAndCandidate(t *testing.T) {
	svc, m := newTestService()
	m.votes.On("ScanAll", mock.Anything).Return([]domain.Vote{
		{CategoryID: "cat1", CandidateID: "a"},
		{CategoryID: "cat1", CandidateID: "a"},
		{CategoryID: "cat1", CandidateID: "b"},
		{CategoryID: "cat2", CandidateID: "c"},
	}, nil)

	results, err := svc.Results(context.Background())

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "cat1", results[0].CategoryID)
	assert.Equal(t, 3, results[0].TotalVotes)
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, results[0].Tallies)
	assert.Equal(t, "cat2", results[1].CategoryID)
	assert.Equal(t, 1, results[1].TotalVotes)
}

func TestResults_Empty(t *testing.T) {
	svc, m := newTestService()
	m.votes.On("ScanAll", mock.Anything).Return([]domain.Vote{}, nil)

	results, err := svc.Results(context.Background())

	require.NoError(t, err)
	assert.Empty(t, results)
}

// --- Config tests ---

func TestGetConfig_DefaultsToClosed(t *testing.T) {
	svc, m := newTestService()
	m.config.On("Get", mock.Anything).Return(nil, domain.ErrNotFound)

	cfg, err := svc.GetConfig(context.Background())

	require.NoError(t, err)
	assert.False(t, cfg.IsVotingOpen)
}

func TestSetConfig_CreatesWhenMissing(t *testing.T) {
	svc, m := newTestService()
	m.config.On("Get", mock.Anything).Return(nil, domain.ErrNotFound)

	var saved *domain.VotingConfig
	m.config.On("Put", mock.Anything, mock.AnythingOfType("*domain.VotingConfig")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*domain.VotingConfig)
	}).Return(nil)

	cfg, err := svc.SetConfig(context.Background(), domain.UpdateVotingConfigRequest{
		IsVotingOpen: ptr(true),
		BlockMessage: ptr("see you at the gala"),
	})

	require.NoError(t, err)
	assert.True(t, cfg.IsVotingOpen)
	require.NotNil(t, saved)
	assert.True(t, saved.IsVotingOpen)
	assert.Equal(t, "see you at the gala", *saved.BlockMessage)
}

func TestSetConfig_PreservesBlockMessageWhenAbsent(t *testing.T) {
	svc, m := newTestService()
	m.config.On("Get", mock.Anything).Return(&domain.VotingConfig{
		IsVotingOpen: true,
		BlockMessage: ptr("existing message"),
	}, nil)
	m.config.On("Put", mock.Anything, mock.Anything).Return(nil)

	cfg, err := svc.SetConfig(context.Background(), domain.UpdateVotingConfigRequest{
		IsVotingOpen: ptr(false),
	})

	require.NoError(t, err)
	assert.False(t, cfg.IsVotingOpen)
	assert.Equal(t, "existing message", *cfg.BlockMessage)
}

func TestSetConfig_RequiresIsVotingOpen(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.SetConfig(context.Background(), domain.UpdateVotingConfigRequest{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}
