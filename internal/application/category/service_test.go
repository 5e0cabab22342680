package category

import (
	"context"
	"errors"
	"testing"

	"github.com/bankass/awards-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCategoryStore struct{ mock.Mock }

func (m *mockCategoryStore) Put(ctx context.Context, c *domain.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCategoryStore) Get(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategoryStore) Scan(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *mockCategoryStore) Update(ctx context.Context, categoryID string, updates map[string]interface{}) error {
	args := m.Called(ctx, categoryID, updates)
	return args.Error(0)
}

func (m *mockCategoryStore) HardDelete(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestCreate_AssignsIDAndTimestamps(t *testing.T) {
	repo := new(mockCategoryStore)
	svc := NewService(ServiceDeps{CategoryRepo: repo})

	var put *domain.Category
	repo.On("Put", mock.Anything, mock.AnythingOfType("*domain.Category")).
		Run(func(args mock.Arguments) { put = args.Get(1).(*domain.Category) }).
		Return(nil)

	c, err := svc.Create(context.Background(), domain.CategoryInput{
		Name:     "Best Innovation",
		Subtitle: "New ideas in banking",
		Special:  boolPtr(true),
	})

	require.NoError(t, err)
	require.NotNil(t, put)
	assert.NotEmpty(t, c.CategoryID)
	assert.Equal(t, "Best Innovation", put.Name)
	assert.True(t, put.Special)
	assert.False(t, put.IsLeadershipPrize)
	assert.False(t, put.CreatedAt.IsZero())
	assert.Equal(t, put.CreatedAt, put.UpdatedAt)
}

func TestCreate_LeadershipPrizeCarriesWinnerFields(t *testing.T) {
	repo := new(mockCategoryStore)
	svc := NewService(ServiceDeps{CategoryRepo: repo})

	repo.On("Put", mock.Anything, mock.Anything).Return(nil)

	c, err := svc.Create(context.Background(), domain.CategoryInput{
		Name:                          "Leadership Prize",
		IsLeadershipPrize:             boolPtr(true),
		PreAssignedWinner:             strPtr("Awa Traoré"),
		PreAssignedWinnerBio:          strPtr("Pioneer of regional microfinance."),
		PreAssignedWinnerAchievements: []string{"Founded two rural branches"},
	})

	require.NoError(t, err)
	assert.True(t, c.IsLeadershipPrize)
	require.NotNil(t, c.PreAssignedWinner)
	assert.Equal(t, "Awa Traoré", *c.PreAssignedWinner)
	assert.Len(t, c.PreAssignedWinnerAchievements, 1)
	assert.False(t, c.LeadershipRevealed)
}

func TestUpdate_EmptyInputReturnsExisting(t *testing.T) {
	repo := new(mockCategoryStore)
	svc := NewService(ServiceDeps{CategoryRepo: repo})

	existing := &domain.Category{CategoryID: "cat1", Name: "Best Agency"}
	repo.On("Get", mock.Anything, "cat1").Return(existing, nil)

	c, err := svc.Update(context.Background(), "cat1", domain.CategoryInput{})

	require.NoError(t, err)
	assert.Equal(t, existing, c)
	repo.AssertNotCalled(t, "Update")
}

func TestUpdate_BuildsPartialUpdateMap(t *testing.T) {
	repo := new(mockCategoryStore)
	svc := NewService(ServiceDeps{CategoryRepo: repo})

	repo.On("Update", mock.Anything, "cat1", map[string]interface{}{
		"name":                "Best Teller",
		"leadership_revealed": true,
	}).Return(nil)
	repo.On("Get", mock.Anything, "cat1").Return(&domain.Category{CategoryID: "cat1", Name: "Best Teller"}, nil)

	c, err := svc.Update(context.Background(), "cat1", domain.CategoryInput{
		Name:               "Best Teller",
		LeadershipRevealed: boolPtr(true),
	})

	require.NoError(t, err)
	assert.Equal(t, "Best Teller", c.Name)
	repo.AssertExpectations(t)
}

func TestDelete_UnknownCategory(t *testing.T) {
	repo := new(mockCategoryStore)
	svc := NewService(ServiceDeps{CategoryRepo: repo})

	repo.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	err := svc.Delete(context.Background(), "missing")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	repo.AssertNotCalled(t, "HardDelete")
}

func TestDelete_RemovesExisting(t *testing.T) {
	repo := new(mockCategoryStore)
	svc := NewService(ServiceDeps{CategoryRepo: repo})

	repo.On("Get", mock.Anything, "cat1").Return(&domain.Category{CategoryID: "cat1"}, nil)
	repo.On("HardDelete", mock.Anything, "cat1").Return(nil)

	require.NoError(t, svc.Delete(context.Background(), "cat1"))
	repo.AssertExpectations(t)
}
