package category

import (
	"context"
	"time"

	"github.com/bankass/awards-api/internal/domain"
	"github.com/bankass/awards-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldName               = "name"
	fieldSubtitle           = "subtitle"
	fieldSpecial            = "special"
	fieldIsLeadershipPrize  = "is_leadership_prize"
	fieldWinner             = "pre_assigned_winner"
	fieldWinnerBio          = "pre_assigned_winner_bio"
	fieldWinnerImage        = "pre_assigned_winner_image"
	fieldWinnerAchievements = "pre_assigned_winner_achievements"
	fieldWinnerTribute      = "pre_assigned_winner_tribute"
	fieldLeadershipRevealed = "leadership_revealed"
)

type Service interface {
	Create(ctx context.Context, req domain.CategoryInput) (*domain.Category, error)
	Get(ctx context.Context, categoryID string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, categoryID string, req domain.CategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, categoryID string) error
}

type categoryStore interface {
	Put(ctx context.Context, c *domain.Category) error
	Get(ctx context.Context, categoryID string) (*domain.Category, error)
	Scan(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, categoryID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, categoryID string) error
}

type service struct {
	repo categoryStore
}

type ServiceDeps struct {
	CategoryRepo categoryStore
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.CategoryRepo}
}

func (s *service) Create(ctx context.Context, req domain.CategoryInput) (*domain.Category, error) {
	now := time.Now().UTC()
	c := &domain.Category{
		CategoryID:                    id.New(),
		Name:                          req.Name,
		Subtitle:                      req.Subtitle,
		PreAssignedWinner:             req.PreAssignedWinner,
		PreAssignedWinnerBio:          req.PreAssignedWinnerBio,
		PreAssignedWinnerImage:        req.PreAssignedWinnerImage,
		PreAssignedWinnerAchievements: req.PreAssignedWinnerAchievements,
		PreAssignedWinnerTribute:      req.PreAssignedWinnerTribute,
		CreatedAt:                     now,
		UpdatedAt:                     now,
	}
	if req.Special != nil {
		c.Special = *req.Special
	}
	if req.IsLeadershipPrize != nil {
		c.IsLeadershipPrize = *req.IsLeadershipPrize
	}
	if req.LeadershipRevealed != nil {
		c.LeadershipRevealed = *req.LeadershipRevealed
	}
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, categoryID string) (*domain.Category, error) {
	return s.repo.Get(ctx, categoryID)
}

func (s *service) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.Scan(ctx)
}

func (s *service) Update(ctx context.Context, categoryID string, req domain.CategoryInput) (*domain.Category, error) {
	updates := map[string]interface{}{}
	if req.Name != "" {
		updates[fieldName] = req.Name
	}
	if req.Subtitle != "" {
		updates[fieldSubtitle] = req.Subtitle
	}
	if req.Special != nil {
		updates[fieldSpecial] = *req.Special
	}
	if req.IsLeadershipPrize != nil {
		updates[fieldIsLeadershipPrize] = *req.IsLeadershipPrize
	}
	if req.PreAssignedWinner != nil {
		updates[fieldWinner] = *req.PreAssignedWinner
	}
	if req.PreAssignedWinnerBio != nil {
		updates[fieldWinnerBio] = *req.PreAssignedWinnerBio
	}
	if req.PreAssignedWinnerImage != nil {
		updates[fieldWinnerImage] = *req.PreAssignedWinnerImage
	}
	if req.PreAssignedWinnerAchievements != nil {
		updates[fieldWinnerAchievements] = req.PreAssignedWinnerAchievements
	}
	if req.PreAssignedWinnerTribute != nil {
		updates[fieldWinnerTribute] = *req.PreAssignedWinnerTribute
	}
	if req.LeadershipRevealed != nil {
		updates[fieldLeadershipRevealed] = *req.LeadershipRevealed
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, categoryID)
	}
	if err := s.repo.Update(ctx, categoryID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, categoryID)
}

func (s *service) Delete(ctx context.Context, categoryID string) error {
	if _, err := s.repo.Get(ctx, categoryID); err != nil {
		return err
	}
	return s.repo.HardDelete(ctx, categoryID)
}
