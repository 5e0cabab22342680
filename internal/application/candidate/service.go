package candidate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/bankass/awards-api/internal/domain"
	s3infra "github.com/bankass/awards-api/internal/infrastructure/s3"
	"github.com/bankass/awards-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldName          = "name"
	fieldAlias         = "alias"
	fieldImage         = "image"
	fieldBio           = "bio"
	fieldAchievements  = "achievements"
	fieldSongCount     = "song_count"
	fieldCandidateSong = "candidate_song"
	fieldAudioFile     = "audio_file"
)

// Media kinds accepted by UploadMedia and MediaURL.
const (
	MediaImage = "image"
	MediaAudio = "audio"
)

// mediaURLTTL bounds how long a presigned media link stays valid.
const mediaURLTTL = 15 * time.Minute

type Service interface {
	Create(ctx context.Context, req domain.CandidateInput) (*domain.Candidate, error)
	Get(ctx context.Context, candidateID string) (*domain.Candidate, error)
	List(ctx context.Context) ([]domain.Candidate, error)
	ListByCategory(ctx context.Context, categoryID string) ([]domain.Candidate, error)
	Update(ctx context.Context, candidateID string, req domain.UpdateCandidateRequest) (*domain.Candidate, error)
	Delete(ctx context.Context, candidateID string) error
	UploadMedia(ctx context.Context, candidateID, kind, filename string, r io.Reader) (string, error)
	MediaURL(ctx context.Context, candidateID, kind string) (string, error)
}

type candidateStore interface {
	Put(ctx context.Context, c *domain.Candidate) error
	Get(ctx context.Context, candidateID string) (*domain.Candidate, error)
	Scan(ctx context.Context) ([]domain.Candidate, error)
	ListByCategory(ctx context.Context, categoryID string) ([]domain.Candidate, error)
	Update(ctx context.Context, candidateID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, candidateID string) error
}

type categoryStore interface {
	Get(ctx context.Context, categoryID string) (*domain.Category, error)
}

type mediaStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type service struct {
	repo         candidateStore
	categoryRepo categoryStore
	media        mediaStore
}

type ServiceDeps struct {
	CandidateRepo candidateStore
	CategoryRepo  categoryStore
	MediaStore    mediaStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:         deps.CandidateRepo,
		categoryRepo: deps.CategoryRepo,
		media:        deps.MediaStore,
	}
}

func (s *service) Create(ctx context.Context, req domain.CandidateInput) (*domain.Candidate, error) {
	if _, err := s.categoryRepo.Get(ctx, req.CategoryID); err != nil {
		return nil, fmt.Errorf("category not found: %w", domain.ErrNotFound)
	}
	now := time.Now().UTC()
	c := &domain.Candidate{
		CandidateID:   id.New(),
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Alias:         req.Alias,
		Image:         req.Image,
		Bio:           req.Bio,
		Achievements:  req.Achievements,
		SongCount:     req.SongCount,
		CandidateSong: req.CandidateSong,
		AudioFile:     req.AudioFile,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, candidateID string) (*domain.Candidate, error) {
	return s.repo.Get(ctx, candidateID)
}

func (s *service) List(ctx context.Context) ([]domain.Candidate, error) {
	return s.repo.Scan(ctx)
}

func (s *service) ListByCategory(ctx context.Context, categoryID string) ([]domain.Candidate, error) {
	return s.repo.ListByCategory(ctx, categoryID)
}

func (s *service) Update(ctx context.Context, candidateID string, req domain.UpdateCandidateRequest) (*domain.Candidate, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.Alias != nil {
		updates[fieldAlias] = *req.Alias
	}
	if req.Image != nil {
		updates[fieldImage] = *req.Image
	}
	if req.Bio != nil {
		updates[fieldBio] = *req.Bio
	}
	if req.Achievements != nil {
		updates[fieldAchievements] = req.Achievements
	}
	if req.SongCount != nil {
		updates[fieldSongCount] = *req.SongCount
	}
	if req.CandidateSong != nil {
		updates[fieldCandidateSong] = *req.CandidateSong
	}
	if req.AudioFile != nil {
		updates[fieldAudioFile] = *req.AudioFile
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, candidateID)
	}
	if err := s.repo.Update(ctx, candidateID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, candidateID)
}

// Delete removes the candidate row and, best-effort, its media objects.
func (s *service) Delete(ctx context.Context, candidateID string) error {
	c, err := s.repo.Get(ctx, candidateID)
	if err != nil {
		return err
	}
	for _, url := range []string{c.Image, strValue(c.AudioFile)} {
		key := objectKey(url)
		if key == "" {
			continue
		}
		if err := s.media.Delete(ctx, key); err != nil {
			slog.Warn("failed to delete candidate media object", "candidate_id", candidateID, "key", key, "err", err)
		}
	}
	return s.repo.HardDelete(ctx, candidateID)
}

// UploadMedia stores a portrait image or an audio sample for the candidate
// and records the object URL on the candidate row.
func (s *service) UploadMedia(ctx context.Context, candidateID, kind, filename string, r io.Reader) (string, error) {
	if kind != MediaImage && kind != MediaAudio {
		return "", fmt.Errorf("unknown media kind %q: %w", kind, domain.ErrBadRequest)
	}
	if _, err := s.repo.Get(ctx, candidateID); err != nil {
		return "", err
	}
	key := fmt.Sprintf("candidates/%s/%s%s", candidateID, kind, path.Ext(filename))
	url, err := s.media.Upload(ctx, key, r, s3infra.DetectContentType(filename))
	if err != nil {
		return "", err
	}
	field := fieldImage
	if kind == MediaAudio {
		field = fieldAudioFile
	}
	if err := s.repo.Update(ctx, candidateID, map[string]interface{}{field: url}); err != nil {
		return "", err
	}
	return url, nil
}

// MediaURL returns a time-limited download link for the candidate's stored
// image or audio sample.
func (s *service) MediaURL(ctx context.Context, candidateID, kind string) (string, error) {
	if kind != MediaImage && kind != MediaAudio {
		return "", fmt.Errorf("unknown media kind %q: %w", kind, domain.ErrBadRequest)
	}
	c, err := s.repo.Get(ctx, candidateID)
	if err != nil {
		return "", err
	}
	url := c.Image
	if kind == MediaAudio {
		url = strValue(c.AudioFile)
	}
	key := objectKey(url)
	if key == "" {
		return "", fmt.Errorf("candidate has no %s: %w", kind, domain.ErrNotFound)
	}
	return s.media.PresignedURL(ctx, key, mediaURLTTL)
}

// objectKey extracts the object key from a stored s3://bucket/key URL.
// External URLs (or empty fields) yield "".
func objectKey(url string) string {
	rest, ok := strings.CutPrefix(url, "s3://")
	if !ok {
		return ""
	}
	_, key, ok := strings.Cut(rest, "/")
	if !ok {
		return ""
	}
	return key
}

func strValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
