package gallery

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/stayhaven/hotel-api/internal/pkg/imagehost"
	"github.com/stayhaven/hotel-api/internal/pkg/imaging"
	"github.com/stayhaven/hotel-api/internal/pkg/logger"
)

// Normalizer prepares an uploaded photo for the image host
type Normalizer interface {
	Normalize(r io.Reader) (*imaging.ProcessedImage, error)
}

// Service handles gallery business logic
type Service struct {
	repo   Repository
	host   imagehost.Host
	images Normalizer
}

func NewService(repo Repository, host imagehost.Host, images Normalizer) *Service {
	return &Service{repo: repo, host: host, images: images}
}

// List returns gallery images, optionally narrowed to one category.
// "Pool Side", "pool-side" and "POOL SIDE" all select the same category.
func (s *Service) List(ctx context.Context, category string) (*ListResponse, error) {
	images, err := s.repo.List(ctx, CategorySlug(category))
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]ImageResponse, 0, len(images))
	for _, img := range images {
		items = append(items, ImageResponseFromEntity(img))
	}
	if categories == nil {
		categories = []string{}
	}
	return &ListResponse{Images: items, Categories: categories}, nil
}

// Add uploads a photo to the image host and publishes it in the gallery
func (s *Service) Add(ctx context.Context, req *AddRequest, file io.Reader, uploadedBy string) (*Image, error) {
	if file == nil {
		return nil, ErrMissingFile
	}

	processed, err := s.images.Normalize(file)
	if err != nil {
		switch {
		case errors.Is(err, imaging.ErrNotImage):
			return nil, ErrInvalidFormat
		case errors.Is(err, imaging.ErrTooLarge):
			return nil, ErrFileTooLarge
		}
		return nil, err
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = DefaultCategory
	}
	alt := strings.TrimSpace(req.Alt)
	if alt == "" {
		alt = DefaultAlt
	}

	img := &Image{
		ID:           uuid.New(),
		Category:     category,
		CategorySlug: CategorySlug(category),
		Alt:          alt,
	}

	uploaded, err := s.host.Upload(ctx, "gallery-"+img.CategorySlug+processed.Extension, bytes.NewReader(processed.Data), processed.ContentType)
	if err != nil {
		return nil, err
	}
	img.Src = uploaded.URL

	if err := s.repo.Create(ctx, img); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("image_id", img.ID.String()).
		Str("category", img.Category).
		Str("uploaded_by", uploadedBy).
		Msg("gallery image added")

	return img, nil
}

// CategorySlug is the lookup key for a category name
func CategorySlug(category string) string {
	return slug.Make(strings.TrimSpace(category))
}
