package gallery

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines gallery data access interface
type Repository interface {
	Create(ctx context.Context, img *Image) error
	// List returns images newest first. An empty slug lists every category.
	List(ctx context.Context, categorySlug string) ([]*Image, error)
	Categories(ctx context.Context) ([]string, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, img *Image) error {
	query := `
		INSERT INTO gallery_images (id, src, category, category_slug, alt)
		VALUES (:id, :src, :category, :category_slug, :alt)
		RETURNING created_at`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	if err := stmt.QueryRowxContext(ctx, img).Scan(&img.CreatedAt); err != nil {
		return fmt.Errorf("gallery repository create: %w", err)
	}
	return nil
}

func (r *repository) List(ctx context.Context, categorySlug string) ([]*Image, error) {
	var images []*Image
	err := r.db.SelectContext(ctx, &images, `
		SELECT id, src, category, category_slug, alt, created_at
		FROM gallery_images
		WHERE $1 = '' OR category_slug = $1
		ORDER BY created_at DESC
	`, categorySlug)
	if err != nil {
		return nil, fmt.Errorf("gallery repository list: %w", err)
	}
	return images, nil
}

func (r *repository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.SelectContext(ctx, &categories, `
		SELECT category FROM gallery_images
		GROUP BY category
		ORDER BY MIN(created_at)
	`)
	if err != nil {
		return nil, fmt.Errorf("gallery repository categories: %w", err)
	}
	return categories, nil
}
