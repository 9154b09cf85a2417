package analytics

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository stores site visits
type Repository interface {
	Create(ctx context.Context, v *Visit) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, v *Visit) error {
	query := `
		INSERT INTO site_visits (
			id, visitor_id, ip, user_agent, platform, screen_resolution,
			user_id, user_email, path, referrer
		) VALUES (
			:id, :visitor_id, :ip, :user_agent, :platform, :screen_resolution,
			:user_id, :user_email, :path, :referrer
		)
		RETURNING created_at`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	if err := stmt.QueryRowxContext(ctx, v).Scan(&v.CreatedAt); err != nil {
		return fmt.Errorf("visit repository create: %w", err)
	}
	return nil
}
