package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines user data access interface
type Repository interface {
	// Upsert merges a sign-in profile into the user row, creating it if needed.
	Upsert(ctx context.Context, p Profile) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	// RecordBooking bumps the lifetime aggregate, creating the row if the
	// user never synced their profile.
	RecordBooking(ctx context.Context, id, email string, total int64) error
}

// Profile is what the identity provider tells us at sign-in
type Profile struct {
	ID          string
	Email       string
	DisplayName string
	PhotoURL    string
}

// repository implements Repository
type repository struct {
	db *sqlx.DB
}

// NewRepository creates new user repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const userColumns = `id, email, display_name, photo_url, role, bookings_count, total_spend,
	last_booking_at, last_login_at, created_at, updated_at`

func (r *repository) Upsert(ctx context.Context, p Profile) (*User, error) {
	query := `
		INSERT INTO users (id, email, display_name, photo_url, last_login_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NOW())
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email,
		    display_name = COALESCE(EXCLUDED.display_name, users.display_name),
		    photo_url = COALESCE(EXCLUDED.photo_url, users.photo_url),
		    last_login_at = NOW(),
		    updated_at = NOW()
		RETURNING ` + userColumns

	var u User
	if err := r.db.GetContext(ctx, &u, query, p.ID, p.Email, p.DisplayName, p.PhotoURL); err != nil {
		return nil, fmt.Errorf("user repository upsert: %w", err)
	}
	return &u, nil
}

// GetByID returns user by ID
func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository get: %w", err)
	}
	return &u, nil
}

func (r *repository) RecordBooking(ctx context.Context, id, email string, total int64) error {
	if total < 0 {
		return ErrInvalidSpend
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, bookings_count, total_spend, last_booking_at)
		VALUES ($1, $2, 1, $3, NOW())
		ON CONFLICT (id) DO UPDATE
		SET bookings_count = users.bookings_count + 1,
		    total_spend = users.total_spend + EXCLUDED.total_spend,
		    last_booking_at = NOW(),
		    updated_at = NOW()
	`, id, email, total)
	if err != nil {
		return fmt.Errorf("user repository record booking: %w", err)
	}
	return nil
}
