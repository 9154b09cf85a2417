package room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines room data access interface
type Repository interface {
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context) ([]*Room, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new room repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const roomColumns = `id, name, description, nightly_price, total_stock, image_url, images, created_at, updated_at`

func (r *repository) GetByID(ctx context.Context, id string) (*Room, error) {
	var room Room
	err := r.db.GetContext(ctx, &room, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("room repository get: %w", err)
	}
	return &room, nil
}

// List returns all room types, cheapest first
func (r *repository) List(ctx context.Context) ([]*Room, error) {
	var rooms []*Room
	err := r.db.SelectContext(ctx, &rooms, `SELECT `+roomColumns+` FROM rooms ORDER BY nightly_price ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("room repository list: %w", err)
	}
	return rooms, nil
}
