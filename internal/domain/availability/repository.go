package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Repository reads booked counts per night
type Repository interface {
	Snapshot(ctx context.Context, roomID string, from, to time.Time) (Snapshot, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

type bookedRow struct {
	Date        time.Time `db:"date"`
	BookedCount int       `db:"booked_count"`
}

// Snapshot returns booked counts for nights in [from, to)
func (r *repository) Snapshot(ctx context.Context, roomID string, from, to time.Time) (Snapshot, error) {
	var rows []bookedRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT date, booked_count
		FROM room_availability
		WHERE room_id = $1 AND date >= $2 AND date < $3
	`, roomID, from, to)
	if err != nil {
		return nil, fmt.Errorf("availability snapshot: %w", err)
	}

	snap := make(Snapshot, len(rows))
	for _, row := range rows {
		snap[FormatDate(row.Date)] = row.BookedCount
	}
	return snap, nil
}

// Reserve books rooms on every night in [checkIn, checkOut) inside tx.
//
// Nights are locked in ascending order so concurrent reservations cannot
// deadlock. Each increment is conditional on staying within stock; the first
// night that would overflow aborts with *InsufficientStockError and the
// caller must roll tx back.
func Reserve(ctx context.Context, tx *sqlx.Tx, roomID string, stock int, checkIn, checkOut time.Time, rooms int) error {
	for _, d := range DatesInRange(checkIn, checkOut) {
		if rooms > stock {
			return insufficient(ctx, tx, roomID, stock, d, rooms)
		}

		var booked int
		err := tx.GetContext(ctx, &booked, `
			INSERT INTO room_availability (room_id, date, booked_count)
			VALUES ($1, $2, $3)
			ON CONFLICT (room_id, date) DO UPDATE
			SET booked_count = room_availability.booked_count + EXCLUDED.booked_count,
			    updated_at = NOW()
			WHERE room_availability.booked_count + EXCLUDED.booked_count <= $4
			RETURNING booked_count
		`, roomID, d, rooms, stock)
		if errors.Is(err, sql.ErrNoRows) {
			return insufficient(ctx, tx, roomID, stock, d, rooms)
		}
		if err != nil {
			return fmt.Errorf("reserve %s: %w", FormatDate(d), err)
		}
	}
	return nil
}

func insufficient(ctx context.Context, tx *sqlx.Tx, roomID string, stock int, d time.Time, rooms int) error {
	var booked int
	err := tx.GetContext(ctx, &booked, `
		SELECT booked_count FROM room_availability WHERE room_id = $1 AND date = $2
	`, roomID, d)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("reserve %s: %w", FormatDate(d), err)
	}
	return &InsufficientStockError{Date: d, Available: Available(stock, booked), Requested: rooms}
}
