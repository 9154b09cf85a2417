package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/stayhaven/hotel-api/internal/domain/availability"
)

// MaxCodeAttempts bounds retries when a generated code is already taken
const MaxCodeAttempts = 5

// Repository defines booking data access interface
type Repository interface {
	// Create stores b and reserves its rooms in one transaction. b.Code is
	// assigned here. Returns *availability.InsufficientStockError when a
	// night is already full, with nothing written.
	Create(ctx context.Context, b *Booking, stock int) error
	GetByCode(ctx context.Context, code string) (*Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*Booking, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

var errCodeTaken = errors.New("booking code taken")

func (r *repository) Create(ctx context.Context, b *Booking, stock int) error {
	for attempt := 0; attempt < MaxCodeAttempts; attempt++ {
		code, err := GenerateCode()
		if err != nil {
			return err
		}
		b.Code = code

		err = r.create(ctx, b, stock)
		if errors.Is(err, errCodeTaken) {
			continue
		}
		return err
	}
	return ErrCodeExhausted
}

func (r *repository) create(ctx context.Context, b *Booking, stock int) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertBooking(ctx, tx, b); err != nil {
		return err
	}

	if err := availability.Reserve(ctx, tx, b.RoomID, stock, b.CheckIn, b.CheckOut, b.Rooms); err != nil {
		return err
	}

	return tx.Commit()
}

func insertBooking(ctx context.Context, tx *sqlx.Tx, b *Booking) error {
	query := `
		INSERT INTO bookings (
			id, code, status, user_id, user_email, guest_name, guest_phone,
			room_id, room_name, room_image, nightly_price,
			check_in, check_out, nights, adults, children, rooms,
			payment_method, payment_type, payment_status, currency,
			base_amount, gst_percent, tax_amount, total_amount,
			advance_amount, paid_amount, pending_amount, screenshot_url
		) VALUES (
			:id, :code, :status, :user_id, :user_email, :guest_name, :guest_phone,
			:room_id, :room_name, :room_image, :nightly_price,
			:check_in, :check_out, :nights, :adults, :children, :rooms,
			:payment_method, :payment_type, :payment_status, :currency,
			:base_amount, :gst_percent, :tax_amount, :total_amount,
			:advance_amount, :paid_amount, :pending_amount, :screenshot_url
		)
		RETURNING created_at, updated_at`

	stmt, err := tx.PrepareNamedContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	if err := stmt.QueryRowxContext(ctx, b).Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "bookings_code_key" {
			return errCodeTaken
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

const bookingColumns = `id, code, status, user_id, user_email, guest_name, guest_phone,
	room_id, room_name, room_image, nightly_price,
	check_in, check_out, nights, adults, children, rooms,
	payment_method, payment_type, payment_status, currency,
	base_amount, gst_percent, tax_amount, total_amount,
	advance_amount, paid_amount, pending_amount, screenshot_url,
	created_at, updated_at`

func (r *repository) GetByCode(ctx context.Context, code string) (*Booking, error) {
	var b Booking
	err := r.db.GetContext(ctx, &b, `SELECT `+bookingColumns+` FROM bookings WHERE code = $1`, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("booking repository get: %w", err)
	}
	return &b, nil
}

// ListByUser returns a guest's bookings, newest first
func (r *repository) ListByUser(ctx context.Context, userID string) ([]*Booking, error) {
	var list []*Booking
	err := r.db.SelectContext(ctx, &list, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("booking repository list: %w", err)
	}
	return list, nil
}
