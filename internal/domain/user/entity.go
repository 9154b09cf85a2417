package user

import (
	"database/sql"
	"time"
)

// Role represents user role in the system
type Role string

const (
	RoleGuest Role = "user"
	RoleAdmin Role = "admin"
)

// User mirrors a guest account of the identity provider together with the
// lifetime booking aggregate kept for them. ID is the provider's subject.
type User struct {
	ID          string         `db:"id"`
	Email       string         `db:"email"`
	DisplayName sql.NullString `db:"display_name"`
	PhotoURL    sql.NullString `db:"photo_url"`
	Role        Role           `db:"role"`

	BookingsCount int          `db:"bookings_count"`
	TotalSpend    int64        `db:"total_spend"`
	LastBookingAt sql.NullTime `db:"last_booking_at"`
	LastLoginAt   sql.NullTime `db:"last_login_at"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsAdmin returns true if user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
