package user

import "time"

// SyncRequest for POST /users/me/sync
type SyncRequest struct {
	DisplayName string `json:"display_name" validate:"omitempty,max=200"`
	PhotoURL    string `json:"photo_url" validate:"omitempty,url,max=2048"`
}

// UserResponse represents the signed-in guest in API responses
type UserResponse struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	DisplayName   string     `json:"display_name,omitempty"`
	PhotoURL      string     `json:"photo_url,omitempty"`
	Role          Role       `json:"role"`
	BookingsCount int        `json:"bookings_count"`
	TotalSpend    int64      `json:"total_spend"`
	LastBookingAt *time.Time `json:"last_booking_at,omitempty"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func UserResponseFromEntity(u *User) UserResponse {
	resp := UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		DisplayName:   u.DisplayName.String,
		PhotoURL:      u.PhotoURL.String,
		Role:          u.Role,
		BookingsCount: u.BookingsCount,
		TotalSpend:    u.TotalSpend,
		CreatedAt:     u.CreatedAt,
	}
	if u.LastBookingAt.Valid {
		resp.LastBookingAt = &u.LastBookingAt.Time
	}
	if u.LastLoginAt.Valid {
		resp.LastLoginAt = &u.LastLoginAt.Time
	}
	return resp
}
