package booking

import (
	"time"

	"github.com/google/uuid"
)

// Status of a booking (pending until staff approve it elsewhere)
type Status string

const (
	StatusPending Status = "pending"
)

type PaymentStatus string

const (
	PaymentVerificationPending PaymentStatus = "verification_pending"
)

// PaymentMethodUPIManual: the guest pays by UPI QR and uploads a screenshot
const PaymentMethodUPIManual = "upi_qr_manual"

// Booking is a submitted stay with its price and payment proof
type Booking struct {
	ID     uuid.UUID `db:"id"`
	Code   string    `db:"code"`
	Status Status    `db:"status"`

	UserID     string `db:"user_id"`
	UserEmail  string `db:"user_email"`
	GuestName  string `db:"guest_name"`
	GuestPhone string `db:"guest_phone"`

	RoomID       string `db:"room_id"`
	RoomName     string `db:"room_name"`
	RoomImage    string `db:"room_image"`
	NightlyPrice int64  `db:"nightly_price"`

	CheckIn  time.Time `db:"check_in"`
	CheckOut time.Time `db:"check_out"`
	Nights   int       `db:"nights"`
	Adults   int       `db:"adults"`
	Children int       `db:"children"`
	Rooms    int       `db:"rooms"`

	PaymentMethod string        `db:"payment_method"`
	PaymentType   string        `db:"payment_type"`
	PaymentStatus PaymentStatus `db:"payment_status"`
	Currency      string        `db:"currency"`
	BaseAmount    int64         `db:"base_amount"`
	GSTPercent    int64         `db:"gst_percent"`
	TaxAmount     int64         `db:"tax_amount"`
	TotalAmount   int64         `db:"total_amount"`
	AdvanceAmount int64         `db:"advance_amount"`
	PaidAmount    int64         `db:"paid_amount"`
	PendingAmount int64         `db:"pending_amount"`
	ScreenshotURL string        `db:"screenshot_url"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// OwnedBy reports whether userID placed this booking
func (b *Booking) OwnedBy(userID string) bool {
	return userID != "" && b.UserID == userID
}
