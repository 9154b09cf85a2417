package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/stayhaven/hotel-api/internal/domain/availability"
	"github.com/stayhaven/hotel-api/internal/domain/pricing"
)

// QuoteRequest for POST /bookings/quote
type QuoteRequest struct {
	RoomID      string `json:"room_id" validate:"required,max=64"`
	CheckIn     string `json:"check_in" validate:"required,date"`
	CheckOut    string `json:"check_out" validate:"required,date"`
	Adults      int    `json:"adults" validate:"required,gte=1,lte=30"`
	Children    int    `json:"children" validate:"gte=0,lte=20"`
	Rooms       int    `json:"rooms" validate:"required,gte=1,lte=20"`
	PaymentType string `json:"payment_type" validate:"payment_type"`
}

// SubmitRequest is the JSON "payload" part of POST /bookings
type SubmitRequest struct {
	QuoteRequest
	GuestName string `json:"guest_name" validate:"required,min=2,max=100"`
	Phone     string `json:"phone" validate:"required,phone"`
}

// QuoteResponse is the validated stay and its price
type QuoteResponse struct {
	RoomID   string            `json:"room_id"`
	RoomName string            `json:"room_name"`
	CheckIn  string            `json:"check_in"`
	CheckOut string            `json:"check_out"`
	Nights   int               `json:"nights"`
	Adults   int               `json:"adults"`
	Children int               `json:"children"`
	Rooms    int               `json:"rooms"`
	Pricing  pricing.Breakdown `json:"pricing"`
}

type GuestResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type StayResponse struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Nights   int    `json:"nights"`
	Adults   int    `json:"adults"`
	Children int    `json:"children"`
	Rooms    int    `json:"rooms"`
}

type RoomResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Image        string `json:"image,omitempty"`
	NightlyPrice int64  `json:"nightly_price"`
}

type PaymentResponse struct {
	Method        string        `json:"method"`
	Type          string        `json:"type"`
	Status        PaymentStatus `json:"status"`
	Currency      string        `json:"currency"`
	BaseAmount    int64         `json:"base_amount"`
	GSTPercent    int64         `json:"gst_percent"`
	TaxAmount     int64         `json:"tax_amount"`
	TotalAmount   int64         `json:"total_amount"`
	AdvanceAmount int64         `json:"advance_amount"`
	PaidAmount    int64         `json:"paid_amount"`
	PendingAmount int64         `json:"pending_amount"`
	ScreenshotURL string        `json:"screenshot_url"`
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID        uuid.UUID       `json:"id"`
	Code      string          `json:"code"`
	Status    Status          `json:"status"`
	Guest     GuestResponse   `json:"guest"`
	Stay      StayResponse    `json:"stay"`
	Room      RoomResponse    `json:"room"`
	Payment   PaymentResponse `json:"payment"`
	CreatedAt time.Time       `json:"created_at"`
}

func BookingResponseFromEntity(b *Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Code:   b.Code,
		Status: b.Status,
		Guest: GuestResponse{
			Name:  b.GuestName,
			Email: b.UserEmail,
			Phone: b.GuestPhone,
		},
		Stay: StayResponse{
			CheckIn:  availability.FormatDate(b.CheckIn),
			CheckOut: availability.FormatDate(b.CheckOut),
			Nights:   b.Nights,
			Adults:   b.Adults,
			Children: b.Children,
			Rooms:    b.Rooms,
		},
		Room: RoomResponse{
			ID:           b.RoomID,
			Name:         b.RoomName,
			Image:        b.RoomImage,
			NightlyPrice: b.NightlyPrice,
		},
		Payment: PaymentResponse{
			Method:        b.PaymentMethod,
			Type:          b.PaymentType,
			Status:        b.PaymentStatus,
			Currency:      b.Currency,
			BaseAmount:    b.BaseAmount,
			GSTPercent:    b.GSTPercent,
			TaxAmount:     b.TaxAmount,
			TotalAmount:   b.TotalAmount,
			AdvanceAmount: b.AdvanceAmount,
			PaidAmount:    b.PaidAmount,
			PendingAmount: b.PendingAmount,
			ScreenshotURL: b.ScreenshotURL,
		},
		CreatedAt: b.CreatedAt,
	}
}
