package main

import (
	"context"

	"github.com/stayhaven/hotel-api/internal/domain/availability"
	"github.com/stayhaven/hotel-api/internal/domain/booking"
	"github.com/stayhaven/hotel-api/internal/pkg/email"
)

// bookingMailer adapts the email service to booking.Notifier
type bookingMailer struct {
	mail       *email.Service
	staffEmail string
}

func (m *bookingMailer) BookingSubmitted(ctx context.Context, b *booking.Booking) {
	data := email.BookingMail{
		Code:          b.Code,
		GuestName:     b.GuestName,
		GuestEmail:    b.UserEmail,
		GuestPhone:    b.GuestPhone,
		RoomName:      b.RoomName,
		CheckIn:       availability.FormatDate(b.CheckIn),
		CheckOut:      availability.FormatDate(b.CheckOut),
		Nights:        b.Nights,
		Rooms:         b.Rooms,
		Currency:      b.Currency,
		TotalAmount:   b.TotalAmount,
		PaidAmount:    b.PaidAmount,
		PendingAmount: b.PendingAmount,
		ScreenshotURL: b.ScreenshotURL,
	}
	m.mail.SendBookingReceived(data)
	m.mail.SendPaymentToVerify(m.staffEmail, data)
}
