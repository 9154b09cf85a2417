package booking

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/stayhaven/hotel-api/internal/domain/availability"
	"github.com/stayhaven/hotel-api/internal/domain/pricing"
	"github.com/stayhaven/hotel-api/internal/domain/room"
	"github.com/stayhaven/hotel-api/internal/pkg/imagehost"
	"github.com/stayhaven/hotel-api/internal/pkg/imaging"
	"github.com/stayhaven/hotel-api/internal/pkg/logger"
	"github.com/stayhaven/hotel-api/internal/pkg/session"
	"github.com/stayhaven/hotel-api/internal/pkg/validator"
)

// AdultsPerRoom is the most adults one room sleeps
const AdultsPerRoom = 3

// Availability is what the booking flow needs from the availability domain
type Availability interface {
	Today() time.Time
	Room(ctx context.Context, roomID string) (*room.Room, error)
	Snapshot(ctx context.Context, roomID string, from, to time.Time) (availability.Snapshot, error)
	NotifyReserved(ctx context.Context, roomID string, checkIn, checkOut time.Time)
}

// UserRecorder keeps the per-guest booking aggregate
type UserRecorder interface {
	RecordBooking(ctx context.Context, id, email string, total int64) error
}

// ScreenshotNormalizer prepares a payment screenshot for upload
type ScreenshotNormalizer interface {
	Normalize(r io.Reader) (*imaging.ProcessedImage, error)
}

// Notifier tells people about a submitted booking. Delivery is best-effort.
type Notifier interface {
	BookingSubmitted(ctx context.Context, b *Booking)
}

// Service orchestrates quoting and submitting bookings
type Service struct {
	repo     Repository
	avail    Availability
	users    UserRecorder
	host     imagehost.Host
	images   ScreenshotNormalizer
	upi      UPIConfig
	notifier Notifier
}

// NewService creates booking service
func NewService(repo Repository, avail Availability, users UserRecorder, host imagehost.Host, images ScreenshotNormalizer, upi UPIConfig) *Service {
	return &Service{
		repo:   repo,
		avail:  avail,
		users:  users,
		host:   host,
		images: images,
		upi:    upi,
	}
}

// SetNotifier registers who hears about new bookings; nil disables it
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// stay is a quote request that passed every check
type stay struct {
	room     *room.Room
	checkIn  time.Time
	checkOut time.Time
	nights   int
	price    pricing.Breakdown
}

// Quote validates a stay against current availability and prices it.
// Nothing is written.
func (s *Service) Quote(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}
	st, err := s.check(ctx, req)
	if err != nil {
		return nil, err
	}
	return quoteResponse(req, st), nil
}

func (s *Service) check(ctx context.Context, req *QuoteRequest) (*stay, error) {
	checkIn, err := availability.ParseDate(req.CheckIn)
	if err != nil {
		return nil, fieldError("check_in", availability.ErrInvalidDate.Error())
	}
	checkOut, err := availability.ParseDate(req.CheckOut)
	if err != nil {
		return nil, fieldError("check_out", availability.ErrInvalidDate.Error())
	}
	if !checkIn.Before(checkOut) {
		return nil, fieldError("check_out", availability.ErrEmptyStay.Error())
	}
	if availability.Nights(checkIn, checkOut) > availability.MaxRangeNights {
		return nil, fieldError("check_out", availability.ErrRangeTooLong.Error())
	}
	if err := availability.CheckSelectable(checkIn, s.avail.Today()); err != nil {
		return nil, fieldError("check_in", err.Error())
	}
	if need := RoomsRequired(req.Adults); req.Rooms < need {
		return nil, fieldError("rooms", roomsMessage(req.Adults, need))
	}

	rm, err := s.avail.Room(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	snap, err := s.avail.Snapshot(ctx, rm.ID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if err := availability.Validate(rm.Stock(), snap, checkIn, checkOut, req.Rooms); err != nil {
		return nil, err
	}

	nights := availability.Nights(checkIn, checkOut)
	price, err := pricing.Calculate(pricing.Input{
		NightlyPrice: rm.NightlyPrice,
		Rooms:        req.Rooms,
		Nights:       nights,
		PaymentType:  pricing.PaymentType(req.PaymentType),
	})
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidPaymentType) {
			return nil, fieldError("payment_type", err.Error())
		}
		return nil, err
	}

	return &stay{room: rm, checkIn: checkIn, checkOut: checkOut, nights: nights, price: price}, nil
}

// Submit places a booking for the signed-in guest.
//
// Checks run before any external call: a stay that fails validation never
// uploads its screenshot. The booking row and every night's reservation are
// written in one transaction, so a failure leaves no partial state. The guest
// aggregate is updated afterwards on a best-effort basis.
func (s *Service) Submit(ctx context.Context, sess session.Session, req *SubmitRequest, proof io.Reader) (*Booking, error) {
	if !sess.Authenticated() {
		return nil, ErrAuthRequired
	}
	if errs := validator.Validate(req); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}
	st, err := s.check(ctx, &req.QuoteRequest)
	if err != nil {
		return nil, err
	}
	if proof == nil {
		return nil, ErrMissingScreenshot
	}

	img, err := s.images.Normalize(proof)
	if err != nil {
		switch {
		case errors.Is(err, imaging.ErrNotImage):
			return nil, fieldError("screenshot", "Upload a JPEG, PNG or GIF image")
		case errors.Is(err, imaging.ErrTooLarge):
			return nil, fieldError("screenshot", "Screenshot is too large")
		}
		return nil, err
	}

	uploaded, err := s.host.Upload(ctx, "payment-proof"+img.Extension, bytes.NewReader(img.Data), img.ContentType)
	if err != nil {
		return nil, err
	}

	b := newBooking(sess, req, st, uploaded.URL)
	l := logger.FromContext(ctx).With().
		Str("user_id", sess.UserID).
		Str("room_id", b.RoomID).
		Logger()

	if err := s.repo.Create(ctx, b, st.room.Stock()); err != nil {
		var stockErr *availability.InsufficientStockError
		if errors.As(err, &stockErr) {
			l.Warn().Str("date", availability.FormatDate(stockErr.Date)).Msg("booking lost race for last rooms")
			return nil, err
		}
		l.Error().Err(err).Msg("failed to store booking")
		return nil, &PersistenceError{Op: "create", Err: err}
	}

	l.Info().
		Str("booking_code", b.Code).
		Str("check_in", req.CheckIn).
		Str("check_out", req.CheckOut).
		Int("rooms", b.Rooms).
		Int64("total", b.TotalAmount).
		Msg("booking submitted")

	s.avail.NotifyReserved(ctx, b.RoomID, b.CheckIn, b.CheckOut)

	if err := s.users.RecordBooking(ctx, sess.UserID, sess.Email, b.TotalAmount); err != nil {
		l.Error().Err(err).Str("booking_code", b.Code).Msg("failed to update guest booking totals")
	}

	if s.notifier != nil {
		s.notifier.BookingSubmitted(ctx, b)
	}

	return b, nil
}

// GetByCode returns a booking if it belongs to the caller (admins see all)
func (s *Service) GetByCode(ctx context.Context, sess session.Session, code string) (*Booking, error) {
	if !sess.Authenticated() {
		return nil, ErrAuthRequired
	}
	if !ValidCode(code) {
		return nil, ErrBookingNotFound
	}
	b, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !b.OwnedBy(sess.UserID) && !sess.IsAdmin() {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

// ListMine returns the caller's bookings, newest first
func (s *Service) ListMine(ctx context.Context, sess session.Session) ([]*Booking, error) {
	if !sess.Authenticated() {
		return nil, ErrAuthRequired
	}
	return s.repo.ListByUser(ctx, sess.UserID)
}

// RoomsRequired is the fewest rooms that sleep the given adults
func RoomsRequired(adults int) int {
	if adults < 1 {
		return 1
	}
	return (adults + AdultsPerRoom - 1) / AdultsPerRoom
}

func roomsMessage(adults, need int) string {
	if need == 1 {
		return "At least 1 room is required"
	}
	return fmt.Sprintf("At least %d rooms are required for %d adults", need, adults)
}

func newBooking(sess session.Session, req *SubmitRequest, st *stay, screenshotURL string) *Booking {
	return &Booking{
		ID:     uuid.New(),
		Status: StatusPending,

		UserID:     sess.UserID,
		UserEmail:  sess.Email,
		GuestName:  req.GuestName,
		GuestPhone: req.Phone,

		RoomID:       st.room.ID,
		RoomName:     st.room.Name,
		RoomImage:    st.room.ImageURL,
		NightlyPrice: st.room.NightlyPrice,

		CheckIn:  st.checkIn,
		CheckOut: st.checkOut,
		Nights:   st.nights,
		Adults:   req.Adults,
		Children: req.Children,
		Rooms:    req.Rooms,

		PaymentMethod: PaymentMethodUPIManual,
		PaymentType:   string(st.price.PaymentType),
		PaymentStatus: PaymentVerificationPending,
		Currency:      st.price.Currency,
		BaseAmount:    st.price.BasePrice,
		GSTPercent:    st.price.GSTPercent,
		TaxAmount:     st.price.TaxAmount,
		TotalAmount:   st.price.TotalPrice,
		AdvanceAmount: st.price.AdvanceAmount,
		PaidAmount:    st.price.PayableAmount,
		PendingAmount: st.price.PendingAmount,
		ScreenshotURL: screenshotURL,
	}
}

func quoteResponse(req *QuoteRequest, st *stay) *QuoteResponse {
	return &QuoteResponse{
		RoomID:   st.room.ID,
		RoomName: st.room.Name,
		CheckIn:  availability.FormatDate(st.checkIn),
		CheckOut: availability.FormatDate(st.checkOut),
		Nights:   st.nights,
		Adults:   req.Adults,
		Children: req.Children,
		Rooms:    req.Rooms,
		Pricing:  st.price,
	}
}
