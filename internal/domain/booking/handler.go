package booking

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stayhaven/hotel-api/internal/domain/availability"
	"github.com/stayhaven/hotel-api/internal/domain/room"
	"github.com/stayhaven/hotel-api/internal/pkg/errorhandler"
	"github.com/stayhaven/hotel-api/internal/pkg/imagehost"
	"github.com/stayhaven/hotel-api/internal/pkg/response"
	"github.com/stayhaven/hotel-api/internal/pkg/session"
)

// multipartOverhead covers the JSON payload and form boundaries
const multipartOverhead = 1 << 20

// Handler handles booking HTTP requests
type Handler struct {
	service            *Service
	maxScreenshotBytes int64
}

// NewHandler creates booking handler
func NewHandler(service *Service, maxScreenshotBytes int64) *Handler {
	return &Handler{service: service, maxScreenshotBytes: maxScreenshotBytes}
}

// Quote handles POST /bookings/quote
// @Summary Validate a stay and price it
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body QuoteRequest true "Stay"
// @Success 200 {object} response.Response{data=QuoteResponse}
// @Failure 400,404,409,422 {object} response.Response
// @Router /bookings/quote [post]
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	quote, err := h.service.Quote(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.OK(w, quote)
}

// Submit handles POST /bookings
// Multipart form: "payload" holds the SubmitRequest JSON, "screenshot" the payment proof.
// @Summary Submit a booking with payment proof
// @Tags Booking
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response{data=BookingResponse}
// @Failure 400,401,404,409,422,502,500 {object} response.Response
// @Router /bookings [post]
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxScreenshotBytes+multipartOverhead)
	if err := r.ParseMultipartForm(multipartOverhead); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			response.Error(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Screenshot is too large")
			return
		}
		response.BadRequest(w, "Expected a multipart form with payload and screenshot")
		return
	}
	defer r.MultipartForm.RemoveAll()

	var req SubmitRequest
	if err := json.Unmarshal([]byte(r.FormValue("payload")), &req); err != nil {
		response.BadRequest(w, "Invalid booking payload")
		return
	}

	var proof io.Reader
	file, _, err := r.FormFile("screenshot")
	switch {
	case err == nil:
		defer file.Close()
		proof = file
	case errors.Is(err, http.ErrMissingFile):
	default:
		response.BadRequest(w, "Invalid screenshot upload")
		return
	}

	b, err := h.service.Submit(r.Context(), session.FromContext(r.Context()), &req, proof)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Created(w, BookingResponseFromEntity(b))
}

// List handles GET /bookings
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListMine(r.Context(), session.FromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	items := make([]BookingResponse, 0, len(list))
	for _, b := range list {
		items = append(items, BookingResponseFromEntity(b))
	}
	response.OK(w, items)
}

// GetByCode handles GET /bookings/{code}
func (h *Handler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(chi.URLParam(r, "code"))
	b, err := h.service.GetByCode(r.Context(), session.FromContext(r.Context()), code)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.OK(w, BookingResponseFromEntity(b))
}

// PaymentQR handles GET /bookings/payment-qr?amount=
func (h *Handler) PaymentQR(w http.ResponseWriter, r *http.Request) {
	amount, err := strconv.ParseInt(r.URL.Query().Get("amount"), 10, 64)
	if err != nil {
		response.BadRequest(w, ErrInvalidPaymentAmount.Error())
		return
	}

	png, err := h.service.PaymentQR(amount, r.URL.Query().Get("note"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	var validationErr *ValidationError
	var stockErr *availability.InsufficientStockError
	var uploadErr *imagehost.UploadError
	var persistErr *PersistenceError

	switch {
	case errors.Is(err, ErrAuthRequired):
		response.Error(w, http.StatusUnauthorized, "AUTH_REQUIRED", err.Error())
	case errors.As(err, &validationErr):
		errorhandler.LogValidationError(ctx, validationErr.Fields)
		response.ValidationError(w, validationErr.Fields)
	case errors.Is(err, ErrMissingScreenshot):
		response.ValidationError(w, map[string]string{"screenshot": err.Error()})
	case errors.As(err, &stockErr):
		response.ErrorWithDetails(w, http.StatusConflict, "INSUFFICIENT_STOCK", stockErr.Error(), map[string]string{
			"date":      availability.FormatDate(stockErr.Date),
			"available": strconv.Itoa(stockErr.Available),
			"requested": strconv.Itoa(stockErr.Requested),
		})
	case errors.Is(err, room.ErrRoomNotFound):
		response.NotFound(w, "Room not found")
	case errors.Is(err, ErrBookingNotFound):
		response.NotFound(w, "Booking not found")
	case errors.Is(err, ErrInvalidPaymentAmount):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrPaymentQRUnavailable):
		response.Error(w, http.StatusServiceUnavailable, "UPI_UNAVAILABLE", err.Error())
	case errors.As(err, &uploadErr):
		errorhandler.HandleError(ctx, w, http.StatusBadGateway, "UPLOAD_FAILED", uploadErr.Message, err)
	case errors.As(err, &persistErr):
		errorhandler.HandleError(ctx, w, http.StatusInternalServerError, "BOOKING_FAILED",
			"We could not save your booking. No payment details were stored; please try again.", err)
	default:
		errorhandler.Internal(ctx, w, err, "booking request failed")
	}
}
