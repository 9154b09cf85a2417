package analytics

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stayhaven/hotel-api/internal/pkg/errorhandler"
	"github.com/stayhaven/hotel-api/internal/pkg/response"
	"github.com/stayhaven/hotel-api/internal/pkg/session"
	"github.com/stayhaven/hotel-api/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Record handles POST /visits
// @Summary Record a site visit
// @Tags Analytics
// @Accept json
// @Produce json
// @Param request body RecordRequest true "Visit"
// @Success 200 {object} response.Response{data=RecordResponse}
// @Router /visits [post]
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if req.VisitorID == "" {
		req.VisitorID = r.Header.Get("X-Visitor-ID")
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	client := Client{IP: clientIP(r), UserAgent: r.UserAgent()}
	result, err := h.service.RecordVisit(r.Context(), session.FromContext(r.Context()), client, &req)
	if err != nil {
		errorhandler.Internal(r.Context(), w, err, "failed to record visit")
		return
	}

	response.OK(w, result)
}

// clientIP reads RemoteAddr, which chi's RealIP middleware has already
// replaced with the forwarded address when one was present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Routes returns analytics router
func (h *Handler) Routes(optionalAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.With(optionalAuth).Post("/", h.Record)
	return r
}
