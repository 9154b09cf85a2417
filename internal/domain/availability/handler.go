package availability

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/stayhaven/hotel-api/internal/domain/room"
	"github.com/stayhaven/hotel-api/internal/pkg/errorhandler"
	"github.com/stayhaven/hotel-api/internal/pkg/logger"
	"github.com/stayhaven/hotel-api/internal/pkg/response"
)

// DefaultWindowNights is the calendar span returned when "to" is omitted
const DefaultWindowNights = 30

// Handler handles availability HTTP requests
type Handler struct {
	service  *Service
	feed     *Feed
	upgrader websocket.Upgrader
}

func NewHandler(service *Service, feed *Feed, allowedOrigins []string) *Handler {
	return &Handler{
		service: service,
		feed:    feed,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || strings.EqualFold(allowed, origin) {
						return true
					}
				}
				return false
			},
		},
	}
}

// Calendar handles GET /rooms/{id}/availability?from=&to=
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	from := h.service.Today()
	if v := r.URL.Query().Get("from"); v != "" {
		d, err := ParseDate(v)
		if err != nil {
			response.BadRequest(w, ErrInvalidDate.Error())
			return
		}
		from = d
	}
	to := from.AddDate(0, 0, DefaultWindowNights)
	if v := r.URL.Query().Get("to"); v != "" {
		d, err := ParseDate(v)
		if err != nil {
			response.BadRequest(w, ErrInvalidDate.Error())
			return
		}
		to = d
	}

	cal, err := h.service.RoomCalendar(r.Context(), chi.URLParam(r, "id"), from, to)
	if err != nil {
		switch {
		case errors.Is(err, room.ErrRoomNotFound):
			response.NotFound(w, "Room not found")
		case errors.Is(err, ErrInvalidRange), errors.Is(err, ErrRangeTooLong):
			response.BadRequest(w, err.Error())
		default:
			errorhandler.Internal(r.Context(), w, err, "failed to load availability")
		}
		return
	}

	response.OK(w, cal)
}

// Watch handles GET /rooms/{id}/availability/ws
func (h *Handler) Watch(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "id")
	if _, err := h.service.Room(r.Context(), roomID); err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			response.NotFound(w, "Room not found")
			return
		}
		errorhandler.Internal(r.Context(), w, err, "failed to load room")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.FromContext(r.Context()).Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	h.feed.Serve(roomID, conn)
}

// Mount registers availability routes under a /rooms router
func (h *Handler) Mount(r chi.Router) {
	r.Get("/{id}/availability", h.Calendar)
	r.Get("/{id}/availability/ws", h.Watch)
}
