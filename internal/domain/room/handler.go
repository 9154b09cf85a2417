package room

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stayhaven/hotel-api/internal/pkg/errorhandler"
	"github.com/stayhaven/hotel-api/internal/pkg/response"
)

// Handler handles room HTTP requests
type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /rooms
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.repo.List(r.Context())
	if err != nil {
		errorhandler.Internal(r.Context(), w, err, "failed to list rooms")
		return
	}

	items := make([]RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		items = append(items, RoomResponseFromEntity(room))
	}
	response.OK(w, items)
}

// GetByID handles GET /rooms/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	room, err := h.repo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			response.NotFound(w, "Room not found")
			return
		}
		errorhandler.Internal(r.Context(), w, err, "failed to load room")
		return
	}
	response.OK(w, RoomResponseFromEntity(room))
}

// Mount registers room routes on an existing router so other domains can
// hang sub-resources (availability) under /rooms/{id}.
func (h *Handler) Mount(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
}
