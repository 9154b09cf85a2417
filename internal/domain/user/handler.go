package user

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stayhaven/hotel-api/internal/pkg/errorhandler"
	"github.com/stayhaven/hotel-api/internal/pkg/response"
	"github.com/stayhaven/hotel-api/internal/pkg/session"
	"github.com/stayhaven/hotel-api/internal/pkg/validator"
)

// Handler handles user HTTP requests
type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// Sync handles POST /users/me/sync
// Called by the frontend right after the identity provider signs the guest in.
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if !sess.Authenticated() {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	u, err := h.repo.Upsert(r.Context(), Profile{
		ID:          sess.UserID,
		Email:       sess.Email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		errorhandler.Internal(r.Context(), w, err, "failed to sync user")
		return
	}

	response.OK(w, UserResponseFromEntity(u))
}

// Me handles GET /users/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if !sess.Authenticated() {
		response.Unauthorized(w, "Authentication required")
		return
	}

	u, err := h.repo.GetByID(r.Context(), sess.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		errorhandler.Internal(r.Context(), w, err, "failed to load user")
		return
	}

	response.OK(w, UserResponseFromEntity(u))
}

// Routes returns user router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Post("/me/sync", h.Sync)
	r.Get("/me", h.Me)
	return r
}
