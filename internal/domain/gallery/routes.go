package gallery

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stayhaven/hotel-api/internal/middleware"
)

// Routes returns gallery router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireAdmin())
		r.Post("/", h.Add)
	})

	return r
}
