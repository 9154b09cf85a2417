package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns booking router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Public routes
	r.Post("/quote", h.Quote)
	r.Get("/payment-qr", h.PaymentQR)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Submit)
		r.Get("/", h.List)
		r.Get("/{code}", h.GetByCode)
	})

	return r
}
