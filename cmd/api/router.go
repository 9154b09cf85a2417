package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/stayhaven/hotel-api/internal/config"
	"github.com/stayhaven/hotel-api/internal/domain/analytics"
	"github.com/stayhaven/hotel-api/internal/domain/availability"
	"github.com/stayhaven/hotel-api/internal/domain/booking"
	"github.com/stayhaven/hotel-api/internal/domain/gallery"
	"github.com/stayhaven/hotel-api/internal/domain/room"
	"github.com/stayhaven/hotel-api/internal/domain/user"
	"github.com/stayhaven/hotel-api/internal/middleware"
	"github.com/stayhaven/hotel-api/internal/pkg/jwt"
	"github.com/stayhaven/hotel-api/internal/pkg/response"
)

type handlers struct {
	room         *room.Handler
	availability *availability.Handler
	booking      *booking.Handler
	user         *user.Handler
	gallery      *gallery.Handler
	analytics    *analytics.Handler
}

func newRouter(cfg *config.Config, jwtService *jwt.Service, h handlers) chi.Router {
	authMiddleware := middleware.Auth(jwtService)
	optionalAuth := middleware.OptionalAuth(jwtService)

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/rooms", func(r chi.Router) {
			h.room.Mount(r)
			h.availability.Mount(r)
		})
		r.Mount("/bookings", h.booking.Routes(authMiddleware))
		r.Mount("/users", h.user.Routes(authMiddleware))
		r.Mount("/gallery", h.gallery.Routes(authMiddleware))
		r.Mount("/visits", h.analytics.Routes(optionalAuth))
	})

	return r
}
