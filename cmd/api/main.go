package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog/log"

	"github.com/stayhaven/hotel-api/internal/config"
	"github.com/stayhaven/hotel-api/internal/domain/analytics"
	"github.com/stayhaven/hotel-api/internal/domain/availability"
	"github.com/stayhaven/hotel-api/internal/domain/booking"
	"github.com/stayhaven/hotel-api/internal/domain/gallery"
	"github.com/stayhaven/hotel-api/internal/domain/room"
	"github.com/stayhaven/hotel-api/internal/domain/user"
	"github.com/stayhaven/hotel-api/internal/pkg/database"
	"github.com/stayhaven/hotel-api/internal/pkg/email"
	"github.com/stayhaven/hotel-api/internal/pkg/imagehost"
	"github.com/stayhaven/hotel-api/internal/pkg/imaging"
	"github.com/stayhaven/hotel-api/internal/pkg/jwt"
	"github.com/stayhaven/hotel-api/internal/pkg/logger"
	"github.com/stayhaven/hotel-api/migrations"
)

func main() {
	migrate := flag.Bool("migrate", false, "apply the embedded schema before serving")
	flag.Parse()

	cfg := config.Load()
	if err := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		LogFile:     cfg.LogFile,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialise logger")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("timezone", cfg.HotelTimezone).
		Msg("Starting hotel API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	if *migrate {
		if err := database.Migrate(context.Background(), db, migrations.FS); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
	}

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	host, err := imagehost.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("provider", cfg.ImageHost).Msg("Failed to configure image host")
	}

	images := imaging.NewProcessor(imaging.Config{MaxBytes: cfg.MaxScreenshotBytes})
	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTIssuer, time.Hour)

	// ---------- Repositories ----------
	roomRepo := room.NewRepository(db)
	availabilityRepo := availability.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	userRepo := user.NewRepository(db)
	galleryRepo := gallery.NewRepository(db)
	visitRepo := analytics.NewRepository(db)

	// ---------- Availability feed ----------
	feed := availability.NewFeed(redis)
	go feed.Run()
	defer feed.Close()

	// ---------- Services ----------
	availabilityService := availability.NewService(
		availabilityRepo,
		availability.NewRedisCache(redis, cfg.AvailabilityCacheTTL),
		roomRepo,
		feed,
		cfg.Location(),
	)
	bookingService := booking.NewService(bookingRepo, availabilityService, userRepo, host, images, booking.UPIConfig{
		VPA:       cfg.UPIVPA,
		PayeeName: cfg.UPIPayeeName,
	})
	if cfg.SendGridAPIKey != "" {
		mailService := email.NewService(email.NewSendGridClient(email.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailFromName,
		}))
		defer mailService.Close()
		bookingService.SetNotifier(&bookingMailer{mail: mailService, staffEmail: cfg.StaffEmail})
	} else {
		log.Warn().Msg("SENDGRID_API_KEY not set, booking emails disabled")
	}
	galleryService := gallery.NewService(galleryRepo, host, images)
	visitService := analytics.NewService(visitRepo, analytics.NewRedisDeduper(redis, cfg.VisitWindow))

	r := newRouter(cfg, jwtService, handlers{
		room:         room.NewHandler(roomRepo),
		availability: availability.NewHandler(availabilityService, feed, cfg.AllowedOrigins),
		booking:      booking.NewHandler(bookingService, cfg.MaxScreenshotBytes),
		user:         user.NewHandler(userRepo),
		gallery:      gallery.NewHandler(galleryService, cfg.MaxScreenshotBytes),
		analytics:    analytics.NewHandler(visitService),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
