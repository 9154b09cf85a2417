// Command debug-session checks the local database schema and mints a session
// token for a guest or staff account, for calling the API without the
// identity provider during development.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/stayhaven/hotel-api/internal/config"
	"github.com/stayhaven/hotel-api/internal/domain/user"
	"github.com/stayhaven/hotel-api/internal/pkg/database"
	"github.com/stayhaven/hotel-api/internal/pkg/jwt"
)

var requiredTables = []string{"rooms", "room_availability", "bookings", "users", "gallery_images", "site_visits"}

func main() {
	userID := flag.String("user", "dev-guest", "identity provider subject to sign in as")
	email := flag.String("email", "guest@example.com", "email for the session")
	role := flag.String("role", string(user.RoleGuest), "session role (user or admin)")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	cfg := config.Load()
	if cfg.IsProduction() {
		log.Fatal("debug-session refuses to run with ENV=production")
	}

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.ClosePostgres(db)

	ctx := context.Background()

	var present []string
	err = db.SelectContext(ctx, &present, `SELECT table_name FROM information_schema.tables WHERE table_schema = 'public'`)
	if err != nil {
		log.Fatalf("Failed to query tables: %v", err)
	}
	have := make(map[string]bool, len(present))
	for _, name := range present {
		have[name] = true
	}
	fmt.Println("--- Schema ---")
	for _, name := range requiredTables {
		status := "ok"
		if !have[name] {
			status = "MISSING (run api -migrate)"
		}
		fmt.Printf("%-18s %s\n", name, status)
	}

	repo := user.NewRepository(db)
	u, err := repo.GetByID(ctx, *userID)
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		fmt.Printf("--- User %s not synced yet, creating ---\n", *userID)
		u, err = repo.Upsert(ctx, user.Profile{ID: *userID, Email: *email})
		if err != nil {
			log.Fatalf("Failed to create user: %v", err)
		}
	case err != nil:
		log.Fatalf("Failed to load user: %v", err)
	}
	fmt.Printf("User: %s <%s> bookings=%d spend=%d\n", u.ID, u.Email, u.BookingsCount, u.TotalSpend)

	token, err := jwt.NewService(cfg.JWTSecret, cfg.JWTIssuer, *ttl).GenerateAccessToken(u.ID, u.Email, *role)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println("--- Authorization header ---")
	fmt.Printf("Bearer %s\n", token)
}
