package analytics

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Visit is one site visit per visitor per session window
type Visit struct {
	ID               uuid.UUID      `db:"id"`
	VisitorID        string         `db:"visitor_id"`
	IP               string         `db:"ip"`
	UserAgent        string         `db:"user_agent"`
	Platform         string         `db:"platform"`
	ScreenResolution string         `db:"screen_resolution"`
	UserID           sql.NullString `db:"user_id"`
	UserEmail        sql.NullString `db:"user_email"`
	Path             string         `db:"path"`
	Referrer         string         `db:"referrer"`
	CreatedAt        time.Time      `db:"created_at"`
}
