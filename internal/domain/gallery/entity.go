package gallery

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultCategory = "Gallery"
	DefaultAlt      = "Gallery Image"
)

// Image is a photo shown on the public gallery page
type Image struct {
	ID           uuid.UUID `db:"id"`
	Src          string    `db:"src"`
	Category     string    `db:"category"`
	CategorySlug string    `db:"category_slug"`
	Alt          string    `db:"alt"`
	CreatedAt    time.Time `db:"created_at"`
}
