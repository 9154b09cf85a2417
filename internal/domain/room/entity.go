package room

import (
	"time"

	"github.com/lib/pq"
)

// DefaultStock applies to room types whose stock was never set by staff
const DefaultStock = 10

// Room is a bookable room type. Rows are maintained by hotel staff.
type Room struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Description  string         `db:"description"`
	NightlyPrice int64          `db:"nightly_price"`
	TotalStock   int            `db:"total_stock"`
	ImageURL     string         `db:"image_url"`
	Images       pq.StringArray `db:"images"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// Stock returns the number of physical rooms of this type
func (r *Room) Stock() int {
	if r.TotalStock <= 0 {
		return DefaultStock
	}
	return r.TotalStock
}
