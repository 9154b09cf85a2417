package availability

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEmptyStay    = errors.New("stay must be at least one night")
	ErrInvalidRange = errors.New("check-out must be after check-in")
	ErrPastDate     = errors.New("check-in date is in the past")
	ErrInvalidRooms = errors.New("at least one room is required")
	ErrRangeTooLong = errors.New("date range is too long")
	ErrInvalidDate  = errors.New("dates must use the YYYY-MM-DD format")
)

// InsufficientStockError reports the earliest night that cannot hold the
// requested number of rooms.
type InsufficientStockError struct {
	Date      time.Time
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	noun := "rooms"
	if e.Available == 1 {
		noun = "room"
	}
	return fmt.Sprintf("only %d %s available on %s, requested %d",
		e.Available, noun, FormatDate(e.Date), e.Requested)
}
