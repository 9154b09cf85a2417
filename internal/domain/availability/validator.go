package availability

import "time"

// MaxRangeNights bounds calendar queries and stays
const MaxRangeNights = 366

// Snapshot maps a night (2006-01-02) to the rooms already booked for it.
// Nights that are absent have nothing booked.
type Snapshot map[string]int

func (s Snapshot) Booked(d time.Time) int {
	return s[FormatDate(d)]
}

// Available is the number of rooms still free, never negative
func Available(stock, booked int) int {
	if booked >= stock {
		return 0
	}
	return stock - booked
}

// Validate checks that every night in [checkIn, checkOut) has at least rooms
// free. It fails on the first night that falls short.
func Validate(stock int, booked Snapshot, checkIn, checkOut time.Time, rooms int) error {
	if rooms < 1 {
		return ErrInvalidRooms
	}
	if checkOut.Before(checkIn) {
		return ErrInvalidRange
	}
	if !checkIn.Before(checkOut) {
		return ErrEmptyStay
	}
	if Nights(checkIn, checkOut) > MaxRangeNights {
		return ErrRangeTooLong
	}

	for _, d := range DatesInRange(checkIn, checkOut) {
		if avail := Available(stock, booked.Booked(d)); avail < rooms {
			return &InsufficientStockError{Date: d, Available: avail, Requested: rooms}
		}
	}
	return nil
}

// CheckSelectable rejects check-in dates before today
func CheckSelectable(checkIn, today time.Time) error {
	if checkIn.Before(today) {
		return ErrPastDate
	}
	return nil
}

// Day is one night of a room's calendar
type Day struct {
	Date      string `json:"date"`
	Booked    int    `json:"booked"`
	Available int    `json:"available"`
}

// Calendar expands a snapshot into per-night availability for [from, to)
func Calendar(stock int, booked Snapshot, from, to time.Time) []Day {
	dates := DatesInRange(from, to)
	days := make([]Day, 0, len(dates))
	for _, d := range dates {
		b := booked.Booked(d)
		days = append(days, Day{
			Date:      FormatDate(d),
			Booked:    b,
			Available: Available(stock, b),
		})
	}
	return days
}
