package availability

import (
	"time"

	"github.com/stayhaven/hotel-api/internal/pkg/validator"
)

// ParseDate parses a calendar date (2006-01-02) as midnight UTC
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(validator.DateLayout, s, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.Format(validator.DateLayout)
}

// DateOf truncates t to its calendar date in loc, returned as midnight UTC
func DateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Nights counts the nights in [checkIn, checkOut). Negative when reversed.
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// DatesInRange returns every night in the half-open range [checkIn, checkOut)
func DatesInRange(checkIn, checkOut time.Time) []time.Time {
	var dates []time.Time
	for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
