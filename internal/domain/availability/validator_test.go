package availability

import (
	"errors"
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func TestAvailableNeverNegative(t *testing.T) {
	for stock := 0; stock <= 12; stock++ {
		for booked := 0; booked <= 15; booked++ {
			got := Available(stock, booked)
			if got < 0 {
				t.Fatalf("Available(%d,%d) = %d is negative", stock, booked, got)
			}
			want := stock - booked
			if want < 0 {
				want = 0
			}
			if got != want {
				t.Fatalf("Available(%d,%d) = %d, want %d", stock, booked, got, want)
			}
		}
	}
}

func TestValidateEmptySnapshotPasses(t *testing.T) {
	err := Validate(10, Snapshot{}, mustDate(t, "2024-06-01"), mustDate(t, "2024-06-03"), 2)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestValidateReportsShortNight(t *testing.T) {
	booked := Snapshot{"2024-06-02": 9}
	err := Validate(10, booked, mustDate(t, "2024-06-01"), mustDate(t, "2024-06-03"), 2)

	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if FormatDate(stockErr.Date) != "2024-06-02" || stockErr.Available != 1 || stockErr.Requested != 2 {
		t.Fatalf("unexpected failure %+v", stockErr)
	}
	if stockErr.Error() != "only 1 room available on 2024-06-02, requested 2" {
		t.Fatalf("unexpected message %q", stockErr.Error())
	}
}

func TestValidateReportsEarliestViolation(t *testing.T) {
	booked := Snapshot{
		"2024-06-03": 10, // fully booked, but later
		"2024-06-02": 8,
		"2024-06-04": 9,
	}
	err := Validate(10, booked, mustDate(t, "2024-06-01"), mustDate(t, "2024-06-06"), 3)

	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if FormatDate(stockErr.Date) != "2024-06-02" || stockErr.Available != 2 {
		t.Fatalf("expected first violation on 2024-06-02 with 2 free, got %+v", stockErr)
	}
}

func TestValidateIgnoresCheckOutNight(t *testing.T) {
	booked := Snapshot{"2024-06-03": 10}
	if err := Validate(10, booked, mustDate(t, "2024-06-01"), mustDate(t, "2024-06-03"), 1); err != nil {
		t.Fatalf("check-out night must not be counted, got %v", err)
	}
}

func TestValidateRangeErrors(t *testing.T) {
	d1, d2 := mustDate(t, "2024-06-01"), mustDate(t, "2024-06-02")

	if err := Validate(10, nil, d1, d1, 1); !errors.Is(err, ErrEmptyStay) {
		t.Fatalf("expected ErrEmptyStay, got %v", err)
	}
	if err := Validate(10, nil, d2, d1, 1); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if err := Validate(10, nil, d1, d2, 0); !errors.Is(err, ErrInvalidRooms) {
		t.Fatalf("expected ErrInvalidRooms, got %v", err)
	}
	if err := Validate(10, nil, d1, d1.AddDate(2, 0, 0), 1); !errors.Is(err, ErrRangeTooLong) {
		t.Fatalf("expected ErrRangeTooLong, got %v", err)
	}
}

// Validate must fail iff some night has fewer free rooms than requested.
func TestValidateMatchesExhaustiveCheck(t *testing.T) {
	checkIn := mustDate(t, "2024-06-01")
	checkOut := checkIn.AddDate(0, 0, 4)
	patterns := [][]int{
		{0, 0, 0, 0},
		{5, 6, 7, 8},
		{9, 0, 9, 0},
		{10, 10, 10, 10},
		{3, 12, 1, 0},
		{0, 0, 0, 9},
	}

	for _, p := range patterns {
		snap := Snapshot{}
		for i, b := range p {
			snap[FormatDate(checkIn.AddDate(0, 0, i))] = b
		}
		for rooms := 1; rooms <= 11; rooms++ {
			wantIdx := -1
			for i, b := range p {
				if Available(10, b) < rooms {
					wantIdx = i
					break
				}
			}

			err := Validate(10, snap, checkIn, checkOut, rooms)
			if wantIdx == -1 {
				if err != nil {
					t.Fatalf("pattern %v rooms %d: unexpected %v", p, rooms, err)
				}
				continue
			}
			var stockErr *InsufficientStockError
			if !errors.As(err, &stockErr) {
				t.Fatalf("pattern %v rooms %d: expected stock error, got %v", p, rooms, err)
			}
			if !stockErr.Date.Equal(checkIn.AddDate(0, 0, wantIdx)) {
				t.Fatalf("pattern %v rooms %d: reported %s, want night %d", p, rooms, FormatDate(stockErr.Date), wantIdx)
			}
		}
	}
}

func TestCheckSelectable(t *testing.T) {
	today := mustDate(t, "2024-06-10")
	if err := CheckSelectable(mustDate(t, "2024-06-09"), today); !errors.Is(err, ErrPastDate) {
		t.Fatalf("expected ErrPastDate, got %v", err)
	}
	if err := CheckSelectable(today, today); err != nil {
		t.Fatalf("today must be selectable, got %v", err)
	}
}

func TestDatesInRangeAndNights(t *testing.T) {
	in, out := mustDate(t, "2024-02-28"), mustDate(t, "2024-03-02")
	dates := DatesInRange(in, out)
	if len(dates) != 3 || Nights(in, out) != 3 {
		t.Fatalf("expected 3 nights across leap day, got %d/%d", len(dates), Nights(in, out))
	}
	if FormatDate(dates[1]) != "2024-02-29" {
		t.Fatalf("expected leap day in range, got %s", FormatDate(dates[1]))
	}
	if len(DatesInRange(in, in)) != 0 {
		t.Fatal("zero-night range must be empty")
	}
}

func TestCalendar(t *testing.T) {
	days := Calendar(3, Snapshot{"2024-06-02": 5}, mustDate(t, "2024-06-01"), mustDate(t, "2024-06-03"))
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if days[0].Available != 3 || days[1].Available != 0 || days[1].Booked != 5 {
		t.Fatalf("unexpected calendar %+v", days)
	}
}
