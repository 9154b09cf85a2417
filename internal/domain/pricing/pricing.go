// Package pricing computes the charge for a stay.
//
// All amounts are whole rupees held in int64. Rates are whole percentages so
// every step stays in integer arithmetic; fractional results are rounded half
// up (x.5 goes to x+1), which is the only rounding mode used anywhere here.
package pricing

import "errors"

const (
	// Currency of every amount produced by Calculate
	Currency = "INR"

	// AdvancePercent is the share of the total collected to hold a booking
	AdvancePercent int64 = 20

	// GST slab ceilings, inclusive, by nightly rate
	NilRateCeiling  int64 = 1000
	LowRateCeiling  int64 = 7500
	LowRatePercent  int64 = 12
	HighRatePercent int64 = 18
)

var (
	ErrInvalidPaymentType = errors.New("payment type must be full or advance")
	ErrInvalidInput       = errors.New("nightly price must be non-negative and rooms at least 1")
)

type PaymentType string

const (
	PaymentFull    PaymentType = "full"
	PaymentAdvance PaymentType = "advance"
)

// ParsePaymentType maps request input to a PaymentType. Empty means advance.
func ParsePaymentType(s string) (PaymentType, error) {
	switch PaymentType(s) {
	case "", PaymentAdvance:
		return PaymentAdvance, nil
	case PaymentFull:
		return PaymentFull, nil
	default:
		return "", ErrInvalidPaymentType
	}
}

type Input struct {
	NightlyPrice int64
	Rooms        int
	Nights       int
	PaymentType  PaymentType
}

type Breakdown struct {
	NightlyPrice  int64       `json:"nightly_price"`
	Rooms         int         `json:"rooms"`
	Nights        int         `json:"nights"`
	BasePrice     int64       `json:"base_price"`
	GSTPercent    int64       `json:"gst_percent"`
	TaxAmount     int64       `json:"tax_amount"`
	TotalPrice    int64       `json:"total_price"`
	AdvanceAmount int64       `json:"advance_amount"`
	PayableAmount int64       `json:"payable_amount"`
	PendingAmount int64       `json:"pending_amount"`
	PaymentType   PaymentType `json:"payment_type"`
	Currency      string      `json:"currency"`
}

// GSTPercent returns the tax slab for a nightly rate.
func GSTPercent(nightly int64) int64 {
	switch {
	case nightly <= NilRateCeiling:
		return 0
	case nightly <= LowRateCeiling:
		return LowRatePercent
	default:
		return HighRatePercent
	}
}

// Calculate prices a stay. Nights below 1 are treated as a single night.
func Calculate(in Input) (Breakdown, error) {
	if in.NightlyPrice < 0 || in.Rooms < 1 {
		return Breakdown{}, ErrInvalidInput
	}
	pt, err := ParsePaymentType(string(in.PaymentType))
	if err != nil {
		return Breakdown{}, err
	}
	nights := in.Nights
	if nights < 1 {
		nights = 1
	}

	base := in.NightlyPrice * int64(in.Rooms) * int64(nights)
	gst := GSTPercent(in.NightlyPrice)
	tax := percentOf(base, gst)
	total := base + tax
	advance := percentOf(total, AdvancePercent)

	payable := advance
	if pt == PaymentFull {
		payable = total
	}

	return Breakdown{
		NightlyPrice:  in.NightlyPrice,
		Rooms:         in.Rooms,
		Nights:        nights,
		BasePrice:     base,
		GSTPercent:    gst,
		TaxAmount:     tax,
		TotalPrice:    total,
		AdvanceAmount: advance,
		PayableAmount: payable,
		PendingAmount: total - payable,
		PaymentType:   pt,
		Currency:      Currency,
	}, nil
}

// percentOf returns round_half_up(n * pct / 100) for n, pct >= 0.
func percentOf(n, pct int64) int64 {
	return roundDiv(n*pct, 100)
}

func roundDiv(n, d int64) int64 {
	return (2*n + d) / (2 * d)
}
