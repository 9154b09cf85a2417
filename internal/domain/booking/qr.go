package booking

import (
	"bytes"
	"fmt"
	"image/png"
	"net/url"

	"github.com/skip2/go-qrcode"
)

const qrSize = 320

// UPIConfig identifies the payee shown in the payment QR
type UPIConfig struct {
	VPA       string
	PayeeName string
}

// PaymentLink builds the upi://pay deep link for amount rupees
func (c UPIConfig) PaymentLink(amount int64, note string) string {
	q := url.Values{}
	q.Set("pa", c.VPA)
	q.Set("pn", c.PayeeName)
	q.Set("am", fmt.Sprintf("%d.00", amount))
	q.Set("cu", "INR")
	if note != "" {
		q.Set("tn", note)
	}
	return "upi://pay?" + q.Encode()
}

// PaymentQR renders the UPI link for amount as a PNG
func (s *Service) PaymentQR(amount int64, note string) ([]byte, error) {
	if s.upi.VPA == "" {
		return nil, ErrPaymentQRUnavailable
	}
	if amount <= 0 {
		return nil, ErrInvalidPaymentAmount
	}

	qr, err := qrcode.New(s.upi.PaymentLink(amount, note), qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("payment qr: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(qrSize)); err != nil {
		return nil, fmt.Errorf("payment qr: %w", err)
	}
	return buf.Bytes(), nil
}
