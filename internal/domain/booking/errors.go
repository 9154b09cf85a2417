package booking

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrAuthRequired         = errors.New("sign in to book a room")
	ErrMissingScreenshot    = errors.New("payment screenshot is required")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrCodeExhausted        = errors.New("could not allocate a unique booking code")
	ErrPaymentQRUnavailable = errors.New("UPI payments are not configured")
	ErrInvalidPaymentAmount = errors.New("amount must be a positive whole number")
)

// ValidationError lists request fields that failed validation
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// PersistenceError wraps a failed write of the booking or its reservation.
// Nothing was stored when it is returned.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("booking %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
