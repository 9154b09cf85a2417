package user

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidSpend = errors.New("booking total must not be negative")
)
