package gallery

import "errors"

var (
	ErrMissingFile   = errors.New("image file is required")
	ErrInvalidFormat = errors.New("unsupported image format")
	ErrFileTooLarge  = errors.New("image is too large")
)
