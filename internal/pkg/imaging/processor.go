package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrTooLarge is returned when the input exceeds Config.MaxBytes
var ErrTooLarge = errors.New("image exceeds size limit")

// ErrNotImage is returned when the input cannot be decoded as an image
var ErrNotImage = errors.New("file is not a supported image")

// ProcessedImage is a normalised image ready for upload
type ProcessedImage struct {
	Data        []byte
	ContentType string
	Extension   string
	Width       int
	Height      int
}

// Config for image processing
type Config struct {
	MaxWidth  int   // Max width (default 1600)
	MaxHeight int   // Max height (default 1600)
	Quality   int   // JPEG quality 1-100 (default 85)
	MaxBytes  int64 // Max input size (default 10MB)
}

// DefaultConfig returns default processing config
func DefaultConfig() Config {
	return Config{
		MaxWidth:  1600,
		MaxHeight: 1600,
		Quality:   85,
		MaxBytes:  MaxFileSize,
	}
}

// Processor handles image processing
type Processor struct {
	config Config
}

// NewProcessor creates image processor
func NewProcessor(config Config) *Processor {
	def := DefaultConfig()
	if config.MaxWidth <= 0 {
		config.MaxWidth = def.MaxWidth
	}
	if config.MaxHeight <= 0 {
		config.MaxHeight = def.MaxHeight
	}
	if config.Quality <= 0 || config.Quality > 100 {
		config.Quality = def.Quality
	}
	if config.MaxBytes <= 0 {
		config.MaxBytes = def.MaxBytes
	}
	return &Processor{config: config}
}

// Normalize decodes an upload, applies EXIF orientation, shrinks it to fit
// the configured bounds and re-encodes it. PNG stays PNG so screenshot text
// stays sharp; every other format becomes JPEG.
func (p *Processor) Normalize(reader io.Reader) (*ProcessedImage, error) {
	data, err := io.ReadAll(io.LimitReader(reader, p.config.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(data)) > p.config.MaxBytes {
		return nil, ErrTooLarge
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ErrNotImage
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrNotImage
	}

	b := img.Bounds()
	if b.Dx() > p.config.MaxWidth || b.Dy() > p.config.MaxHeight {
		img = imaging.Fit(img, p.config.MaxWidth, p.config.MaxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	result := &ProcessedImage{
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}

	if format == "png" {
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}
		result.ContentType = "image/png"
		result.Extension = ".png"
	} else {
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.config.Quality}); err != nil {
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}
		result.ContentType = "image/jpeg"
		result.Extension = ".jpg"
	}
	result.Data = buf.Bytes()

	return result, nil
}

// ValidateType checks if file is a valid image type
func ValidateType(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
		return true
	default:
		return false
	}
}

// MaxFileSize in bytes (10MB)
const MaxFileSize int64 = 10 * 1024 * 1024
