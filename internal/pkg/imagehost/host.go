// Package imagehost publishes images (payment screenshots, gallery photos)
// to an external host and returns their public URL.
package imagehost

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/stayhaven/hotel-api/internal/config"
)

// Result describes a published image
type Result struct {
	URL string
	ID  string
}

// Host is implemented by every image hosting provider
type Host interface {
	Upload(ctx context.Context, name string, r io.Reader, contentType string) (*Result, error)
}

// UploadError is returned when the host rejects or fails an upload.
type UploadError struct {
	Provider string
	Message  string
	Err      error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s upload failed: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("%s upload failed: %s", e.Provider, e.Message)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// New returns the provider selected by cfg.ImageHost
func New(cfg *config.Config) (Host, error) {
	switch strings.ToLower(cfg.ImageHost) {
	case "", "imgbb":
		if cfg.ImgBBAPIKey == "" {
			return nil, fmt.Errorf("imagehost: IMGBB_API_KEY is required")
		}
		return NewImgBB(cfg.ImgBBAPIKey, cfg.ImgBBBaseURL, nil), nil
	case "cloudinary":
		return NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
	case "s3", "r2":
		return NewS3(S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			PublicURL: cfg.S3PublicURL,
		})
	default:
		return nil, fmt.Errorf("imagehost: unknown provider %q", cfg.ImageHost)
	}
}
