package imagehost

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// Cloudinary uploads into a Cloudinary folder
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinary(cloudName, apiKey, apiSecret, folder string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("imagehost: cloudinary init: %w", err)
	}
	return &Cloudinary{cld: cld, folder: folder}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, name string, r io.Reader, contentType string) (*Result, error) {
	publicID := strings.TrimSuffix(path.Base(name), path.Ext(name)) + "-" + uuid.NewString()[:8]

	res, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       c.folder,
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return nil, &UploadError{Provider: "cloudinary", Message: "request failed", Err: err}
	}
	if res.Error.Message != "" {
		return nil, &UploadError{Provider: "cloudinary", Message: res.Error.Message}
	}
	if res.SecureURL == "" {
		return nil, &UploadError{Provider: "cloudinary", Message: "empty secure url"}
	}

	return &Result{URL: res.SecureURL, ID: res.PublicID}, nil
}
