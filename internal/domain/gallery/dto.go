package gallery

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// AddRequest is the text part of POST /gallery
type AddRequest struct {
	Category string `json:"category" validate:"max=50"`
	Alt      string `json:"alt" validate:"max=200"`
}

// ImageResponse represents a gallery image in API responses
type ImageResponse struct {
	ID           uuid.UUID `json:"id"`
	Src          string    `json:"src"`
	Category     string    `json:"category"`
	CategorySlug string    `json:"category_slug"`
	Alt          string    `json:"alt"`
	CreatedAt    time.Time `json:"created_at"`
}

func ImageResponseFromEntity(img *Image) ImageResponse {
	var resp ImageResponse
	_ = copier.Copy(&resp, img)
	return resp
}

// ListResponse groups the images with the categories present in the gallery
type ListResponse struct {
	Images     []ImageResponse `json:"images"`
	Categories []string        `json:"categories"`
}
