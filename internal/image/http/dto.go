package http

import (
	"time"

	"github.com/nekogravitycat/transfer-booking-backend/internal/image"
)

type ListImagesRequest struct {
	Kind    string `form:"kind" binding:"omitempty,oneof=tour vehicle homepage"`
	OwnerID string `form:"ownerId"`
	Section string `form:"section" binding:"omitempty,oneof=hero services testimonials about gallery"`
}

type AdminListImagesRequest struct {
	ListImagesRequest
	ActiveOnly bool `form:"active"`
}

func (r ListImagesRequest) filter(activeOnly bool) image.Filter {
	return image.Filter{
		Kind:       image.Kind(r.Kind),
		OwnerID:    r.OwnerID,
		Section:    image.Section(r.Section),
		ActiveOnly: activeOnly,
	}
}

// UploadImageForm is the non-file part of the multipart upload.
type UploadImageForm struct {
	Kind         string  `form:"kind" binding:"required,oneof=tour vehicle homepage"`
	OwnerID      string  `form:"ownerId"`
	Section      string  `form:"section" binding:"omitempty,oneof=hero services testimonials about gallery"`
	AltText      *string `form:"altText"`
	Caption      *string `form:"caption"`
	Title        *string `form:"title"`
	Subtitle     *string `form:"subtitle"`
	DisplayOrder int     `form:"displayOrder" binding:"omitempty,min=0"`
	IsPrimary    bool    `form:"isPrimary"`
}

type UpdateImageRequest struct {
	AltText      *string `json:"altText"`
	Caption      *string `json:"caption"`
	Title        *string `json:"title"`
	Subtitle     *string `json:"subtitle"`
	DisplayOrder *int    `json:"displayOrder" binding:"omitempty,min=0"`
	IsActive     *bool   `json:"isActive"`
}

func (r UpdateImageRequest) ToUpdate() image.Update {
	return image.Update{
		AltText:      r.AltText,
		Caption:      r.Caption,
		Title:        r.Title,
		Subtitle:     r.Subtitle,
		DisplayOrder: r.DisplayOrder,
		IsActive:     r.IsActive,
	}
}

type ImageResponse struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	OwnerID      string    `json:"ownerId,omitempty"`
	Section      string    `json:"section,omitempty"`
	AltText      *string   `json:"altText"`
	Caption      *string   `json:"caption"`
	Title        *string   `json:"title,omitempty"`
	Subtitle     *string   `json:"subtitle,omitempty"`
	IsPrimary    bool      `json:"isPrimary"`
	DisplayOrder int       `json:"displayOrder"`
	IsActive     bool      `json:"isActive"`
	ContentType  string    `json:"contentType"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	ThumbnailURL *string   `json:"thumbnailUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewImageResponse(img *image.Image) ImageResponse {
	var thumb *string
	if img.ThumbnailPath != nil {
		t := image.ThumbnailURL(img.ID)
		thumb = &t
	}
	return ImageResponse{
		ID:           img.ID,
		Kind:         string(img.Kind),
		OwnerID:      img.OwnerID,
		Section:      string(img.Section),
		AltText:      img.AltText,
		Caption:      img.Caption,
		Title:        img.Title,
		Subtitle:     img.Subtitle,
		IsPrimary:    img.IsPrimary,
		DisplayOrder: img.DisplayOrder,
		IsActive:     img.IsActive,
		ContentType:  img.ContentType,
		Size:         img.Size,
		URL:          image.FileURL(img.ID),
		ThumbnailURL: thumb,
		CreatedAt:    img.CreatedAt,
		UpdatedAt:    img.UpdatedAt,
	}
}

func newImageResponses(images []image.Image) []ImageResponse {
	items := make([]ImageResponse, len(images))
	for i := range images {
		items[i] = NewImageResponse(&images[i])
	}
	return items
}
