// Package image manages the photo gallery shown on the tour, fleet and home pages.
package image

import (
	"net/http"
	"strings"
	"time"

	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.New(http.StatusNotFound, apperror.KindNotFound, "image not found")
	ErrInvalidKind          = apperror.Invalid("kind", "must be one of: tour vehicle homepage")
	ErrInvalidSection       = apperror.Invalid("section", "must be one of: hero services testimonials about gallery")
	ErrOwnerRequired        = apperror.Invalid("ownerId", "is required for tour and vehicle images")
	ErrUnknownOwner         = apperror.Invalid("ownerId", "does not match a catalog entry")
	ErrUnexpectedOwner      = apperror.Invalid("ownerId", "must be empty for homepage images")
	ErrUnexpectedSection    = apperror.Invalid("section", "must be empty for tour and vehicle images")
	ErrFileRequired         = apperror.Invalid("file", "is required")
	ErrFileTooLarge         = &apperror.AppError{Code: http.StatusRequestEntityTooLarge, Kind: apperror.KindInvalidInput, Message: "file is too large", Field: "file"}
	ErrUnsupportedType      = apperror.Invalid("file", "must be a JPEG, PNG, GIF or WebP image")
	ErrHomepageOnly         = apperror.Invalid("title", "only homepage images carry a title or subtitle")
	ErrPrimaryNotAllowed    = apperror.Invalid("isPrimary", "homepage images have no primary flag")
	ErrThumbnailUnavailable = apperror.New(http.StatusNotFound, apperror.KindNotFound, "thumbnail not available for this image")
)

// Kind says which page family an image belongs to.
type Kind string

const (
	KindTour     Kind = "tour"
	KindVehicle  Kind = "vehicle"
	KindHomepage Kind = "homepage"
)

func (k Kind) IsValid() bool {
	return k == KindTour || k == KindVehicle || k == KindHomepage
}

// Section is the slot of a homepage image.
type Section string

const (
	SectionHero         Section = "hero"
	SectionServices     Section = "services"
	SectionTestimonials Section = "testimonials"
	SectionAbout        Section = "about"
	SectionGallery      Section = "gallery"
)

func (s Section) IsValid() bool {
	switch s {
	case SectionHero, SectionServices, SectionTestimonials, SectionAbout, SectionGallery:
		return true
	}
	return false
}

// Image is one uploaded picture with its gallery metadata.
// OwnerID names the tour or vehicle; Section is used by homepage images instead.
type Image struct {
	ID            string
	Kind          Kind
	OwnerID       string
	Section       Section
	AltText       *string
	Caption       *string
	Title         *string
	Subtitle      *string
	IsPrimary     bool
	DisplayOrder  int
	IsActive      bool
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FileURL returns the public URL for an image's content.
func FileURL(id string) string {
	return "/files/" + id
}

// ThumbnailURL returns the public URL for an image's thumbnail.
func ThumbnailURL(id string) string {
	return "/files/" + id + "/thumbnail"
}

// Filter narrows List. Zero values match everything.
type Filter struct {
	Kind       Kind
	OwnerID    string
	Section    Section
	ActiveOnly bool
}

func (f Filter) Matches(img *Image) bool {
	if f.Kind != "" && img.Kind != f.Kind {
		return false
	}
	if f.OwnerID != "" && img.OwnerID != f.OwnerID {
		return false
	}
	if f.Section != "" && img.Section != f.Section {
		return false
	}
	return !f.ActiveOnly || img.IsActive
}

// Update is a partial metadata change. Nil fields are left untouched; an empty
// string clears an optional text field.
type Update struct {
	AltText      *string
	Caption      *string
	Title        *string
	Subtitle     *string
	DisplayOrder *int
	IsActive     *bool
}

func (u Update) apply(img *Image) {
	setText(&img.AltText, u.AltText)
	setText(&img.Caption, u.Caption)
	setText(&img.Title, u.Title)
	setText(&img.Subtitle, u.Subtitle)
	if u.DisplayOrder != nil {
		img.DisplayOrder = *u.DisplayOrder
	}
	if u.IsActive != nil {
		img.IsActive = *u.IsActive
	}
}

func setText(dst **string, v *string) {
	if v == nil {
		return
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		*dst = nil
		return
	}
	*dst = &s
}
