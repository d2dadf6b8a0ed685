package image

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/storage"
)

const (
	DefaultMaxBytes = 10 << 20
	thumbnailSize   = 400
)

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Owners resolves the catalog entries images can be attached to.
type Owners interface {
	HasVehicle(id string) bool
	HasTour(id string) bool
}

// UploadInput carries the file and the gallery metadata of a new image.
type UploadInput struct {
	Filename     string
	Content      io.Reader
	Kind         Kind
	OwnerID      string
	Section      Section
	AltText      *string
	Caption      *string
	Title        *string
	Subtitle     *string
	DisplayOrder int
	IsPrimary    bool
}

type Service interface {
	Upload(ctx context.Context, in UploadInput) (*Image, error)
	Get(ctx context.Context, id string) (*Image, error)
	List(ctx context.Context, filter Filter) ([]Image, error)
	Update(ctx context.Context, id string, u Update) (*Image, error)
	SetPrimary(ctx context.Context, id string) (*Image, error)
	Delete(ctx context.Context, id string) error
	Download(ctx context.Context, id string) (io.ReadCloser, *Image, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Image, error)
}

type service struct {
	repo     Repository
	storage  storage.Storage
	owners   Owners
	logger   *slog.Logger
	maxBytes int64
	now      func() time.Time
}

func NewService(repo Repository, store storage.Storage, owners Owners, logger *slog.Logger, maxBytes int64) Service {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &service{
		repo:     repo,
		storage:  store,
		owners:   owners,
		logger:   logger,
		maxBytes: maxBytes,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) checkTarget(kind Kind, ownerID string, section Section) error {
	switch kind {
	case KindTour, KindVehicle:
		if section != "" {
			return ErrUnexpectedSection
		}
		if ownerID == "" {
			return ErrOwnerRequired
		}
		if kind == KindTour && !s.owners.HasTour(ownerID) {
			return ErrUnknownOwner
		}
		if kind == KindVehicle && !s.owners.HasVehicle(ownerID) {
			return ErrUnknownOwner
		}
	case KindHomepage:
		if ownerID != "" {
			return ErrUnexpectedOwner
		}
		if !section.IsValid() {
			return ErrInvalidSection
		}
	default:
		return ErrInvalidKind
	}
	return nil
}

func (s *service) Upload(ctx context.Context, in UploadInput) (*Image, error) {
	in.OwnerID = strings.TrimSpace(in.OwnerID)
	if err := s.checkTarget(in.Kind, in.OwnerID, in.Section); err != nil {
		return nil, err
	}
	if in.IsPrimary && in.Kind == KindHomepage {
		return nil, ErrPrimaryNotAllowed
	}
	if in.Content == nil {
		return nil, ErrFileRequired
	}

	// Read one byte past the cap to tell "exactly at the limit" from "over it".
	content, err := io.ReadAll(io.LimitReader(in.Content, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}
	if int64(len(content)) > s.maxBytes {
		return nil, ErrFileTooLarge
	}
	if len(content) == 0 {
		return nil, ErrFileRequired
	}

	contentType := http.DetectContentType(content)
	ext, ok := extensions[contentType]
	if !ok {
		return nil, ErrUnsupportedType
	}

	id := uuid.NewString()
	dir := path.Join("images", string(in.Kind), id[:2])
	storagePath := path.Join(dir, id+ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to save file to storage: %w", err)
	}

	var thumbnailPath *string
	if thumb, err := storage.Thumbnail(bytes.NewReader(content), thumbnailSize, thumbnailSize); err != nil {
		s.logger.WarnContext(ctx, "thumbnail generation failed", "image_id", id, "content_type", contentType, "error", err)
	} else {
		p := path.Join(dir, id+"_thumb.jpg")
		if err := s.storage.Save(ctx, p, bytes.NewReader(thumb)); err != nil {
			s.logger.WarnContext(ctx, "thumbnail save failed", "image_id", id, "error", err)
		} else {
			thumbnailPath = &p
		}
	}

	now := s.now()
	img := &Image{
		ID:            id,
		Kind:          in.Kind,
		OwnerID:       in.OwnerID,
		Section:       in.Section,
		DisplayOrder:  in.DisplayOrder,
		IsActive:      true,
		Filename:      path.Base(strings.ReplaceAll(in.Filename, "\\", "/")),
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          int64(len(content)),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	Update{AltText: in.AltText, Caption: in.Caption, Title: in.Title, Subtitle: in.Subtitle}.apply(img)

	if err := s.repo.Create(ctx, img); err != nil {
		s.removeFiles(ctx, img)
		return nil, err
	}

	if in.IsPrimary {
		return s.repo.SetPrimary(ctx, id, now)
	}
	return img, nil
}

func (s *service) Get(ctx context.Context, id string) (*Image, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]Image, error) {
	if filter.Kind != "" && !filter.Kind.IsValid() {
		return nil, ErrInvalidKind
	}
	if filter.Section != "" && !filter.Section.IsValid() {
		return nil, ErrInvalidSection
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, u Update) (*Image, error) {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Title != nil || u.Subtitle != nil {
		if img.Kind != KindHomepage {
			return nil, ErrHomepageOnly
		}
	}

	u.apply(img)
	img.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *service) SetPrimary(ctx context.Context, id string) (*Image, error) {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if img.Kind == KindHomepage {
		return nil, ErrPrimaryNotAllowed
	}
	return s.repo.SetPrimary(ctx, id, s.now())
}

// Delete removes the record first; stored files are cleaned up best-effort.
func (s *service) Delete(ctx context.Context, id string) error {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeFiles(ctx, img)
	return nil
}

func (s *service) removeFiles(ctx context.Context, img *Image) {
	if err := s.storage.Delete(ctx, img.StoragePath); err != nil {
		s.logger.WarnContext(ctx, "failed to delete stored image", "image_id", img.ID, "error", err)
	}
	if img.ThumbnailPath != nil {
		if err := s.storage.Delete(ctx, *img.ThumbnailPath); err != nil {
			s.logger.WarnContext(ctx, "failed to delete stored thumbnail", "image_id", img.ID, "error", err)
		}
	}
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Image, error) {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, img.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve image from storage: %w", err)
	}
	return stream, img, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Image, error) {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if img.ThumbnailPath == nil {
		return nil, nil, ErrThumbnailUnavailable
	}

	stream, err := s.storage.Get(ctx, *img.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve thumbnail from storage: %w", err)
	}
	return stream, img, nil
}
