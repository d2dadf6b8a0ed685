package http

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/transfer-booking-backend/internal/image"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/response"
)

// multipartOverhead is the room left for form fields and boundaries on top of the file cap.
const multipartOverhead = 1 << 20

type Handler struct {
	service  image.Service
	maxBytes int64
	logger   *slog.Logger
}

func NewHandler(service image.Service, maxBytes int64, logger *slog.Logger) *Handler {
	if maxBytes <= 0 {
		maxBytes = image.DefaultMaxBytes
	}
	return &Handler{service: service, maxBytes: maxBytes, logger: logger}
}

// List handles GET /images. Only active images are public.
func (h *Handler) List(c *gin.Context) {
	var req ListImagesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	images, err := h.service.List(c.Request.Context(), req.filter(true))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, newImageResponses(images))
}

func (h *Handler) AdminList(c *gin.Context) {
	var req AdminListImagesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	images, err := h.service.List(c.Request.Context(), req.filter(req.ActiveOnly))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, newImageResponses(images))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	img, err := h.service.Get(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewImageResponse(img))
}

func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)

	var form UploadImageForm
	if err := c.ShouldBind(&form); err != nil {
		h.uploadError(c, err)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		h.uploadError(c, err)
		return
	}
	if header.Size > h.maxBytes {
		response.Error(c, image.ErrFileTooLarge)
		return
	}

	src, err := header.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer src.Close()

	img, err := h.service.Upload(c.Request.Context(), image.UploadInput{
		Filename:     header.Filename,
		Content:      src,
		Kind:         image.Kind(form.Kind),
		OwnerID:      form.OwnerID,
		Section:      image.Section(form.Section),
		AltText:      form.AltText,
		Caption:      form.Caption,
		Title:        form.Title,
		Subtitle:     form.Subtitle,
		DisplayOrder: form.DisplayOrder,
		IsPrimary:    form.IsPrimary,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewImageResponse(img))
}

func (h *Handler) uploadError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		response.Error(c, image.ErrFileTooLarge)
	case errors.Is(err, http.ErrMissingFile):
		response.Error(c, image.ErrFileRequired)
	default:
		response.BindError(c, err)
	}
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	var body UpdateImageRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	img, err := h.service.Update(c.Request.Context(), uri.ID, body.ToUpdate())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewImageResponse(img))
}

func (h *Handler) SetPrimary(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	img, err := h.service.SetPrimary(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewImageResponse(img))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ServeFile streams the original upload.
func (h *Handler) ServeFile(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	stream, img, err := h.service.Download(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	h.stream(c, stream, img.ContentType, img.Filename)
}

// ServeThumbnail streams the JPEG thumbnail.
func (h *Handler) ServeThumbnail(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	stream, img, err := h.service.DownloadThumbnail(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	h.stream(c, stream, "image/jpeg", img.ID+"_thumb.jpg")
}

func (h *Handler) stream(c *gin.Context, r io.Reader, contentType, filename string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": filename}))
	c.Header("Cache-Control", "public, max-age=3600")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, r); err != nil {
		// Response already started
		h.logger.WarnContext(c.Request.Context(), "image stream interrupted", "error", err)
	}
}
