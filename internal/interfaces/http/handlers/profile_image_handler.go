package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crm-admin.backend/internal/domain/entities"
	domainerrors "crm-admin.backend/internal/domain/errors"
	"crm-admin.backend/internal/interfaces/http/response"
)

// ProfileImageService stores profile images
type ProfileImageService interface {
	Upload(ctx context.Context, category entities.BlobCategory, profileID int64, filename string, content []byte, contentType string) (string, error)
	Download(ctx context.Context, category entities.BlobCategory, blobID string) (*entities.Blob, error)
	Delete(ctx context.Context, category entities.BlobCategory, profileID int64) error
}

// ProfileImageHandler serves image upload, download and delete
type ProfileImageHandler struct {
	images   ProfileImageService
	maxBytes int64
}

// DefaultMaxUploadBytes applies when the handler is built with a non-positive limit
const DefaultMaxUploadBytes = 6_000_000

// NewProfileImageHandler creates a new profile image handler. Request bodies
// are read up to maxBytes+1 so oversize files still reach the size check.
func NewProfileImageHandler(images ProfileImageService, maxBytes int64) *ProfileImageHandler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &ProfileImageHandler{images: images, maxBytes: maxBytes}
}

// UploadSalesPersonImage POST /api/v1/admin/sales-persons/:id/image
func (h *ProfileImageHandler) UploadSalesPersonImage(c *gin.Context) {
	h.upload(c, entities.BlobSalesPersonProfileImage, "id")
}

// DeleteSalesPersonImage DELETE /api/v1/admin/sales-persons/:id/image
func (h *ProfileImageHandler) DeleteSalesPersonImage(c *gin.Context) {
	h.delete(c, entities.BlobSalesPersonProfileImage, "id")
}

// UploadAdminImage POST /api/v1/super-admin/admins/:admin_id/image
func (h *ProfileImageHandler) UploadAdminImage(c *gin.Context) {
	h.upload(c, entities.BlobAdminProfileImage, "admin_id")
}

// DeleteAdminImage DELETE /api/v1/super-admin/admins/:admin_id/image
func (h *ProfileImageHandler) DeleteAdminImage(c *gin.Context) {
	h.delete(c, entities.BlobAdminProfileImage, "admin_id")
}

func (h *ProfileImageHandler) upload(c *gin.Context, category entities.BlobCategory, param string) {
	profileID, err := parseIDParam(c, param)
	if err != nil {
		response.Error(c, err)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, domainerrors.InvalidInput("file is required"))
		return
	}
	f, err := header.Open()
	if err != nil {
		response.Error(c, domainerrors.InvalidInput("file could not be read"))
		return
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
	if err != nil {
		response.Error(c, domainerrors.InvalidInput("file could not be read"))
		return
	}

	blobID, err := h.images.Upload(
		c.Request.Context(),
		category,
		profileID,
		header.Filename,
		content,
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"file_id": blobID})
}

func (h *ProfileImageHandler) delete(c *gin.Context, category entities.BlobCategory, param string) {
	profileID, err := parseIDParam(c, param)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.images.Delete(c.Request.Context(), category, profileID); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Profile image deleted")
}

// Download streams a stored image
// GET /api/v1/profile-image/:category/:file_id
func (h *ProfileImageHandler) Download(c *gin.Context) {
	category := entities.BlobCategory(c.Param("category"))
	blob, err := h.images.Download(c.Request.Context(), category, c.Param("file_id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename="+strconv.Quote(blob.Filename))
	c.Data(http.StatusOK, blob.ContentType, blob.Content)
}
