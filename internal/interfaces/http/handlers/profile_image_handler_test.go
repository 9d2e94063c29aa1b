package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm-admin.backend/internal/domain/entities"
	domainerrors "crm-admin.backend/internal/domain/errors"
)

type profileImageServiceStub struct {
	category    entities.BlobCategory
	profileID   int64
	filename    string
	content     []byte
	contentType string
	blob        *entities.Blob
	err         error
	deleted     bool
}

func (s *profileImageServiceStub) Upload(_ context.Context, category entities.BlobCategory, profileID int64, filename string, content []byte, contentType string) (string, error) {
	s.category = category
	s.profileID = profileID
	s.filename = filename
	s.content = content
	s.contentType = contentType
	if s.err != nil {
		return "", s.err
	}
	return "blob-1", nil
}

func (s *profileImageServiceStub) Download(_ context.Context, category entities.BlobCategory, _ string) (*entities.Blob, error) {
	s.category = category
	return s.blob, s.err
}

func (s *profileImageServiceStub) Delete(_ context.Context, category entities.BlobCategory, profileID int64) error {
	s.category = category
	s.profileID = profileID
	s.deleted = true
	return s.err
}

func newImageRouter(svc *profileImageServiceStub, maxBytes int64) http.Handler {
	h := NewProfileImageHandler(svc, maxBytes)
	r := newTestRouter()
	r.POST("/sales-persons/:id/image", h.UploadSalesPersonImage)
	r.DELETE("/sales-persons/:id/image", h.DeleteSalesPersonImage)
	r.POST("/admins/:admin_id/image", h.UploadAdminImage)
	r.DELETE("/admins/:admin_id/image", h.DeleteAdminImage)
	r.GET("/profile-image/:category/:file_id", h.Download)
	return r
}

func multipartRequest(t *testing.T, path, filename, contentType string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestProfileImageHandler_UploadSalesPersonImage(t *testing.T) {
	svc := &profileImageServiceStub{}
	r := newImageRouter(svc, 1024)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, multipartRequest(t, "/sales-persons/3/image", "me.PNG", "image/png", []byte("png-bytes")))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	assert.Equal(t, entities.BlobSalesPersonProfileImage, svc.category)
	assert.Equal(t, int64(3), svc.profileID)
	assert.Equal(t, "me.PNG", svc.filename)
	assert.Equal(t, "image/png", svc.contentType)
	assert.Equal(t, []byte("png-bytes"), svc.content)
	assert.Contains(t, rec.Body.String(), "blob-1")
}

func TestProfileImageHandler_UploadReadsPastLimit(t *testing.T) {
	svc := &profileImageServiceStub{err: domainerrors.PayloadTooLarge("File must be smaller than 4 bytes")}
	r := newImageRouter(svc, 4)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, multipartRequest(t, "/admins/2/image", "a.jpg", "image/jpeg", []byte("0123456789")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, entities.BlobAdminProfileImage, svc.category)
	assert.Len(t, svc.content, 5)
}

func TestProfileImageHandler_NonPositiveLimitUsesDefault(t *testing.T) {
	for _, limit := range []int64{0, -1} {
		svc := &profileImageServiceStub{}
		r := newImageRouter(svc, limit)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, multipartRequest(t, "/sales-persons/3/image", "me.png", "image/png", []byte("0123456789")))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, []byte("0123456789"), svc.content)
	}
	assert.Equal(t, int64(DefaultMaxUploadBytes), NewProfileImageHandler(nil, 0).maxBytes)
}

func TestProfileImageHandler_UploadMissingFile(t *testing.T) {
	svc := &profileImageServiceStub{}
	r := newImageRouter(svc, 1024)

	rec := doJSON(r, http.MethodPost, "/sales-persons/3/image", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, svc.profileID)
}

func TestProfileImageHandler_Delete(t *testing.T) {
	svc := &profileImageServiceStub{}
	r := newImageRouter(svc, 1024)

	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodDelete, "/admins/2/image", nil).Code)
	assert.True(t, svc.deleted)
	assert.Equal(t, entities.BlobAdminProfileImage, svc.category)

	svc.err = domainerrors.PartialFailure("Image deleted but profile was not updated")
	rec := doJSON(r, http.MethodDelete, "/sales-persons/3/image", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, domainerrors.CodePartialFailure, decodeEnvelope(t, rec).Error.Code)
}

func TestProfileImageHandler_Download(t *testing.T) {
	svc := &profileImageServiceStub{blob: &entities.Blob{
		ID:          "blob-1",
		Filename:    "sppi_3.png",
		ContentType: "image/png",
		Content:     []byte("png-bytes"),
	}}
	r := newImageRouter(svc, 1024)

	rec := doJSON(r, http.MethodGet, "/profile-image/sppi/blob-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", rec.Body.String())
	assert.Equal(t, entities.BlobSalesPersonProfileImage, svc.category)

	svc.err = domainerrors.NotFound("File not found")
	assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodGet, "/profile-image/sppi/missing", nil).Code)
}
