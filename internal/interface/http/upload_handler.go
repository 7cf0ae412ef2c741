package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/freeads/marketplace-api/internal/interface/middleware"
	"github.com/freeads/marketplace-api/pkg/helpers"
	"github.com/freeads/marketplace-api/pkg/response"
)

const maxUploadSize = 8 << 20 // 8 MiB

// UploadHandler stores listing images in Google Cloud Storage and returns
// their public URLs for use in advertisement payloads.
type UploadHandler struct {
	GCS    *storage.Client
	Bucket string
	Logger *logrus.Logger
}

func NewUploadHandler(gcs *storage.Client, bucket string, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{GCS: gcs, Bucket: bucket, Logger: logger}
}

// Upload POST /uploads, multipart form field "image".
func (h *UploadHandler) Upload(c *gin.Context) {
	if h.GCS == nil || h.Bucket == "" {
		response.Error(c, http.StatusServiceUnavailable, "uploads are not configured", nil)
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "missing form file \"image\"", nil)
		return
	}
	if fh.Size > maxUploadSize {
		response.Error(c, http.StatusBadRequest, "file too large", nil)
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.Logger.WithError(err).Error("open multipart file")
		response.Error(c, http.StatusInternalServerError, "Server error", nil)
		return
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
	default:
		response.Error(c, http.StatusBadRequest, "unsupported file type", nil)
		return
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectPath := "ads/" + c.GetString(middleware.CtxUserIDKey) + "/" + uuid.NewString() + ext
	url, err := helpers.UploadObject(c.Request.Context(), h.GCS, h.Bucket, objectPath, contentType, f)
	if err != nil {
		h.Logger.WithError(err).Error("upload object to gcs")
		response.Error(c, http.StatusInternalServerError, "Server error", nil)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"url": url}, "upload complete", nil)
}
