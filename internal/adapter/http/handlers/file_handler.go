package handlers

import (
	"errors"
	"evaluation_orders/internal/infrastructure/storage"
	"evaluation_orders/pkg"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// BlobReader reads stored documents back; the local Pebble store serves
// its own public links through it.
type BlobReader interface {
	Get(path string) ([]byte, string, error)
}

type FileHandler struct {
	blobs BlobReader
}

func NewFileHandler(blobs BlobReader) *FileHandler {
	return &FileHandler{blobs: blobs}
}

// GetFile godoc
// @Summary Download a stored document
// @Tags files
// @Param path path string true "Object path"
// @Success 200
// @Failure 404 {object} pkg.HTTPError
// @Router /files/{path} [get]
func (h *FileHandler) GetFile(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" {
		writeError(c, invalidRequest())
		return
	}
	data, contentType, err := h.blobs.Get(path)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			writeError(c, pkg.NewDomainErrorSimple("FILE_NOT_FOUND", "File not found", http.StatusNotFound))
			return
		}
		writeError(c, pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError))
		return
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	c.Data(http.StatusOK, contentType, data)
}
