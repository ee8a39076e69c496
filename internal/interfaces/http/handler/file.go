package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	launchapp "github.com/storelaunch/backend/internal/application/launch"
)

// FileHandler handles store document uploads
type FileHandler struct {
	BaseHandler
	files *launchapp.FileService
}

// NewFileHandler creates a new FileHandler
func NewFileHandler(files *launchapp.FileService) *FileHandler {
	return &FileHandler{files: files}
}

// Upload handles POST /stores/:id/files with a multipart "file" field
func (h *FileHandler) Upload(c *gin.Context) {
	storeID, ok := h.PathID(c, "id", "Store not found")
	if !ok {
		return
	}
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "File is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.BadRequest(c, "Unable to read uploaded file")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		h.BadRequest(c, "Unable to read uploaded file")
		return
	}

	view, err := h.files.Upload(c.Request.Context(), launchapp.UploadInput{
		StoreID:     storeID,
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
		UploadedBy:  userID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toStoreFileResponse(view))
}

// List handles GET /stores/:id/files
func (h *FileHandler) List(c *gin.Context) {
	storeID, ok := h.PathID(c, "id", "Store not found")
	if !ok {
		return
	}
	views, err := h.files.List(c.Request.Context(), storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mapSlice(views, toStoreFileResponse))
}
