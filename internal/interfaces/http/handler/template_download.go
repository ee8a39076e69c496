package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	importapp "github.com/storelaunch/backend/internal/application/import"
)

// TemplateDownloadHandler serves blank import templates
type TemplateDownloadHandler struct {
	BaseHandler
}

// NewTemplateDownloadHandler creates a new TemplateDownloadHandler
func NewTemplateDownloadHandler() *TemplateDownloadHandler {
	return &TemplateDownloadHandler{}
}

// Download handles GET /templates/download?type=&format=csv|xlsx
func (h *TemplateDownloadHandler) Download(c *gin.Context) {
	tpl, ok := importapp.LookupTemplate(c.Query("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":          "Invalid template type",
			"availableTypes": importapp.TemplateTypes(),
		})
		return
	}

	file := tpl.Render(c.DefaultQuery("format", importapp.FormatCSV))
	c.Header("Content-Disposition", `attachment; filename="`+file.FileName+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Body)
}
