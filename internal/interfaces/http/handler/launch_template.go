package handler

import (
	"github.com/gin-gonic/gin"
	launchapp "github.com/storelaunch/backend/internal/application/launch"
)

// LaunchTemplateHandler handles launch template requests
type LaunchTemplateHandler struct {
	BaseHandler
	templates *launchapp.TemplateService
}

// NewLaunchTemplateHandler creates a new LaunchTemplateHandler
func NewLaunchTemplateHandler(templates *launchapp.TemplateService) *LaunchTemplateHandler {
	return &LaunchTemplateHandler{templates: templates}
}

// List handles GET /launch-templates
func (h *LaunchTemplateHandler) List(c *gin.Context) {
	templates, err := h.templates.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mapSlice(templates, toLaunchTemplateResponse))
}

// Create handles POST /launch-templates
func (h *LaunchTemplateHandler) Create(c *gin.Context) {
	var req LaunchTemplateRequest
	if !h.BindJSON(c, &req) {
		return
	}
	tpl, err := h.templates.Create(c.Request.Context(), req.Name, req.Country,
		mapSlice(req.Tasks, LaunchTemplateTaskRequest.toInput))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toLaunchTemplateResponse(tpl))
}

// Get handles GET /launch-templates/:id
func (h *LaunchTemplateHandler) Get(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Template not found")
	if !ok {
		return
	}
	tpl, err := h.templates.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toLaunchTemplateResponse(tpl))
}
