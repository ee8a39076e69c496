package handler

import (
	"github.com/gin-gonic/gin"
	recipeapp "github.com/storelaunch/backend/internal/application/recipe"
	"github.com/storelaunch/backend/internal/domain/recipe"
)

// ManualHandler handles menu manual (recipe) requests
type ManualHandler struct {
	BaseHandler
	manuals *recipeapp.ManualService
}

// NewManualHandler creates a new ManualHandler
func NewManualHandler(manuals *recipeapp.ManualService) *ManualHandler {
	return &ManualHandler{manuals: manuals}
}

// List handles GET /manuals?groupId&includeIngredients&includeCostVersions
func (h *ManualHandler) List(c *gin.Context) {
	groupID, err := queryUUID(c, "groupId")
	if err != nil {
		h.NotFound(c, "Group not found")
		return
	}
	manuals, err := h.manuals.List(c.Request.Context(), recipe.ManualQuery{
		GroupID:             groupID,
		IncludeIngredients:  queryBool(c, "includeIngredients"),
		IncludeCostVersions: queryBool(c, "includeCostVersions"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mapSlice(manuals, toManualResponse))
}

// Create handles POST /manuals. The response is always a list since
// addToAllGroups creates one copy per active group.
func (h *ManualHandler) Create(c *gin.Context) {
	var req CreateManualRequest
	if !h.BindJSON(c, &req) {
		return
	}
	manuals, err := h.manuals.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, mapSlice(manuals, toManualResponse))
}

// Get handles GET /manuals/:id
func (h *ManualHandler) Get(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Manual not found")
	if !ok {
		return
	}
	m, err := h.manuals.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toManualResponse(m))
}

// Update handles PUT /manuals/:id
func (h *ManualHandler) Update(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Manual not found")
	if !ok {
		return
	}
	var req UpdateManualRequest
	if !h.BindJSON(c, &req) {
		return
	}
	m, err := h.manuals.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toManualResponse(m))
}

// Delete handles DELETE /manuals/:id
func (h *ManualHandler) Delete(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Manual not found")
	if !ok {
		return
	}
	if err := h.manuals.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"success": true})
}

// CreateCostVersion handles POST /manuals/:id/cost-versions
func (h *ManualHandler) CreateCostVersion(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Manual not found")
	if !ok {
		return
	}
	var req CostVersionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	v, err := h.manuals.Recalculate(c.Request.Context(), id, req.TemplateID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toCostVersionResponse(v))
}

// ManualGroupHandler handles manual group requests
type ManualGroupHandler struct {
	BaseHandler
	groups *recipeapp.GroupService
}

// NewManualGroupHandler creates a new ManualGroupHandler
func NewManualGroupHandler(groups *recipeapp.GroupService) *ManualGroupHandler {
	return &ManualGroupHandler{groups: groups}
}

// List handles GET /manual-groups
func (h *ManualGroupHandler) List(c *gin.Context) {
	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mapSlice(groups, toManualGroupResponse))
}

// Create handles POST /manual-groups
func (h *ManualGroupHandler) Create(c *gin.Context) {
	var req ManualGroupRequest
	if !h.BindJSON(c, &req) {
		return
	}
	g, err := h.groups.Create(c.Request.Context(),
		deref(req.Name), deref(req.Description), req.TemplateID, deref(req.Currency))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toManualGroupResponse(g))
}

// Get handles GET /manual-groups/:id
func (h *ManualGroupHandler) Get(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Group not found")
	if !ok {
		return
	}
	d, err := h.groups.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toManualGroupDetailResponse(d))
}

// Update handles PUT /manual-groups/:id
func (h *ManualGroupHandler) Update(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Group not found")
	if !ok {
		return
	}
	var req ManualGroupRequest
	if !h.BindJSON(c, &req) {
		return
	}
	d, err := h.groups.Update(c.Request.Context(), id, recipeapp.UpdateGroupInput{
		GroupUpdate: recipe.GroupUpdate{
			Name:        req.Name,
			Description: req.Description,
			TemplateID:  req.TemplateID,
			Currency:    req.Currency,
			IsActive:    req.IsActive,
		},
		ApplyTemplateToAll: req.ApplyTemplateToAll,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toManualGroupDetailResponse(d))
}

// Delete handles DELETE /manual-groups/:id
func (h *ManualGroupHandler) Delete(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Group not found")
	if !ok {
		return
	}
	if err := h.groups.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"success": true})
}
