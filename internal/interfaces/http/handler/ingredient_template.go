package handler

import (
	"github.com/gin-gonic/gin"
	pricingapp "github.com/storelaunch/backend/internal/application/pricing"
)

// IngredientTemplateHandler manages per-country ingredient price templates
type IngredientTemplateHandler struct {
	BaseHandler
	templates *pricingapp.TemplateService
}

// NewIngredientTemplateHandler creates a new IngredientTemplateHandler
func NewIngredientTemplateHandler(templates *pricingapp.TemplateService) *IngredientTemplateHandler {
	return &IngredientTemplateHandler{templates: templates}
}

// List handles GET /ingredient-templates?includeItems
func (h *IngredientTemplateHandler) List(c *gin.Context) {
	templates, err := h.templates.List(c.Request.Context(), queryBool(c, "includeItems"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mapSlice(templates, toIngredientTemplateResponse))
}

// Create handles POST /ingredient-templates
func (h *IngredientTemplateHandler) Create(c *gin.Context) {
	var req CreateIngredientTemplateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tpl, err := h.templates.Create(c.Request.Context(), pricingapp.CreateTemplateInput{
		Name:        req.Name,
		CountryID:   req.CountryID,
		Description: req.Description,
		Currency:    req.Currency,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toIngredientTemplateResponse(tpl))
}

// Get handles GET /ingredient-templates/:id
func (h *IngredientTemplateHandler) Get(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Template not found")
	if !ok {
		return
	}
	tpl, err := h.templates.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toIngredientTemplateResponse(tpl))
}

// UpdateItem handles PUT /ingredient-templates/:id/items/:itemId
func (h *IngredientTemplateHandler) UpdateItem(c *gin.Context) {
	templateID, ok := h.PathID(c, "id", "Template item not found")
	if !ok {
		return
	}
	itemID, ok := h.PathID(c, "itemId", "Template item not found")
	if !ok {
		return
	}
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	var req UpdateTemplateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.templates.UpdateItem(c.Request.Context(), pricingapp.UpdateItemInput{
		TemplateID: templateID,
		ItemID:     itemID,
		Price:      req.Price,
		Currency:   req.Currency,
		YieldRate:  req.YieldRate,
		Reason:     req.Reason,
		ChangedBy:  userID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toTemplateItemResponse(item))
}

// PriceHistory handles GET /ingredient-templates/:id/items/:itemId/history
func (h *IngredientTemplateHandler) PriceHistory(c *gin.Context) {
	templateID, ok := h.PathID(c, "id", "Template item not found")
	if !ok {
		return
	}
	itemID, ok := h.PathID(c, "itemId", "Template item not found")
	if !ok {
		return
	}

	history, err := h.templates.PriceHistory(c.Request.Context(), templateID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mapSlice(history, toPriceHistoryResponse))
}
