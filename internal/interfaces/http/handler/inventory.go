package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/storelaunch/backend/internal/application/inventory"
	"github.com/storelaunch/backend/internal/domain/inventory"
	"github.com/storelaunch/backend/internal/domain/launch"
)

// InventoryHandler handles inventory group, period and count endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// ListGroups handles GET /inventory/groups
func (h *InventoryHandler) ListGroups(c *gin.Context) {
	groups, err := h.inventoryService.ListGroups(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mapSlice(groups, toInventoryGroupResponse))
}

// CreateGroup handles POST /inventory/groups
func (h *InventoryHandler) CreateGroup(c *gin.Context) {
	var req InventoryGroupRequest
	if !h.BindJSON(c, &req) {
		return
	}
	g, err := h.inventoryService.CreateGroup(c.Request.Context(), req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toInventoryGroupResponse(g))
}

// ListPeriods handles GET /inventory/groups/:id/periods
func (h *InventoryHandler) ListPeriods(c *gin.Context) {
	groupID, ok := h.PathID(c, "id", "Group not found")
	if !ok {
		return
	}
	periods, err := h.inventoryService.ListPeriods(c.Request.Context(), groupID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mapSlice(periods, toInventoryPeriodResponse))
}

// CreatePeriod handles POST /inventory/groups/:id/periods
func (h *InventoryHandler) CreatePeriod(c *gin.Context) {
	groupID, ok := h.PathID(c, "id", "Group not found")
	if !ok {
		return
	}
	var req InventoryPeriodRequest
	if !h.BindJSON(c, &req) {
		return
	}
	start, err := launch.ParseDate(req.StartDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	end, err := launch.ParseDate(req.EndDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	p, err := h.inventoryService.CreatePeriod(c.Request.Context(), inventoryapp.CreatePeriodInput{
		GroupID:   groupID,
		StartDate: start,
		EndDate:   end,
		Notes:     req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toInventoryPeriodResponse(p))
}

// ListPosLinks handles GET /inventory/groups/:id/pos-links
func (h *InventoryHandler) ListPosLinks(c *gin.Context) {
	groupID, ok := h.PathID(c, "id", "Group not found")
	if !ok {
		return
	}
	links, err := h.inventoryService.Links(c.Request.Context(), groupID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mapSlice(links, toPosLinkResponse))
}

// LinkPosMenu handles POST /inventory/groups/:id/pos-links
func (h *InventoryHandler) LinkPosMenu(c *gin.Context) {
	groupID, ok := h.PathID(c, "id", "Group not found")
	if !ok {
		return
	}
	var req PosLinkRequest
	if !h.BindJSON(c, &req) {
		return
	}
	link, err := h.inventoryService.LinkPosMenu(c.Request.Context(), groupID, req.PosMenuName, req.MenuManualID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toPosLinkResponse(link))
}

// GetPeriod handles GET /inventory/periods/:id
func (h *InventoryHandler) GetPeriod(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Period not found")
	if !ok {
		return
	}
	p, err := h.inventoryService.GetPeriod(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toInventoryPeriodResponse(p))
}

// UpsertItems handles PUT /inventory/periods/:id/items
func (h *InventoryHandler) UpsertItems(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Period not found")
	if !ok {
		return
	}
	var req InventoryCountsRequest
	if !h.BindJSON(c, &req) {
		return
	}
	counts := make([]inventory.CountInput, len(req.Items))
	for i, it := range req.Items {
		counts[i] = inventory.CountInput{
			IngredientID:       it.IngredientID,
			OpeningStock:       it.OpeningStock,
			StockIn:            it.StockIn,
			Wastage:            it.Wastage,
			ActualClosingStock: it.ActualClosingStock,
		}
	}
	p, err := h.inventoryService.UpsertCounts(c.Request.Context(), id, counts)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toInventoryPeriodResponse(p))
}

// UpsertSales handles PUT /inventory/periods/:id/sales
func (h *InventoryHandler) UpsertSales(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Period not found")
	if !ok {
		return
	}
	var req InventorySalesRequest
	if !h.BindJSON(c, &req) {
		return
	}
	sales := make([]inventory.SalesInput, len(req.Sales))
	for i, s := range req.Sales {
		sales[i] = inventory.SalesInput{PosMenuName: s.PosMenuName, QuantitySold: s.QuantitySold}
	}
	p, err := h.inventoryService.UpsertSales(c.Request.Context(), id, sales)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toInventoryPeriodResponse(p))
}

// Calculate handles POST /inventory/periods/:id/calculate
func (h *InventoryHandler) Calculate(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Period not found")
	if !ok {
		return
	}
	p, err := h.inventoryService.Calculate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toInventoryPeriodResponse(p))
}

// Close handles POST /inventory/periods/:id/close
func (h *InventoryHandler) Close(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Period not found")
	if !ok {
		return
	}
	p, err := h.inventoryService.Close(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toInventoryPeriodResponse(p))
}
