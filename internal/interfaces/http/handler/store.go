package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	launchapp "github.com/storelaunch/backend/internal/application/launch"
	"github.com/storelaunch/backend/internal/domain/launch"
)

// StoreHandler handles store, planned open date and audit requests
type StoreHandler struct {
	BaseHandler
	stores *launchapp.StoreService
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(stores *launchapp.StoreService) *StoreHandler {
	return &StoreHandler{stores: stores}
}

// List handles GET /stores
func (h *StoreHandler) List(c *gin.Context) {
	stores, err := h.stores.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mapSlice(stores, toStoreResponse))
}

// Create handles POST /stores
func (h *StoreHandler) Create(c *gin.Context) {
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	var req StoreRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in := launchapp.CreateStoreInput{
		StoreInput:     req.toInput(),
		OpenDateReason: req.OpenDateReason,
		CreatedBy:      userID,
	}
	if req.PlannedOpenDate != "" {
		d, err := launch.ParseDate(req.PlannedOpenDate)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		in.PlannedOpenDate = &d
	}

	store, err := h.stores.Create(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toStoreResponse(store))
}

// Get handles GET /stores/:id
func (h *StoreHandler) Get(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Store not found")
	if !ok {
		return
	}
	store, err := h.stores.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toStoreResponse(store))
}

// Update handles PUT /stores/:id
func (h *StoreHandler) Update(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Store not found")
	if !ok {
		return
	}
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	var req StoreRequest
	if !h.BindJSON(c, &req) {
		return
	}
	store, err := h.stores.Update(c.Request.Context(), id, req.toInput(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toStoreResponse(store))
}

// Delete handles DELETE /stores/:id
func (h *StoreHandler) Delete(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Store not found")
	if !ok {
		return
	}
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	if err := h.stores.Delete(c.Request.Context(), id, userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"success": true})
}

// AddPlannedOpenDate handles POST /stores/:id/planned-open-dates
func (h *StoreHandler) AddPlannedOpenDate(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Store not found")
	if !ok {
		return
	}
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	var req PlannedDateRequest
	if !h.BindJSON(c, &req) {
		return
	}
	date, err := launch.ParseDate(req.Date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.stores.AddPlannedOpenDate(c.Request.Context(), launchapp.PlannedDateInput{
		StoreID:   id,
		Date:      date,
		Reason:    req.Reason,
		Policy:    req.Policy,
		ChangedBy: userID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toPlannedDateResultResponse(result))
}

// PlannedOpenDates handles GET /stores/:id/planned-open-dates
func (h *StoreHandler) PlannedOpenDates(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Store not found")
	if !ok {
		return
	}
	dates, err := h.stores.PlannedOpenDates(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mapSlice(dates, toPlannedOpenDateResponse))
}

// AuditLogs handles GET /stores/:id/audit-logs
func (h *StoreHandler) AuditLogs(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Store not found")
	if !ok {
		return
	}
	logs, err := h.stores.AuditLogs(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mapSlice(logs, toAuditLogResponse))
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := launch.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
