package handler

import (
	"github.com/gin-gonic/gin"
	pricingapp "github.com/storelaunch/backend/internal/application/pricing"
	"github.com/storelaunch/backend/internal/domain/pricing"
)

// VendorHandler handles vendor directory requests
type VendorHandler struct {
	BaseHandler
	vendors *pricingapp.VendorService
}

// NewVendorHandler creates a new VendorHandler
func NewVendorHandler(vendors *pricingapp.VendorService) *VendorHandler {
	return &VendorHandler{vendors: vendors}
}

// List handles GET /vendors?country&category
func (h *VendorHandler) List(c *gin.Context) {
	vendors, err := h.vendors.List(c.Request.Context(), pricing.VendorFilter{
		Country:  c.Query("country"),
		Category: c.Query("category"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mapSlice(vendors, toVendorResponse))
}

// Create handles POST /vendors
func (h *VendorHandler) Create(c *gin.Context) {
	var req VendorRequest
	if !h.BindJSON(c, &req) {
		return
	}
	v, err := h.vendors.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toVendorResponse(v))
}

// Update handles PUT /vendors/:id
func (h *VendorHandler) Update(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Vendor not found")
	if !ok {
		return
	}
	var req VendorRequest
	if !h.BindJSON(c, &req) {
		return
	}
	v, err := h.vendors.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toVendorResponse(v))
}

// Delete handles DELETE /vendors/:id
func (h *VendorHandler) Delete(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Vendor not found")
	if !ok {
		return
	}
	if err := h.vendors.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"success": true})
}
