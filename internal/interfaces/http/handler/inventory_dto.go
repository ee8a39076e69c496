package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storelaunch/backend/internal/domain/inventory"
)

// =====================
// Inventory Request DTOs
// =====================

// InventoryGroupRequest creates an inventory group
type InventoryGroupRequest struct {
	Name string `json:"name" binding:"max=200"`
}

// InventoryPeriodRequest opens a counting period
type InventoryPeriodRequest struct {
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	Notes     string `json:"notes"`
}

// PosLinkRequest maps a POS menu name to a manual
type PosLinkRequest struct {
	PosMenuName  string    `json:"posMenuName" binding:"required,max=200"`
	MenuManualID uuid.UUID `json:"menuManualId" binding:"required"`
}

// InventoryCountRequest is one ingredient count
type InventoryCountRequest struct {
	IngredientID       uuid.UUID       `json:"ingredientId" binding:"required"`
	OpeningStock       decimal.Decimal `json:"openingStock"`
	StockIn            decimal.Decimal `json:"stockIn"`
	Wastage            decimal.Decimal `json:"wastage"`
	ActualClosingStock decimal.Decimal `json:"actualClosingStock"`
}

// InventoryCountsRequest upserts counts by ingredient
type InventoryCountsRequest struct {
	Items []InventoryCountRequest `json:"items" binding:"required,dive"`
}

// InventorySalesLineRequest is the POS sales of one menu
type InventorySalesLineRequest struct {
	PosMenuName  string          `json:"posMenuName" binding:"required"`
	QuantitySold decimal.Decimal `json:"quantitySold"`
}

// InventorySalesRequest upserts sales by POS menu name
type InventorySalesRequest struct {
	Sales []InventorySalesLineRequest `json:"sales" binding:"required,dive"`
}

// =====================
// Inventory Response DTOs
// =====================

// InventoryGroupResponse is an inventory group
type InventoryGroupResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InventoryItemResponse is one counted ingredient of a period
type InventoryItemResponse struct {
	ID                 uuid.UUID        `json:"id"`
	PeriodID           uuid.UUID        `json:"periodId"`
	IngredientID       uuid.UUID        `json:"ingredientId"`
	OpeningStock       decimal.Decimal  `json:"openingStock"`
	StockIn            decimal.Decimal  `json:"stockIn"`
	Wastage            decimal.Decimal  `json:"wastage"`
	ActualClosingStock decimal.Decimal  `json:"actualClosingStock"`
	TotalUsage         *decimal.Decimal `json:"totalUsage"`
	TheoreticalUsage   *decimal.Decimal `json:"theoreticalUsage"`
	Variance           *decimal.Decimal `json:"variance"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// PeriodSalesResponse is the sales of one linked menu
type PeriodSalesResponse struct {
	ID            uuid.UUID       `json:"id"`
	PeriodID      uuid.UUID       `json:"periodId"`
	PosMenuLinkID uuid.UUID       `json:"posMenuLinkId"`
	QuantitySold  decimal.Decimal `json:"quantitySold"`
}

// InventoryPeriodResponse is a counting period
type InventoryPeriodResponse struct {
	ID        uuid.UUID               `json:"id"`
	GroupID   uuid.UUID               `json:"groupId"`
	StartDate string                  `json:"startDate"`
	EndDate   string                  `json:"endDate"`
	Status    string                  `json:"status"`
	Notes     string                  `json:"notes"`
	Items     []InventoryItemResponse `json:"items"`
	Sales     []PeriodSalesResponse   `json:"sales"`
	CreatedAt time.Time               `json:"createdAt"`
	UpdatedAt time.Time               `json:"updatedAt"`
}

// PosLinkResponse is a POS menu to manual mapping
type PosLinkResponse struct {
	ID           uuid.UUID `json:"id"`
	GroupID      uuid.UUID `json:"groupId"`
	PosMenuName  string    `json:"posMenuName"`
	MenuManualID uuid.UUID `json:"menuManualId"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toInventoryGroupResponse(g *inventory.Group) InventoryGroupResponse {
	return InventoryGroupResponse{ID: g.ID, Name: g.Name, CreatedAt: g.CreatedAt, UpdatedAt: g.UpdatedAt}
}

func toInventoryItemResponse(i *inventory.Item) InventoryItemResponse {
	return InventoryItemResponse{
		ID:                 i.ID,
		PeriodID:           i.PeriodID,
		IngredientID:       i.IngredientID,
		OpeningStock:       i.OpeningStock,
		StockIn:            i.StockIn,
		Wastage:            i.Wastage,
		ActualClosingStock: i.ActualClosingStock,
		TotalUsage:         i.TotalUsage,
		TheoreticalUsage:   i.TheoreticalUsage,
		Variance:           i.Variance,
		UpdatedAt:          i.UpdatedAt,
	}
}

func toPeriodSalesResponse(s *inventory.PeriodSales) PeriodSalesResponse {
	return PeriodSalesResponse{ID: s.ID, PeriodID: s.PeriodID, PosMenuLinkID: s.PosMenuLinkID, QuantitySold: s.QuantitySold}
}

func toInventoryPeriodResponse(p *inventory.Period) InventoryPeriodResponse {
	return InventoryPeriodResponse{
		ID:        p.ID,
		GroupID:   p.GroupID,
		StartDate: formatDate(p.StartDate),
		EndDate:   formatDate(p.EndDate),
		Status:    string(p.Status),
		Notes:     p.Notes,
		Items:     mapSlice(p.Items, toInventoryItemResponse),
		Sales:     mapSlice(p.Sales, toPeriodSalesResponse),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPosLinkResponse(l *inventory.PosMenuLink) PosLinkResponse {
	return PosLinkResponse{
		ID:           l.ID,
		GroupID:      l.GroupID,
		PosMenuName:  l.PosMenuName,
		MenuManualID: l.MenuManualID,
		CreatedAt:    l.CreatedAt,
	}
}
