package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	recipeapp "github.com/storelaunch/backend/internal/application/recipe"
	"github.com/storelaunch/backend/internal/domain/recipe"
)

// =====================
// Recipe Request DTOs
// =====================

// ManualIngredientRequest is one ingredient line of a manual
type ManualIngredientRequest struct {
	IngredientID *uuid.UUID       `json:"ingredientId"`
	Name         string           `json:"name" binding:"max=200"`
	KoreanName   string           `json:"koreanName" binding:"max=200"`
	Quantity     *decimal.Decimal `json:"quantity"`
	Unit         string           `json:"unit" binding:"max=50"`
	Section      string           `json:"section" binding:"max=50"`
	Notes        string           `json:"notes"`
}

func (r ManualIngredientRequest) toInput() recipe.IngredientInput {
	in := recipe.IngredientInput{
		IngredientID: r.IngredientID,
		Name:         r.Name,
		KoreanName:   r.KoreanName,
		Unit:         r.Unit,
		Section:      r.Section,
		Notes:        r.Notes,
	}
	if r.Quantity != nil {
		in.Quantity = *r.Quantity
	}
	return in
}

// CreateManualRequest creates a manual, optionally once per active group
type CreateManualRequest struct {
	Name           string                    `json:"name" binding:"max=200"`
	KoreanName     string                    `json:"koreanName" binding:"max=200"`
	ImageURL       string                    `json:"imageUrl"`
	ShelfLife      string                    `json:"shelfLife"`
	Yield          decimal.Decimal           `json:"yield"`
	YieldUnit      string                    `json:"yieldUnit"`
	SellingPrice   *decimal.Decimal          `json:"sellingPrice"`
	Notes          string                    `json:"notes"`
	CookingMethod  string                    `json:"cookingMethod"`
	IsActive       *bool                     `json:"isActive"`
	Ingredients    []ManualIngredientRequest `json:"ingredients" binding:"dive"`
	AddToAllGroups bool                      `json:"addToAllGroups"`
}

func (r CreateManualRequest) toInput() recipeapp.CreateManualInput {
	return recipeapp.CreateManualInput{
		Manual: recipe.ManualInput{
			Name:          r.Name,
			KoreanName:    r.KoreanName,
			ImageURL:      r.ImageURL,
			ShelfLife:     r.ShelfLife,
			Yield:         r.Yield,
			YieldUnit:     r.YieldUnit,
			SellingPrice:  r.SellingPrice,
			Notes:         r.Notes,
			CookingMethod: r.CookingMethod,
			IsActive:      r.IsActive,
		},
		Ingredients:    mapSlice(r.Ingredients, ManualIngredientRequest.toInput),
		AddToAllGroups: r.AddToAllGroups,
	}
}

// UpdateManualRequest changes a manual. Absent fields are left unchanged.
type UpdateManualRequest struct {
	Name          *string                    `json:"name"`
	KoreanName    *string                    `json:"koreanName"`
	ImageURL      *string                    `json:"imageUrl"`
	ShelfLife     *string                    `json:"shelfLife"`
	Yield         *decimal.Decimal           `json:"yield"`
	YieldUnit     *string                    `json:"yieldUnit"`
	SellingPrice  *decimal.Decimal           `json:"sellingPrice"`
	Notes         *string                    `json:"notes"`
	CookingMethod *string                    `json:"cookingMethod"`
	IsActive      *bool                      `json:"isActive"`
	Ingredients   *[]ManualIngredientRequest `json:"ingredients"`
	TemplateID    *uuid.UUID                 `json:"templateId"`
}

func (r UpdateManualRequest) toInput() recipeapp.UpdateManualInput {
	in := recipeapp.UpdateManualInput{
		Name:          r.Name,
		KoreanName:    r.KoreanName,
		ImageURL:      r.ImageURL,
		ShelfLife:     r.ShelfLife,
		Yield:         r.Yield,
		YieldUnit:     r.YieldUnit,
		SellingPrice:  r.SellingPrice,
		Notes:         r.Notes,
		CookingMethod: r.CookingMethod,
		IsActive:      r.IsActive,
		TemplateID:    r.TemplateID,
	}
	if r.Ingredients != nil {
		ings := mapSlice(*r.Ingredients, ManualIngredientRequest.toInput)
		in.Ingredients = &ings
	}
	return in
}

// CostVersionRequest selects the template to price a manual against
type CostVersionRequest struct {
	TemplateID uuid.UUID `json:"templateId" binding:"required"`
}

// ManualGroupRequest creates or updates a manual group
type ManualGroupRequest struct {
	Name               *string    `json:"name"`
	Description        *string    `json:"description"`
	TemplateID         *uuid.UUID `json:"templateId"`
	Currency           *string    `json:"currency" binding:"omitempty,max=3"`
	IsActive           *bool      `json:"isActive"`
	ApplyTemplateToAll bool       `json:"applyTemplateToAll"`
}

// =====================
// Recipe Response DTOs
// =====================

// ManualIngredientResponse is one ingredient line of a manual
type ManualIngredientResponse struct {
	ID           uuid.UUID       `json:"id"`
	IngredientID *uuid.UUID      `json:"ingredientId"`
	Name         string          `json:"name"`
	KoreanName   string          `json:"koreanName"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	Section      string          `json:"section"`
	SortOrder    int             `json:"sortOrder"`
	Notes        string          `json:"notes"`
}

// CostLineResponse is the cost of one manual ingredient
type CostLineResponse struct {
	ID           uuid.UUID       `json:"id"`
	IngredientID uuid.UUID       `json:"ingredientId"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	YieldRate    decimal.Decimal `json:"yieldRate"`
	LineCost     decimal.Decimal `json:"lineCost"`
}

// CostVersionResponse is a computed recipe cost against one template
type CostVersionResponse struct {
	ID           uuid.UUID          `json:"id"`
	ManualID     uuid.UUID          `json:"manualId"`
	TemplateID   uuid.UUID          `json:"templateId"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	TotalCost    decimal.Decimal    `json:"totalCost"`
	Currency     string             `json:"currency"`
	CostPerUnit  *decimal.Decimal   `json:"costPerUnit"`
	IsActive     bool               `json:"isActive"`
	CalculatedAt time.Time          `json:"calculatedAt"`
	Lines        []CostLineResponse `json:"lines,omitempty"`
}

// GroupRefResponse is the short form of a manual's group
type GroupRefResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	TemplateID *uuid.UUID `json:"templateId"`
}

// ManualResponse is a menu manual
type ManualResponse struct {
	ID            uuid.UUID                  `json:"id"`
	Name          string                     `json:"name"`
	KoreanName    string                     `json:"koreanName"`
	ImageURL      string                     `json:"imageUrl"`
	ShelfLife     string                     `json:"shelfLife"`
	Yield         decimal.Decimal            `json:"yield"`
	YieldUnit     string                     `json:"yieldUnit"`
	SellingPrice  *decimal.Decimal           `json:"sellingPrice"`
	Notes         string                     `json:"notes"`
	CookingMethod string                     `json:"cookingMethod"`
	IsActive      bool                       `json:"isActive"`
	IsArchived    bool                       `json:"isArchived"`
	GroupID       *uuid.UUID                 `json:"groupId"`
	Group         *GroupRefResponse          `json:"group,omitempty"`
	Ingredients   []ManualIngredientResponse `json:"ingredients,omitempty"`
	CostVersions  []CostVersionResponse      `json:"costVersions,omitempty"`
	CreatedAt     time.Time                  `json:"createdAt"`
	UpdatedAt     time.Time                  `json:"updatedAt"`
}

// ManualGroupResponse is a manual group
type ManualGroupResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	TemplateID  *uuid.UUID `json:"templateId"`
	Currency    string     `json:"currency"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ManualGroupDetailResponse is a group with its template and manuals
type ManualGroupDetailResponse struct {
	ManualGroupResponse
	Template *IngredientTemplateResponse `json:"template"`
	Manuals  []ManualResponse            `json:"manuals"`
}

func toManualIngredientResponse(i *recipe.ManualIngredient) ManualIngredientResponse {
	return ManualIngredientResponse{
		ID:           i.ID,
		IngredientID: i.IngredientID,
		Name:         i.Name,
		KoreanName:   i.KoreanName,
		Quantity:     i.Quantity,
		Unit:         i.Unit,
		Section:      i.Section,
		SortOrder:    i.SortOrder,
		Notes:        i.Notes,
	}
}

func toCostLineResponse(l *recipe.ManualCostLine) CostLineResponse {
	return CostLineResponse{
		ID:           l.ID,
		IngredientID: l.IngredientID,
		UnitPrice:    l.UnitPrice,
		Quantity:     l.Quantity,
		Unit:         l.Unit,
		YieldRate:    l.YieldRate,
		LineCost:     l.LineCost,
	}
}

func toCostVersionResponse(v *recipe.ManualCostVersion) CostVersionResponse {
	return CostVersionResponse{
		ID:           v.ID,
		ManualID:     v.ManualID,
		TemplateID:   v.TemplateID,
		Name:         v.Name,
		Description:  v.Description,
		TotalCost:    v.TotalCost,
		Currency:     v.Currency,
		CostPerUnit:  v.CostPerUnit,
		IsActive:     v.IsActive,
		CalculatedAt: v.CalculatedAt,
		Lines:        mapSlice(v.Lines, toCostLineResponse),
	}
}

func toManualResponse(m *recipe.MenuManual) ManualResponse {
	resp := ManualResponse{
		ID:            m.ID,
		Name:          m.Name,
		KoreanName:    m.KoreanName,
		ImageURL:      m.ImageURL,
		ShelfLife:     m.ShelfLife,
		Yield:         m.Yield,
		YieldUnit:     m.YieldUnit,
		SellingPrice:  m.SellingPrice,
		Notes:         m.Notes,
		CookingMethod: m.CookingMethod,
		IsActive:      m.IsActive,
		IsArchived:    m.IsArchived,
		GroupID:       m.GroupID,
		Ingredients:   mapSlice(m.Ingredients, toManualIngredientResponse),
		CostVersions:  mapSlice(m.CostVersions, toCostVersionResponse),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.Group != nil {
		resp.Group = &GroupRefResponse{ID: m.Group.ID, Name: m.Group.Name, TemplateID: m.Group.TemplateID}
	}
	return resp
}

func toManualGroupResponse(g *recipe.ManualGroup) ManualGroupResponse {
	return ManualGroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		TemplateID:  g.TemplateID,
		Currency:    g.Currency,
		IsActive:    g.IsActive,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func toManualGroupDetailResponse(d *recipeapp.GroupDetail) ManualGroupDetailResponse {
	resp := ManualGroupDetailResponse{
		ManualGroupResponse: toManualGroupResponse(d.Group),
		Manuals:             mapSlice(d.Manuals, toManualResponse),
	}
	if d.Template != nil {
		tpl := toIngredientTemplateResponse(d.Template)
		resp.Template = &tpl
	}
	return resp
}
