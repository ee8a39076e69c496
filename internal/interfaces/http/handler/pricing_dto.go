package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storelaunch/backend/internal/domain/pricing"
)

// =====================
// Pricing Request DTOs
// =====================

// CreateIngredientRequest adds an ingredient master
type CreateIngredientRequest struct {
	Category    string          `json:"category" binding:"max=100"`
	KoreanName  string          `json:"koreanName" binding:"max=200"`
	EnglishName string          `json:"englishName" binding:"max=200"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit" binding:"max=50"`
	YieldRate   decimal.Decimal `json:"yieldRate"`
}

// CreateIngredientTemplateRequest creates a price template for a country
type CreateIngredientTemplateRequest struct {
	Name        string     `json:"name" binding:"max=200"`
	CountryID   *uuid.UUID `json:"countryId"`
	Description string     `json:"description"`
	Currency    string     `json:"currency" binding:"max=3"`
}

// UpdateTemplateItemRequest changes one template price
type UpdateTemplateItemRequest struct {
	Price     *decimal.Decimal `json:"price"`
	Currency  string           `json:"currency" binding:"max=3"`
	YieldRate *decimal.Decimal `json:"yieldRate"`
	Reason    string           `json:"reason"`
}

// VendorRequest creates or updates a vendor
type VendorRequest struct {
	Name     string `json:"name" binding:"max=200"`
	Category string `json:"category"`
	Country  string `json:"country"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Website  string `json:"website"`
	Notes    string `json:"notes"`
	IsActive *bool  `json:"isActive"`
}

func (r VendorRequest) toInput() pricing.VendorInput {
	return pricing.VendorInput{
		Name:     r.Name,
		Category: r.Category,
		Country:  r.Country,
		City:     r.City,
		Address:  r.Address,
		Phone:    r.Phone,
		Email:    r.Email,
		Website:  r.Website,
		Notes:    r.Notes,
		IsActive: r.IsActive,
	}
}

// =====================
// Pricing Response DTOs
// =====================

// CountryResponse is a supported country
type CountryResponse struct {
	ID       uuid.UUID `json:"id"`
	Code     string    `json:"code"`
	Name     string    `json:"name"`
	Currency string    `json:"currency"`
	Timezone string    `json:"timezone"`
}

// IngredientResponse is an ingredient master
type IngredientResponse struct {
	ID          uuid.UUID       `json:"id"`
	Category    string          `json:"category"`
	KoreanName  string          `json:"koreanName"`
	EnglishName string          `json:"englishName"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	YieldRate   decimal.Decimal `json:"yieldRate"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// TemplateItemResponse is one priced ingredient of a template
type TemplateItemResponse struct {
	ID           uuid.UUID           `json:"id"`
	TemplateID   uuid.UUID           `json:"templateId"`
	IngredientID uuid.UUID           `json:"ingredientId"`
	Price        decimal.Decimal     `json:"price"`
	Currency     string              `json:"currency"`
	YieldRate    *decimal.Decimal    `json:"yieldRate"`
	Ingredient   *IngredientResponse `json:"ingredient,omitempty"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// IngredientTemplateResponse is a price template
type IngredientTemplateResponse struct {
	ID          uuid.UUID              `json:"id"`
	Name        string                 `json:"name"`
	CountryID   uuid.UUID              `json:"countryId"`
	Description string                 `json:"description"`
	IsActive    bool                   `json:"isActive"`
	Items       []TemplateItemResponse `json:"items,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// PriceHistoryResponse is one recorded price change
type PriceHistoryResponse struct {
	ID             uuid.UUID       `json:"id"`
	TemplateItemID uuid.UUID       `json:"templateItemId"`
	OldPrice       decimal.Decimal `json:"oldPrice"`
	NewPrice       decimal.Decimal `json:"newPrice"`
	Currency       string          `json:"currency"`
	ChangedBy      *uuid.UUID      `json:"changedBy"`
	Reason         string          `json:"reason"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// VendorResponse is a supplier contact
type VendorResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Country   string    `json:"country"`
	City      string    `json:"city"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Website   string    `json:"website"`
	Notes     string    `json:"notes"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCountryResponse(c *pricing.Country) CountryResponse {
	return CountryResponse{ID: c.ID, Code: c.Code, Name: c.Name, Currency: c.Currency, Timezone: c.Timezone}
}

func toIngredientResponse(m *pricing.IngredientMaster) IngredientResponse {
	return IngredientResponse{
		ID:          m.ID,
		Category:    m.Category,
		KoreanName:  m.KoreanName,
		EnglishName: m.EnglishName,
		Quantity:    m.Quantity,
		Unit:        m.Unit,
		YieldRate:   m.YieldRate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toTemplateItemResponse(item *pricing.IngredientTemplateItem) TemplateItemResponse {
	resp := TemplateItemResponse{
		ID:           item.ID,
		TemplateID:   item.TemplateID,
		IngredientID: item.IngredientID,
		Price:        item.Price,
		Currency:     item.Currency,
		YieldRate:    item.YieldRate,
		UpdatedAt:    item.UpdatedAt,
	}
	if item.Ingredient != nil {
		ing := toIngredientResponse(item.Ingredient)
		resp.Ingredient = &ing
	}
	return resp
}

func toIngredientTemplateResponse(t *pricing.IngredientTemplate) IngredientTemplateResponse {
	resp := IngredientTemplateResponse{
		ID:          t.ID,
		Name:        t.Name,
		CountryID:   t.CountryID,
		Description: t.Description,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if len(t.Items) > 0 {
		resp.Items = mapSlice(t.Items, toTemplateItemResponse)
	}
	return resp
}

func toPriceHistoryResponse(h *pricing.PriceHistory) PriceHistoryResponse {
	return PriceHistoryResponse{
		ID:             h.ID,
		TemplateItemID: h.TemplateItemID,
		OldPrice:       h.OldPrice,
		NewPrice:       h.NewPrice,
		Currency:       h.Currency,
		ChangedBy:      h.ChangedBy,
		Reason:         h.Reason,
		CreatedAt:      h.CreatedAt,
	}
}

func toVendorResponse(v *pricing.Vendor) VendorResponse {
	return VendorResponse{
		ID:        v.ID,
		Name:      v.Name,
		Category:  v.Category,
		Country:   v.Country,
		City:      v.City,
		Address:   v.Address,
		Phone:     v.Phone,
		Email:     v.Email,
		Website:   v.Website,
		Notes:     v.Notes,
		IsActive:  v.IsActive,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
