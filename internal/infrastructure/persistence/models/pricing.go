package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storelaunch/backend/internal/domain/pricing"
)

// CountryModel is the persistence model for countries
type CountryModel struct {
	BaseModel
	Code     string `gorm:"type:varchar(8);not null;uniqueIndex"`
	Name     string `gorm:"type:varchar(100);not null"`
	Currency string `gorm:"type:varchar(8);not null"`
	Timezone string `gorm:"type:varchar(64)"`
}

// TableName returns the table name for GORM
func (CountryModel) TableName() string {
	return "countries"
}

// ToDomain converts the persistence model to a domain country
func (m *CountryModel) ToDomain() *pricing.Country {
	return &pricing.Country{
		BaseEntity: m.BaseModel.ToDomain(),
		Code:       m.Code,
		Name:       m.Name,
		Currency:   m.Currency,
		Timezone:   m.Timezone,
	}
}

// CountryModelFromDomain creates a persistence model from a domain country
func CountryModelFromDomain(c *pricing.Country) *CountryModel {
	m := &CountryModel{Code: c.Code, Name: c.Name, Currency: c.Currency, Timezone: c.Timezone}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// IngredientMasterModel is the persistence model for ingredient masters
type IngredientMasterModel struct {
	BaseModel
	Category    string          `gorm:"type:varchar(100);index"`
	KoreanName  string          `gorm:"type:varchar(200)"`
	EnglishName string          `gorm:"type:varchar(200);not null;index"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Unit        string          `gorm:"type:varchar(20)"`
	YieldRate   decimal.Decimal `gorm:"type:decimal(7,2);not null"`
}

// TableName returns the table name for GORM
func (IngredientMasterModel) TableName() string {
	return "ingredient_masters"
}

// ToDomain converts the persistence model to a domain ingredient
func (m *IngredientMasterModel) ToDomain() *pricing.IngredientMaster {
	return &pricing.IngredientMaster{
		BaseEntity:  m.BaseModel.ToDomain(),
		Category:    m.Category,
		KoreanName:  m.KoreanName,
		EnglishName: m.EnglishName,
		Quantity:    m.Quantity,
		Unit:        m.Unit,
		YieldRate:   m.YieldRate,
	}
}

// IngredientMasterModelFromDomain creates a persistence model from a domain ingredient
func IngredientMasterModelFromDomain(i *pricing.IngredientMaster) *IngredientMasterModel {
	m := &IngredientMasterModel{
		Category:    i.Category,
		KoreanName:  i.KoreanName,
		EnglishName: i.EnglishName,
		Quantity:    i.Quantity,
		Unit:        i.Unit,
		YieldRate:   i.YieldRate,
	}
	m.FromDomainBaseEntity(i.BaseEntity)
	return m
}

// IngredientTemplateModel is the persistence model for price templates
type IngredientTemplateModel struct {
	AggregateModel
	Name        string    `gorm:"type:varchar(200);not null"`
	CountryID   uuid.UUID `gorm:"type:varchar(36);not null;index"`
	Description string    `gorm:"type:text"`
	IsActive    bool      `gorm:"not null"`

	Items []IngredientTemplateItemModel `gorm:"foreignKey:TemplateID"`
}

// TableName returns the table name for GORM
func (IngredientTemplateModel) TableName() string {
	return "ingredient_templates"
}

// ToDomain converts the persistence model to a domain template
func (m *IngredientTemplateModel) ToDomain() *pricing.IngredientTemplate {
	t := &pricing.IngredientTemplate{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		CountryID:         m.CountryID,
		Description:       m.Description,
		IsActive:          m.IsActive,
		Items:             make([]*pricing.IngredientTemplateItem, 0, len(m.Items)),
	}
	for i := range m.Items {
		t.Items = append(t.Items, m.Items[i].ToDomain())
	}
	return t
}

// IngredientTemplateModelFromDomain creates a persistence model without items
func IngredientTemplateModelFromDomain(t *pricing.IngredientTemplate) *IngredientTemplateModel {
	m := &IngredientTemplateModel{
		Name:        t.Name,
		CountryID:   t.CountryID,
		Description: t.Description,
		IsActive:    t.IsActive,
	}
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	return m
}

// IngredientTemplateItemModel is the persistence model for template prices
type IngredientTemplateItemModel struct {
	ID           uuid.UUID        `gorm:"type:varchar(36);primaryKey"`
	TemplateID   uuid.UUID        `gorm:"type:varchar(36);not null;uniqueIndex:idx_template_ingredient"`
	IngredientID uuid.UUID        `gorm:"type:varchar(36);not null;uniqueIndex:idx_template_ingredient"`
	Price        decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Currency     string           `gorm:"type:varchar(8);not null"`
	YieldRate    *decimal.Decimal `gorm:"type:decimal(7,2)"`
	CreatedAt    time.Time        `gorm:"not null"`
	UpdatedAt    time.Time        `gorm:"not null"`

	Ingredient *IngredientMasterModel `gorm:"foreignKey:IngredientID"`
}

// TableName returns the table name for GORM
func (IngredientTemplateItemModel) TableName() string {
	return "ingredient_template_items"
}

// ToDomain converts the persistence model to a domain item
func (m *IngredientTemplateItemModel) ToDomain() *pricing.IngredientTemplateItem {
	it := &pricing.IngredientTemplateItem{
		ID:           m.ID,
		TemplateID:   m.TemplateID,
		IngredientID: m.IngredientID,
		Price:        m.Price,
		Currency:     m.Currency,
		YieldRate:    m.YieldRate,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Ingredient != nil {
		it.Ingredient = m.Ingredient.ToDomain()
	}
	return it
}

// IngredientTemplateItemModelFromDomain creates a persistence model from a domain item
func IngredientTemplateItemModelFromDomain(it *pricing.IngredientTemplateItem) *IngredientTemplateItemModel {
	return &IngredientTemplateItemModel{
		ID:           it.ID,
		TemplateID:   it.TemplateID,
		IngredientID: it.IngredientID,
		Price:        it.Price,
		Currency:     it.Currency,
		YieldRate:    it.YieldRate,
		CreatedAt:    it.CreatedAt,
		UpdatedAt:    it.UpdatedAt,
	}
}

// PriceHistoryModel is the persistence model for price changes
type PriceHistoryModel struct {
	ID             uuid.UUID       `gorm:"type:varchar(36);primaryKey"`
	TemplateItemID uuid.UUID       `gorm:"type:varchar(36);not null;index"`
	OldPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	NewPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency       string          `gorm:"type:varchar(8);not null"`
	ChangedBy      *uuid.UUID      `gorm:"type:varchar(36)"`
	Reason         string          `gorm:"type:text"`
	CreatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PriceHistoryModel) TableName() string {
	return "price_histories"
}

// ToDomain converts the persistence model to a domain history entry
func (m *PriceHistoryModel) ToDomain() *pricing.PriceHistory {
	return &pricing.PriceHistory{
		ID:             m.ID,
		TemplateItemID: m.TemplateItemID,
		OldPrice:       m.OldPrice,
		NewPrice:       m.NewPrice,
		Currency:       m.Currency,
		ChangedBy:      m.ChangedBy,
		Reason:         m.Reason,
		CreatedAt:      m.CreatedAt,
	}
}

// PriceHistoryModelFromDomain creates a persistence model from a domain history entry
func PriceHistoryModelFromDomain(h *pricing.PriceHistory) *PriceHistoryModel {
	return &PriceHistoryModel{
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

// VendorModel is the persistence model for vendors
type VendorModel struct {
	BaseModel
	Name     string `gorm:"type:varchar(200);not null"`
	Category string `gorm:"type:varchar(100);index"`
	Country  string `gorm:"type:varchar(8);index"`
	City     string `gorm:"type:varchar(100)"`
	Address  string `gorm:"type:varchar(500)"`
	Phone    string `gorm:"type:varchar(50)"`
	Email    string `gorm:"type:varchar(200)"`
	Website  string `gorm:"type:varchar(500)"`
	Notes    string `gorm:"type:text"`
	IsActive bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (VendorModel) TableName() string {
	return "vendors"
}

// ToDomain converts the persistence model to a domain vendor
func (m *VendorModel) ToDomain() *pricing.Vendor {
	return &pricing.Vendor{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Category:   m.Category,
		Country:    m.Country,
		City:       m.City,
		Address:    m.Address,
		Phone:      m.Phone,
		Email:      m.Email,
		Website:    m.Website,
		Notes:      m.Notes,
		IsActive:   m.IsActive,
	}
}

// VendorModelFromDomain creates a persistence model from a domain vendor
func VendorModelFromDomain(v *pricing.Vendor) *VendorModel {
	m := &VendorModel{
		Name:     v.Name,
		Category: v.Category,
		Country:  v.Country,
		City:     v.City,
		Address:  v.Address,
		Phone:    v.Phone,
		Email:    v.Email,
		Website:  v.Website,
		Notes:    v.Notes,
		IsActive: v.IsActive,
	}
	m.FromDomainBaseEntity(v.BaseEntity)
	return m
}
