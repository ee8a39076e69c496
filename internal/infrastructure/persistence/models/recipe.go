package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storelaunch/backend/internal/domain/recipe"
)

// ManualGroupModel is the persistence model for manual groups
type ManualGroupModel struct {
	BaseModel
	Name        string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:text"`
	TemplateID  *uuid.UUID `gorm:"type:varchar(36);index"`
	Currency    string     `gorm:"type:varchar(8)"`
	IsActive    bool       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ManualGroupModel) TableName() string {
	return "manual_groups"
}

// ToDomain converts the persistence model to a domain group
func (m *ManualGroupModel) ToDomain() *recipe.ManualGroup {
	return &recipe.ManualGroup{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: m.Description,
		TemplateID:  m.TemplateID,
		Currency:    m.Currency,
		IsActive:    m.IsActive,
	}
}

// ManualGroupModelFromDomain creates a persistence model from a domain group
func ManualGroupModelFromDomain(g *recipe.ManualGroup) *ManualGroupModel {
	m := &ManualGroupModel{
		Name:        g.Name,
		Description: g.Description,
		TemplateID:  g.TemplateID,
		Currency:    g.Currency,
		IsActive:    g.IsActive,
	}
	m.FromDomainBaseEntity(g.BaseEntity)
	return m
}

// MenuManualModel is the persistence model for menu manuals
type MenuManualModel struct {
	AggregateModel
	Name          string           `gorm:"type:varchar(200);not null;index"`
	KoreanName    string           `gorm:"type:varchar(200)"`
	ImageURL      string           `gorm:"column:image_url;type:varchar(1000)"`
	ShelfLife     string           `gorm:"type:varchar(100)"`
	Yield         decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	YieldUnit     string           `gorm:"type:varchar(20)"`
	SellingPrice  *decimal.Decimal `gorm:"type:decimal(18,4)"`
	Notes         string           `gorm:"type:text"`
	CookingMethod string           `gorm:"type:text"`
	IsActive      bool             `gorm:"not null"`
	IsArchived    bool             `gorm:"not null"`
	GroupID       *uuid.UUID       `gorm:"type:varchar(36);index"`

	Group        *ManualGroupModel        `gorm:"foreignKey:GroupID"`
	Ingredients  []ManualIngredientModel  `gorm:"foreignKey:ManualID"`
	CostVersions []ManualCostVersionModel `gorm:"foreignKey:ManualID"`
}

// TableName returns the table name for GORM
func (MenuManualModel) TableName() string {
	return "menu_manuals"
}

// ToDomain converts the persistence model to a domain manual, including
// whatever associations were preloaded
func (m *MenuManualModel) ToDomain() *recipe.MenuManual {
	mm := &recipe.MenuManual{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		KoreanName:        m.KoreanName,
		ImageURL:          m.ImageURL,
		ShelfLife:         m.ShelfLife,
		Yield:             m.Yield,
		YieldUnit:         m.YieldUnit,
		SellingPrice:      m.SellingPrice,
		Notes:             m.Notes,
		CookingMethod:     m.CookingMethod,
		IsActive:          m.IsActive,
		IsArchived:        m.IsArchived,
		GroupID:           m.GroupID,
		Ingredients:       make([]*recipe.ManualIngredient, 0, len(m.Ingredients)),
		CostVersions:      make([]*recipe.ManualCostVersion, 0, len(m.CostVersions)),
	}
	if m.Group != nil {
		mm.Group = m.Group.ToDomain()
	}
	for i := range m.Ingredients {
		mm.Ingredients = append(mm.Ingredients, m.Ingredients[i].ToDomain())
	}
	for i := range m.CostVersions {
		mm.CostVersions = append(mm.CostVersions, m.CostVersions[i].ToDomain())
	}
	return mm
}

// MenuManualModelFromDomain creates a persistence model without associations
func MenuManualModelFromDomain(mm *recipe.MenuManual) *MenuManualModel {
	m := &MenuManualModel{
		Name:          mm.Name,
		KoreanName:    mm.KoreanName,
		ImageURL:      mm.ImageURL,
		ShelfLife:     mm.ShelfLife,
		Yield:         mm.Yield,
		YieldUnit:     mm.YieldUnit,
		SellingPrice:  mm.SellingPrice,
		Notes:         mm.Notes,
		CookingMethod: mm.CookingMethod,
		IsActive:      mm.IsActive,
		IsArchived:    mm.IsArchived,
		GroupID:       mm.GroupID,
	}
	m.FromDomainAggregateRoot(mm.BaseAggregateRoot)
	return m
}

// ManualIngredientModel is the persistence model for manual ingredients
type ManualIngredientModel struct {
	ID           uuid.UUID       `gorm:"type:varchar(36);primaryKey"`
	ManualID     uuid.UUID       `gorm:"type:varchar(36);not null;index"`
	IngredientID *uuid.UUID      `gorm:"type:varchar(36);index"`
	Name         string          `gorm:"type:varchar(200)"`
	KoreanName   string          `gorm:"type:varchar(200)"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Unit         string          `gorm:"type:varchar(20);not null"`
	Section      string          `gorm:"type:varchar(50);not null"`
	SortOrder    int             `gorm:"not null;default:0"`
	Notes        string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ManualIngredientModel) TableName() string {
	return "manual_ingredients"
}

// ToDomain converts the persistence model to a domain manual ingredient
func (m *ManualIngredientModel) ToDomain() *recipe.ManualIngredient {
	return &recipe.ManualIngredient{
		ID:           m.ID,
		ManualID:     m.ManualID,
		IngredientID: m.IngredientID,
		Name:         m.Name,
		KoreanName:   m.KoreanName,
		Quantity:     m.Quantity,
		Unit:         m.Unit,
		Section:      m.Section,
		SortOrder:    m.SortOrder,
		Notes:        m.Notes,
	}
}

// ManualIngredientModelFromDomain creates a persistence model from a domain manual ingredient
func ManualIngredientModelFromDomain(i *recipe.ManualIngredient) *ManualIngredientModel {
	return &ManualIngredientModel{
		ID:           i.ID,
		ManualID:     i.ManualID,
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

// ManualCostVersionModel is the persistence model for cost versions
type ManualCostVersionModel struct {
	ID           uuid.UUID        `gorm:"type:varchar(36);primaryKey"`
	ManualID     uuid.UUID        `gorm:"type:varchar(36);not null;uniqueIndex:idx_manual_template"`
	TemplateID   uuid.UUID        `gorm:"type:varchar(36);not null;uniqueIndex:idx_manual_template"`
	Name         string           `gorm:"type:varchar(200);not null"`
	Description  string           `gorm:"type:text"`
	TotalCost    decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Currency     string           `gorm:"type:varchar(8);not null"`
	CostPerUnit  *decimal.Decimal `gorm:"type:decimal(18,4)"`
	IsActive     bool             `gorm:"not null"`
	CalculatedAt time.Time        `gorm:"not null"`
	CreatedAt    time.Time        `gorm:"not null"`
	UpdatedAt    time.Time        `gorm:"not null"`

	Lines []ManualCostLineModel `gorm:"foreignKey:CostVersionID"`
}

// TableName returns the table name for GORM
func (ManualCostVersionModel) TableName() string {
	return "manual_cost_versions"
}

// ToDomain converts the persistence model to a domain cost version
func (m *ManualCostVersionModel) ToDomain() *recipe.ManualCostVersion {
	v := &recipe.ManualCostVersion{
		ID:           m.ID,
		ManualID:     m.ManualID,
		TemplateID:   m.TemplateID,
		Name:         m.Name,
		Description:  m.Description,
		TotalCost:    m.TotalCost,
		Currency:     m.Currency,
		CostPerUnit:  m.CostPerUnit,
		IsActive:     m.IsActive,
		CalculatedAt: m.CalculatedAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		Lines:        make([]*recipe.ManualCostLine, 0, len(m.Lines)),
	}
	for i := range m.Lines {
		v.Lines = append(v.Lines, m.Lines[i].ToDomain())
	}
	return v
}

// ManualCostVersionModelFromDomain creates a persistence model with its lines
func ManualCostVersionModelFromDomain(v *recipe.ManualCostVersion) *ManualCostVersionModel {
	m := &ManualCostVersionModel{
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
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
		Lines:        make([]ManualCostLineModel, 0, len(v.Lines)),
	}
	for _, l := range v.Lines {
		m.Lines = append(m.Lines, ManualCostLineModel{
			ID:            l.ID,
			CostVersionID: v.ID,
			IngredientID:  l.IngredientID,
			UnitPrice:     l.UnitPrice,
			Quantity:      l.Quantity,
			Unit:          l.Unit,
			YieldRate:     l.YieldRate,
			LineCost:      l.LineCost,
		})
	}
	return m
}

// ManualCostLineModel is the persistence model for cost lines
type ManualCostLineModel struct {
	ID            uuid.UUID       `gorm:"type:varchar(36);primaryKey"`
	CostVersionID uuid.UUID       `gorm:"type:varchar(36);not null;index"`
	IngredientID  uuid.UUID       `gorm:"type:varchar(36);not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Unit          string          `gorm:"type:varchar(20)"`
	YieldRate     decimal.Decimal `gorm:"type:decimal(7,2);not null"`
	LineCost      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (ManualCostLineModel) TableName() string {
	return "manual_cost_lines"
}

// ToDomain converts the persistence model to a domain cost line
func (m *ManualCostLineModel) ToDomain() *recipe.ManualCostLine {
	return &recipe.ManualCostLine{
		ID:            m.ID,
		CostVersionID: m.CostVersionID,
		IngredientID:  m.IngredientID,
		UnitPrice:     m.UnitPrice,
		Quantity:      m.Quantity,
		Unit:          m.Unit,
		YieldRate:     m.YieldRate,
		LineCost:      m.LineCost,
	}
}
