package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storelaunch/backend/internal/domain/inventory"
)

// InventoryGroupModel is the persistence model for inventory groups
type InventoryGroupModel struct {
	BaseModel
	Name string `gorm:"type:varchar(200);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (InventoryGroupModel) TableName() string {
	return "inventory_groups"
}

// ToDomain converts the persistence model to a domain group
func (m *InventoryGroupModel) ToDomain() *inventory.Group {
	return &inventory.Group{BaseEntity: m.BaseModel.ToDomain(), Name: m.Name}
}

// InventoryGroupModelFromDomain creates a persistence model from a domain group
func InventoryGroupModelFromDomain(g *inventory.Group) *InventoryGroupModel {
	m := &InventoryGroupModel{Name: g.Name}
	m.FromDomainBaseEntity(g.BaseEntity)
	return m
}

// InventoryPeriodModel is the persistence model for counting periods
type InventoryPeriodModel struct {
	AggregateModel
	GroupID   uuid.UUID              `gorm:"type:varchar(36);not null;index"`
	StartDate time.Time              `gorm:"not null"`
	EndDate   time.Time              `gorm:"not null"`
	Status    inventory.PeriodStatus `gorm:"type:varchar(10);not null"`
	Notes     string                 `gorm:"type:text"`

	Items []InventoryItemModel `gorm:"foreignKey:PeriodID"`
	Sales []PeriodSalesModel   `gorm:"foreignKey:PeriodID"`
}

// TableName returns the table name for GORM
func (InventoryPeriodModel) TableName() string {
	return "inventory_periods"
}

// ToDomain converts the persistence model to a domain period
func (m *InventoryPeriodModel) ToDomain() *inventory.Period {
	p := &inventory.Period{
		BaseAggregateRoot: m.ToAggregateRoot(),
		GroupID:           m.GroupID,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		Status:            m.Status,
		Notes:             m.Notes,
		Items:             make([]*inventory.Item, 0, len(m.Items)),
		Sales:             make([]*inventory.PeriodSales, 0, len(m.Sales)),
	}
	for i := range m.Items {
		p.Items = append(p.Items, m.Items[i].ToDomain())
	}
	for i := range m.Sales {
		p.Sales = append(p.Sales, m.Sales[i].ToDomain())
	}
	return p
}

// InventoryPeriodModelFromDomain creates a persistence model without items or sales
func InventoryPeriodModelFromDomain(p *inventory.Period) *InventoryPeriodModel {
	m := &InventoryPeriodModel{
		GroupID:   p.GroupID,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Status:    p.Status,
		Notes:     p.Notes,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}

// InventoryItemModel is the persistence model for ingredient counts
type InventoryItemModel struct {
	ID                 uuid.UUID        `gorm:"type:varchar(36);primaryKey"`
	PeriodID           uuid.UUID        `gorm:"type:varchar(36);not null;uniqueIndex:idx_period_ingredient"`
	IngredientID       uuid.UUID        `gorm:"type:varchar(36);not null;uniqueIndex:idx_period_ingredient"`
	OpeningStock       decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	StockIn            decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Wastage            decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	ActualClosingStock decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	TotalUsage         *decimal.Decimal `gorm:"type:decimal(18,4)"`
	TheoreticalUsage   *decimal.Decimal `gorm:"type:decimal(18,4)"`
	Variance           *decimal.Decimal `gorm:"type:decimal(18,4)"`
	UpdatedAt          time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// ToDomain converts the persistence model to a domain item
func (m *InventoryItemModel) ToDomain() *inventory.Item {
	return &inventory.Item{
		ID:                 m.ID,
		PeriodID:           m.PeriodID,
		IngredientID:       m.IngredientID,
		OpeningStock:       m.OpeningStock,
		StockIn:            m.StockIn,
		Wastage:            m.Wastage,
		ActualClosingStock: m.ActualClosingStock,
		TotalUsage:         m.TotalUsage,
		TheoreticalUsage:   m.TheoreticalUsage,
		Variance:           m.Variance,
		UpdatedAt:          m.UpdatedAt,
	}
}

// InventoryItemModelFromDomain creates a persistence model from a domain item
func InventoryItemModelFromDomain(it *inventory.Item) *InventoryItemModel {
	return &InventoryItemModel{
		ID:                 it.ID,
		PeriodID:           it.PeriodID,
		IngredientID:       it.IngredientID,
		OpeningStock:       it.OpeningStock,
		StockIn:            it.StockIn,
		Wastage:            it.Wastage,
		ActualClosingStock: it.ActualClosingStock,
		TotalUsage:         it.TotalUsage,
		TheoreticalUsage:   it.TheoreticalUsage,
		Variance:           it.Variance,
		UpdatedAt:          it.UpdatedAt,
	}
}

// PosMenuLinkModel is the persistence model for POS menu links
type PosMenuLinkModel struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	GroupID      uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_group_pos_menu"`
	PosMenuName  string    `gorm:"type:varchar(200);not null;uniqueIndex:idx_group_pos_menu"`
	MenuManualID uuid.UUID `gorm:"type:varchar(36);not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PosMenuLinkModel) TableName() string {
	return "pos_menu_links"
}

// ToDomain converts the persistence model to a domain link
func (m *PosMenuLinkModel) ToDomain() *inventory.PosMenuLink {
	return &inventory.PosMenuLink{
		ID:           m.ID,
		GroupID:      m.GroupID,
		PosMenuName:  m.PosMenuName,
		MenuManualID: m.MenuManualID,
		CreatedAt:    m.CreatedAt,
	}
}

// PosMenuLinkModelFromDomain creates a persistence model from a domain link
func PosMenuLinkModelFromDomain(l *inventory.PosMenuLink) *PosMenuLinkModel {
	return &PosMenuLinkModel{
		ID:           l.ID,
		GroupID:      l.GroupID,
		PosMenuName:  l.PosMenuName,
		MenuManualID: l.MenuManualID,
		CreatedAt:    l.CreatedAt,
	}
}

// PeriodSalesModel is the persistence model for period sales
type PeriodSalesModel struct {
	ID            uuid.UUID       `gorm:"type:varchar(36);primaryKey"`
	PeriodID      uuid.UUID       `gorm:"type:varchar(36);not null;uniqueIndex:idx_period_link"`
	PosMenuLinkID uuid.UUID       `gorm:"type:varchar(36);not null;uniqueIndex:idx_period_link"`
	QuantitySold  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (PeriodSalesModel) TableName() string {
	return "period_sales"
}

// ToDomain converts the persistence model to a domain sales entry
func (m *PeriodSalesModel) ToDomain() *inventory.PeriodSales {
	return &inventory.PeriodSales{
		ID:            m.ID,
		PeriodID:      m.PeriodID,
		PosMenuLinkID: m.PosMenuLinkID,
		QuantitySold:  m.QuantitySold,
	}
}

// PeriodSalesModelFromDomain creates a persistence model from a domain sales entry
func PeriodSalesModelFromDomain(s *inventory.PeriodSales) *PeriodSalesModel {
	return &PeriodSalesModel{
		ID:            s.ID,
		PeriodID:      s.PeriodID,
		PosMenuLinkID: s.PosMenuLinkID,
		QuantitySold:  s.QuantitySold,
	}
}
