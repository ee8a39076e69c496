package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storelaunch/backend/internal/domain/shared"
)

// PeriodStatus is the state of a counting period
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// ErrPeriodClosed is returned when a closed period is modified
var ErrPeriodClosed = shared.NewDomainError("PERIOD_CLOSED", "Period is closed")

// Group is a set of stores or kitchens counted together
type Group struct {
	shared.BaseEntity
	Name string
}

// NewGroup creates a group
func NewGroup(name string) (*Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.InvalidInput("Group name is required")
	}
	return &Group{BaseEntity: shared.NewBaseEntity(), Name: name}, nil
}

// Period is one stock-count window of a group
type Period struct {
	shared.BaseAggregateRoot
	GroupID   uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	Status    PeriodStatus
	Notes     string

	Items []*Item
	Sales []*PeriodSales
}

// NewPeriod creates an open period
func NewPeriod(groupID uuid.UUID, start, end time.Time, notes string) (*Period, error) {
	if start.IsZero() || end.IsZero() {
		return nil, shared.InvalidInput("Start date and end date are required")
	}
	if end.Before(start) {
		return nil, shared.InvalidInput("End date must be on or after start date")
	}
	return &Period{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		GroupID:           groupID,
		StartDate:         start,
		EndDate:           end,
		Status:            PeriodOpen,
		Notes:             notes,
	}, nil
}

// EnsureOpen fails when the period no longer accepts changes
func (p *Period) EnsureOpen() error {
	if p.Status == PeriodClosed {
		return ErrPeriodClosed
	}
	return nil
}

// Close freezes the period
func (p *Period) Close() error {
	if err := p.EnsureOpen(); err != nil {
		return err
	}
	p.Status = PeriodClosed
	p.Touch()
	p.IncrementVersion()
	return nil
}

// Item is the stock count of one ingredient in a period
type Item struct {
	ID                 uuid.UUID
	PeriodID           uuid.UUID
	IngredientID       uuid.UUID
	OpeningStock       decimal.Decimal
	StockIn            decimal.Decimal
	Wastage            decimal.Decimal
	ActualClosingStock decimal.Decimal
	TotalUsage         *decimal.Decimal
	TheoreticalUsage   *decimal.Decimal
	Variance           *decimal.Decimal
	UpdatedAt          time.Time
}

// CountInput is an upsert of one ingredient count
type CountInput struct {
	IngredientID       uuid.UUID
	OpeningStock       decimal.Decimal
	StockIn            decimal.Decimal
	Wastage            decimal.Decimal
	ActualClosingStock decimal.Decimal
}

// UpsertCounts merges counts into the period keyed by ingredient. Computed
// usage figures are cleared on every changed item.
func (p *Period) UpsertCounts(counts []CountInput) ([]*Item, error) {
	if err := p.EnsureOpen(); err != nil {
		return nil, err
	}
	byIngredient := make(map[uuid.UUID]*Item, len(p.Items))
	for _, it := range p.Items {
		byIngredient[it.IngredientID] = it
	}

	changed := make([]*Item, 0, len(counts))
	now := time.Now()
	for _, c := range counts {
		if c.IngredientID == uuid.Nil {
			return nil, shared.InvalidInput("Ingredient ID is required")
		}
		if c.OpeningStock.IsNegative() || c.StockIn.IsNegative() || c.Wastage.IsNegative() || c.ActualClosingStock.IsNegative() {
			return nil, shared.InvalidInput("Stock figures cannot be negative")
		}
		it, ok := byIngredient[c.IngredientID]
		if !ok {
			it = &Item{ID: uuid.New(), PeriodID: p.ID, IngredientID: c.IngredientID}
			byIngredient[c.IngredientID] = it
			p.Items = append(p.Items, it)
		}
		it.OpeningStock = c.OpeningStock
		it.StockIn = c.StockIn
		it.Wastage = c.Wastage
		it.ActualClosingStock = c.ActualClosingStock
		it.TotalUsage, it.TheoreticalUsage, it.Variance = nil, nil, nil
		it.UpdatedAt = now
		changed = append(changed, it)
	}
	p.Touch()
	return changed, nil
}

// PosMenuLink maps a POS menu name to a manual
type PosMenuLink struct {
	ID           uuid.UUID
	GroupID      uuid.UUID
	PosMenuName  string
	MenuManualID uuid.UUID
	CreatedAt    time.Time
}

// NewPosMenuLink creates a link
func NewPosMenuLink(groupID uuid.UUID, posMenuName string, manualID uuid.UUID) (*PosMenuLink, error) {
	posMenuName = strings.TrimSpace(posMenuName)
	if posMenuName == "" {
		return nil, shared.InvalidInput("POS menu name is required")
	}
	if manualID == uuid.Nil {
		return nil, shared.InvalidInput("Menu manual ID is required")
	}
	return &PosMenuLink{ID: uuid.New(), GroupID: groupID, PosMenuName: posMenuName, MenuManualID: manualID, CreatedAt: time.Now()}, nil
}

// PeriodSales is the number of POS sales of a linked menu in a period
type PeriodSales struct {
	ID            uuid.UUID
	PeriodID      uuid.UUID
	PosMenuLinkID uuid.UUID
	QuantitySold  decimal.Decimal
}

// SalesInput is an upsert of sales by POS menu name
type SalesInput struct {
	PosMenuName  string
	QuantitySold decimal.Decimal
}

// UpsertSales merges sales keyed by link. Every name must resolve to one
// of the group's links.
func (p *Period) UpsertSales(inputs []SalesInput, links []*PosMenuLink) ([]*PeriodSales, error) {
	if err := p.EnsureOpen(); err != nil {
		return nil, err
	}
	byName := make(map[string]*PosMenuLink, len(links))
	for _, l := range links {
		byName[l.PosMenuName] = l
	}
	byLink := make(map[uuid.UUID]*PeriodSales, len(p.Sales))
	for _, s := range p.Sales {
		byLink[s.PosMenuLinkID] = s
	}

	changed := make([]*PeriodSales, 0, len(inputs))
	for _, in := range inputs {
		link, ok := byName[strings.TrimSpace(in.PosMenuName)]
		if !ok {
			return nil, shared.InvalidInput("Unknown POS menu: " + in.PosMenuName)
		}
		if in.QuantitySold.IsNegative() {
			return nil, shared.InvalidInput("Quantity sold cannot be negative")
		}
		s, ok := byLink[link.ID]
		if !ok {
			s = &PeriodSales{ID: uuid.New(), PeriodID: p.ID, PosMenuLinkID: link.ID}
			byLink[link.ID] = s
			p.Sales = append(p.Sales, s)
		}
		s.QuantitySold = in.QuantitySold
		changed = append(changed, s)
	}
	p.Touch()
	return changed, nil
}
