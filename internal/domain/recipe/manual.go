package recipe

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storelaunch/backend/internal/domain/shared"
)

// Defaults applied to new manuals and groups
const (
	SectionMain             = "MAIN"
	DefaultUnit             = "g"
	DefaultGroupName        = "Default"
	DefaultGroupDescription = "Default manual group"
)

// MenuManual is a stored menu recipe
type MenuManual struct {
	shared.BaseAggregateRoot
	Name          string
	KoreanName    string
	ImageURL      string
	ShelfLife     string
	Yield         decimal.Decimal
	YieldUnit     string
	SellingPrice  *decimal.Decimal
	Notes         string
	CookingMethod string
	IsActive      bool
	IsArchived    bool
	GroupID       *uuid.UUID

	Group        *ManualGroup
	Ingredients  []*ManualIngredient
	CostVersions []*ManualCostVersion
}

// ManualIngredient is one line of a manual's ingredient list
type ManualIngredient struct {
	ID           uuid.UUID
	ManualID     uuid.UUID
	IngredientID *uuid.UUID
	Name         string
	KoreanName   string
	Quantity     decimal.Decimal
	Unit         string
	Section      string
	SortOrder    int
	Notes        string
}

// ManualInput carries the editable manual fields
type ManualInput struct {
	Name          string
	KoreanName    string
	ImageURL      string
	ShelfLife     string
	Yield         decimal.Decimal
	YieldUnit     string
	SellingPrice  *decimal.Decimal
	Notes         string
	CookingMethod string
	IsActive      *bool
}

// IngredientInput describes a manual ingredient before it is stored
type IngredientInput struct {
	IngredientID *uuid.UUID
	Name         string
	KoreanName   string
	Quantity     decimal.Decimal
	Unit         string
	Section      string
	Notes        string
}

// NewMenuManual creates an active manual, optionally within a group
func NewMenuManual(in ManualInput, groupID *uuid.UUID, ingredients []IngredientInput) (*MenuManual, error) {
	m := &MenuManual{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		IsActive:          true,
		GroupID:           groupID,
	}
	if err := m.Apply(in); err != nil {
		return nil, err
	}
	m.ReplaceIngredients(ingredients)
	return m, nil
}

// Apply overwrites scalar fields. IsActive is only changed when set.
func (m *MenuManual) Apply(in ManualInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return shared.InvalidInput("Manual name is required")
	}
	if in.Yield.IsNegative() {
		return shared.InvalidInput("Yield cannot be negative")
	}
	m.Name = name
	m.KoreanName = strings.TrimSpace(in.KoreanName)
	m.ImageURL = strings.TrimSpace(in.ImageURL)
	m.ShelfLife = in.ShelfLife
	m.Yield = in.Yield
	m.YieldUnit = in.YieldUnit
	m.SellingPrice = in.SellingPrice
	m.Notes = in.Notes
	m.CookingMethod = in.CookingMethod
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
	m.Touch()
	m.IncrementVersion()
	return nil
}

// ReplaceIngredients swaps the whole ingredient list. Missing units
// default to grams, sections to MAIN, and sort order follows input order.
func (m *MenuManual) ReplaceIngredients(list []IngredientInput) {
	m.Ingredients = make([]*ManualIngredient, 0, len(list))
	for i, in := range list {
		unit := strings.TrimSpace(in.Unit)
		if unit == "" {
			unit = DefaultUnit
		}
		section := strings.TrimSpace(in.Section)
		if section == "" {
			section = SectionMain
		}
		m.Ingredients = append(m.Ingredients, &ManualIngredient{
			ID:           uuid.New(),
			ManualID:     m.ID,
			IngredientID: in.IngredientID,
			Name:         in.Name,
			KoreanName:   in.KoreanName,
			Quantity:     in.Quantity,
			Unit:         unit,
			Section:      section,
			SortOrder:    i,
			Notes:        in.Notes,
		})
	}
	m.Touch()
}

// MoveToGroup assigns the manual to a group, or detaches it when nil
func (m *MenuManual) MoveToGroup(groupID *uuid.UUID) {
	m.GroupID = groupID
	m.Touch()
}

// ManualGroup collects manuals priced against a common template
type ManualGroup struct {
	shared.BaseEntity
	Name        string
	Description string
	TemplateID  *uuid.UUID
	Currency    string
	IsActive    bool

	Manuals []*MenuManual
}

// NewManualGroup creates an active group
func NewManualGroup(name, description string, templateID *uuid.UUID, currency string) (*ManualGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.InvalidInput("Group name is required")
	}
	return &ManualGroup{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: strings.TrimSpace(description),
		TemplateID:  templateID,
		Currency:    strings.ToUpper(strings.TrimSpace(currency)),
		IsActive:    true,
	}, nil
}

// NewDefaultGroup is the group created when manuals are added to all
// groups and none exists yet
func NewDefaultGroup() *ManualGroup {
	g, _ := NewManualGroup(DefaultGroupName, DefaultGroupDescription, nil, "")
	return g
}

// GroupUpdate carries optional group changes
type GroupUpdate struct {
	Name        *string
	Description *string
	TemplateID  *uuid.UUID
	Currency    *string
	IsActive    *bool
}

// Apply updates the group fields that are set
func (g *ManualGroup) Apply(u GroupUpdate) error {
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return shared.InvalidInput("Group name is required")
		}
		g.Name = name
	}
	if u.Description != nil {
		g.Description = strings.TrimSpace(*u.Description)
	}
	if u.TemplateID != nil {
		id := *u.TemplateID
		g.TemplateID = &id
	}
	if u.Currency != nil {
		g.Currency = strings.ToUpper(strings.TrimSpace(*u.Currency))
	}
	if u.IsActive != nil {
		g.IsActive = *u.IsActive
	}
	g.UpdatedAt = time.Now()
	return nil
}

// CurrencyOr returns the group currency or the fallback when empty
func (g *ManualGroup) CurrencyOr(fallback string) string {
	if g == nil || g.Currency == "" {
		return fallback
	}
	return g.Currency
}
