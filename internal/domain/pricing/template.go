package pricing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storelaunch/backend/internal/domain/shared"
)

// DefaultCurrency is used when no currency is given
const DefaultCurrency = "CAD"

// IngredientTemplate is a named set of ingredient prices for one country
type IngredientTemplate struct {
	shared.BaseAggregateRoot
	Name        string
	CountryID   uuid.UUID
	Description string
	IsActive    bool
	Items       []*IngredientTemplateItem
}

// IngredientTemplateItem is the price of one ingredient within a template
type IngredientTemplateItem struct {
	ID           uuid.UUID
	TemplateID   uuid.UUID
	IngredientID uuid.UUID
	Price        decimal.Decimal
	Currency     string
	// YieldRate overrides the ingredient's yield when set
	YieldRate  *decimal.Decimal
	Ingredient *IngredientMaster
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PriceHistory records a change of a template item price
type PriceHistory struct {
	ID             uuid.UUID
	TemplateItemID uuid.UUID
	OldPrice       decimal.Decimal
	NewPrice       decimal.Decimal
	Currency       string
	ChangedBy      *uuid.UUID
	Reason         string
	CreatedAt      time.Time
}

// NewIngredientTemplate creates an active template. Every master ingredient
// receives a zero-priced item in the given currency.
func NewIngredientTemplate(name string, countryID uuid.UUID, description, currency string, masters []*IngredientMaster) (*IngredientTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.InvalidInput("Template name is required")
	}
	if countryID == uuid.Nil {
		return nil, shared.InvalidInput("Country ID is required")
	}
	if currency == "" {
		currency = DefaultCurrency
	}

	tpl := &IngredientTemplate{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		CountryID:         countryID,
		Description:       strings.TrimSpace(description),
		IsActive:          true,
		Items:             make([]*IngredientTemplateItem, 0, len(masters)),
	}
	for _, m := range masters {
		tpl.Items = append(tpl.Items, &IngredientTemplateItem{
			ID:           uuid.New(),
			TemplateID:   tpl.ID,
			IngredientID: m.ID,
			Price:        decimal.Zero,
			Currency:     currency,
			Ingredient:   m,
			CreatedAt:    tpl.CreatedAt,
			UpdatedAt:    tpl.CreatedAt,
		})
	}
	return tpl, nil
}

// FirstCurrency returns the currency of the first item, or "" if empty
func (t *IngredientTemplate) FirstCurrency() string {
	if len(t.Items) == 0 {
		return ""
	}
	return t.Items[0].Currency
}

// EffectiveYield returns the item override or the ingredient yield
func (i *IngredientTemplateItem) EffectiveYield() decimal.Decimal {
	if i.YieldRate != nil {
		return NormalizeYield(*i.YieldRate)
	}
	if i.Ingredient != nil {
		return NormalizeYield(i.Ingredient.YieldRate)
	}
	return FullYield
}

// PriceChange describes an update to a template item
type PriceChange struct {
	Price     *decimal.Decimal
	Currency  string
	YieldRate *decimal.Decimal
	ChangedBy uuid.UUID
	Reason    string
}

// ApplyChange updates the item and returns a history entry when the price
// actually changed, nil otherwise.
func (i *IngredientTemplateItem) ApplyChange(c PriceChange) (*PriceHistory, error) {
	if c.Price != nil && c.Price.IsNegative() {
		return nil, shared.InvalidInput("Price cannot be negative")
	}
	if c.YieldRate != nil && (c.YieldRate.GreaterThan(FullYield) || c.YieldRate.IsNegative()) {
		return nil, shared.InvalidInput("Yield rate must be between 0 and 100")
	}

	var history *PriceHistory
	if c.Currency != "" {
		i.Currency = strings.ToUpper(c.Currency)
	}
	if c.Price != nil && !c.Price.Equal(i.Price) {
		history = &PriceHistory{
			ID:             uuid.New(),
			TemplateItemID: i.ID,
			OldPrice:       i.Price,
			NewPrice:       *c.Price,
			Currency:       i.Currency,
			Reason:         strings.TrimSpace(c.Reason),
			CreatedAt:      time.Now(),
		}
		if c.ChangedBy != uuid.Nil {
			by := c.ChangedBy
			history.ChangedBy = &by
		}
		i.Price = *c.Price
	}
	if c.YieldRate != nil {
		y := *c.YieldRate
		i.YieldRate = &y
	}
	i.UpdatedAt = time.Now()
	return history, nil
}
