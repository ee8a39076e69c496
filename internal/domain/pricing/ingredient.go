package pricing

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storelaunch/backend/internal/domain/shared"
)

// FullYield is the yield rate of an ingredient with no trim loss
var FullYield = decimal.NewFromInt(100)

// IngredientMaster is the canonical ingredient catalogue entry
type IngredientMaster struct {
	shared.BaseEntity
	Category    string
	KoreanName  string
	EnglishName string
	Quantity    decimal.Decimal
	Unit        string
	YieldRate   decimal.Decimal
}

// IngredientInput carries the editable fields of an ingredient
type IngredientInput struct {
	Category    string
	KoreanName  string
	EnglishName string
	Quantity    decimal.Decimal
	Unit        string
	YieldRate   decimal.Decimal
}

// NewIngredientMaster validates and creates an ingredient
func NewIngredientMaster(in IngredientInput) (*IngredientMaster, error) {
	ing := &IngredientMaster{BaseEntity: shared.NewBaseEntity()}
	if err := ing.Apply(in); err != nil {
		return nil, err
	}
	return ing, nil
}

// Apply overwrites the editable fields
func (i *IngredientMaster) Apply(in IngredientInput) error {
	english := strings.TrimSpace(in.EnglishName)
	if english == "" {
		return shared.InvalidInput("English name is required")
	}
	if in.Quantity.IsNegative() {
		return shared.InvalidInput("Quantity cannot be negative")
	}
	if in.YieldRate.GreaterThan(FullYield) {
		return shared.InvalidInput("Yield rate cannot exceed 100")
	}
	i.Category = strings.TrimSpace(in.Category)
	i.KoreanName = strings.TrimSpace(in.KoreanName)
	i.EnglishName = english
	i.Quantity = in.Quantity
	i.Unit = strings.TrimSpace(in.Unit)
	i.YieldRate = NormalizeYield(in.YieldRate)
	i.Touch()
	return nil
}

// NormalizeYield maps a non-positive yield rate to 100
func NormalizeYield(rate decimal.Decimal) decimal.Decimal {
	if !rate.IsPositive() {
		return FullYield
	}
	return rate
}

// SearchResult is an ingredient match, optionally priced by a template
type SearchResult struct {
	ID          uuid.UUID        `json:"id"`
	Category    string           `json:"category"`
	KoreanName  string           `json:"koreanName"`
	EnglishName string           `json:"englishName"`
	Unit        string           `json:"unit"`
	YieldRate   decimal.Decimal  `json:"yieldRate"`
	Price       *decimal.Decimal `json:"price"`
	Currency    *string          `json:"currency"`
}
