package recipe

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storelaunch/backend/internal/domain/pricing"
)

// costScale is the number of decimal places kept on stored costs
const costScale = 4

var hundred = decimal.NewFromInt(100)

// ManualCostVersion is a snapshot of a manual's cost against one template
type ManualCostVersion struct {
	ID           uuid.UUID
	ManualID     uuid.UUID
	TemplateID   uuid.UUID
	Name         string
	Description  string
	TotalCost    decimal.Decimal
	Currency     string
	CostPerUnit  *decimal.Decimal
	IsActive     bool
	CalculatedAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Lines []*ManualCostLine
}

// ManualCostLine is the cost of one manual ingredient
type ManualCostLine struct {
	ID            uuid.UUID
	CostVersionID uuid.UUID
	// IngredientID references the manual ingredient, not the master
	IngredientID uuid.UUID
	UnitPrice    decimal.Decimal
	Quantity     decimal.Decimal
	Unit         string
	YieldRate    decimal.Decimal
	LineCost     decimal.Decimal
}

// PriceEntry is the effective price of one master ingredient
type PriceEntry struct {
	Price     decimal.Decimal
	Currency  string
	YieldRate decimal.Decimal
}

// PriceMap maps master ingredient ids to prices
type PriceMap map[uuid.UUID]PriceEntry

// NewPriceMap builds a price map from template items. An item yield
// overrides the ingredient yield.
func NewPriceMap(items []*pricing.IngredientTemplateItem) PriceMap {
	pm := make(PriceMap, len(items))
	for _, it := range items {
		pm[it.IngredientID] = PriceEntry{
			Price:     it.Price,
			Currency:  it.Currency,
			YieldRate: it.EffectiveYield(),
		}
	}
	return pm
}

// CostResult is the outcome of a cost rollup
type CostResult struct {
	Total       decimal.Decimal
	CostPerUnit *decimal.Decimal
	Lines       []*ManualCostLine
}

// CostCalculator rolls up manual ingredient costs against a price map
type CostCalculator struct{}

// Calculate computes lineCost = unitPrice × quantity × 100/yieldRate for
// every ingredient. Unpriced ingredients cost zero at full yield. Each line
// is rounded to costScale places and the total is the sum of those lines.
func (CostCalculator) Calculate(m *MenuManual, prices PriceMap) CostResult {
	res := CostResult{
		Total: decimal.Zero,
		Lines: make([]*ManualCostLine, 0, len(m.Ingredients)),
	}
	for _, ing := range m.Ingredients {
		unitPrice := decimal.Zero
		yieldRate := pricing.FullYield
		if ing.IngredientID != nil {
			if p, ok := prices[*ing.IngredientID]; ok {
				unitPrice = p.Price
				yieldRate = pricing.NormalizeYield(p.YieldRate)
			}
		}

		lineCost := unitPrice.Mul(ing.Quantity).Mul(hundred).Div(yieldRate).Round(costScale)
		res.Total = res.Total.Add(lineCost)
		res.Lines = append(res.Lines, &ManualCostLine{
			ID:           uuid.New(),
			IngredientID: ing.ID,
			UnitPrice:    unitPrice,
			Quantity:     ing.Quantity,
			Unit:         ing.Unit,
			YieldRate:    yieldRate,
			LineCost:     lineCost,
		})
	}

	if m.Yield.IsPositive() {
		perUnit := res.Total.Div(m.Yield).Round(costScale)
		res.CostPerUnit = &perUnit
	}
	return res
}

// NewCostVersion wraps a cost result into an active cost version
func NewCostVersion(manualID, templateID uuid.UUID, name, currency string, res CostResult) *ManualCostVersion {
	now := time.Now()
	v := &ManualCostVersion{
		ID:           uuid.New(),
		ManualID:     manualID,
		TemplateID:   templateID,
		Name:         name,
		TotalCost:    res.Total,
		Currency:     currency,
		CostPerUnit:  res.CostPerUnit,
		IsActive:     true,
		CalculatedAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
		Lines:        res.Lines,
	}
	for _, l := range v.Lines {
		l.CostVersionID = v.ID
	}
	return v
}

// CostVersionName is the default name of a version for a template
func CostVersionName(templateName string) string {
	return templateName + " Cost"
}
