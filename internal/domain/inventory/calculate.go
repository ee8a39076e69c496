package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecipeUsage is the amount of one master ingredient used per unit sold
type RecipeUsage struct {
	IngredientID uuid.UUID
	Quantity     decimal.Decimal
}

// Recipes maps a POS link to the ingredient usage of its manual
type Recipes map[uuid.UUID][]RecipeUsage

// Calculate fills the usage figures of every item:
//
//	totalUsage       = opening + stockIn - actualClosing
//	theoreticalUsage = Σ quantitySold × recipe quantity of the ingredient
//	variance         = totalUsage - wastage - theoreticalUsage
func (p *Period) Calculate(recipes Recipes) error {
	if err := p.EnsureOpen(); err != nil {
		return err
	}

	theoretical := make(map[uuid.UUID]decimal.Decimal)
	for _, s := range p.Sales {
		for _, r := range recipes[s.PosMenuLinkID] {
			theoretical[r.IngredientID] = theoretical[r.IngredientID].Add(s.QuantitySold.Mul(r.Quantity))
		}
	}

	for _, it := range p.Items {
		total := it.OpeningStock.Add(it.StockIn).Sub(it.ActualClosingStock)
		theo := theoretical[it.IngredientID]
		variance := total.Sub(it.Wastage).Sub(theo)
		it.TotalUsage = &total
		it.TheoreticalUsage = &theo
		it.Variance = &variance
	}
	p.Touch()
	return nil
}
