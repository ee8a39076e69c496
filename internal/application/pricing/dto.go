package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultSearchLimit applies when the caller does not pass a limit
const DefaultSearchLimit = 10

// MaxSearchLimit caps ingredient search results
const MaxSearchLimit = 100

// SearchInput selects ingredient search results
type SearchInput struct {
	Query      string
	Limit      int
	TemplateID *uuid.UUID
}

// CreateTemplateInput holds the fields of a new ingredient template
type CreateTemplateInput struct {
	Name        string
	CountryID   *uuid.UUID
	Description string
	Currency    string
}

// UpdateItemInput changes one template item
type UpdateItemInput struct {
	TemplateID uuid.UUID
	ItemID     uuid.UUID
	Price      *decimal.Decimal
	Currency   string
	YieldRate  *decimal.Decimal
	Reason     string
	ChangedBy  uuid.UUID
}
