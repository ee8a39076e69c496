package pricing

import (
	"context"

	"github.com/google/uuid"
)

// CountryRepository persists countries
type CountryRepository interface {
	FindAll(ctx context.Context) ([]*Country, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Country, error)
	FindByCode(ctx context.Context, code string) (*Country, error)
	// Upsert inserts or updates a country keyed by its code
	Upsert(ctx context.Context, country *Country) error
}

// IngredientRepository persists ingredient masters
type IngredientRepository interface {
	Create(ctx context.Context, ing *IngredientMaster) error
	Update(ctx context.Context, ing *IngredientMaster) error
	FindByID(ctx context.Context, id uuid.UUID) (*IngredientMaster, error)
	FindByEnglishName(ctx context.Context, name string) (*IngredientMaster, error)
	// FindAll is ordered by category, then english name
	FindAll(ctx context.Context) ([]*IngredientMaster, error)
	// Search matches korean or english name containing q, ordered by english name
	Search(ctx context.Context, q string, limit int) ([]*IngredientMaster, error)
}

// TemplateRepository persists ingredient templates and their items
type TemplateRepository interface {
	// Create stores the template with all of its items
	Create(ctx context.Context, tpl *IngredientTemplate) error
	Update(ctx context.Context, tpl *IngredientTemplate) error
	// FindAll is ordered by creation time, newest first
	FindAll(ctx context.Context, includeItems bool) ([]*IngredientTemplate, error)
	// FindByID loads the template with items ordered by ingredient category and name
	FindByID(ctx context.Context, id uuid.UUID) (*IngredientTemplate, error)
	FindItem(ctx context.Context, templateID, itemID uuid.UUID) (*IngredientTemplateItem, error)
	// SaveItemChange persists the item and, when non-nil, its price history entry atomically
	SaveItemChange(ctx context.Context, item *IngredientTemplateItem, history *PriceHistory) error
	FindPriceHistory(ctx context.Context, itemID uuid.UUID) ([]*PriceHistory, error)
	// SearchItems matches items whose ingredient name contains q
	SearchItems(ctx context.Context, templateID uuid.UUID, q string, limit int) ([]*IngredientTemplateItem, error)
}

// VendorFilter narrows vendor listings
type VendorFilter struct {
	Country  string
	Category string
}

// VendorRepository persists vendors
type VendorRepository interface {
	Create(ctx context.Context, v *Vendor) error
	Update(ctx context.Context, v *Vendor) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Vendor, error)
	FindAll(ctx context.Context, filter VendorFilter) ([]*Vendor, error)
}
