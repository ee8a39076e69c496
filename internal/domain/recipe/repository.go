package recipe

import (
	"context"

	"github.com/google/uuid"
)

// ManualQuery selects and shapes manual listings
type ManualQuery struct {
	GroupID             *uuid.UUID
	IncludeIngredients  bool
	IncludeCostVersions bool
}

// ManualRepository persists manuals with their ingredients
type ManualRepository interface {
	// Create stores the manual with its ingredients
	Create(ctx context.Context, m *MenuManual) error
	// Update stores scalar fields and replaces the ingredient list
	Update(ctx context.Context, m *MenuManual) error
	Delete(ctx context.Context, id uuid.UUID) error
	// FindByID loads the manual with its group and ordered ingredients
	FindByID(ctx context.Context, id uuid.UUID) (*MenuManual, error)
	// FindAll is ordered by name
	FindAll(ctx context.Context, q ManualQuery) ([]*MenuManual, error)
	// FindByGroup loads member manuals with ingredients and cost versions with lines
	FindByGroup(ctx context.Context, groupID uuid.UUID) ([]*MenuManual, error)
	DetachGroup(ctx context.Context, groupID uuid.UUID) error
}

// GroupRepository persists manual groups
type GroupRepository interface {
	Create(ctx context.Context, g *ManualGroup) error
	Update(ctx context.Context, g *ManualGroup) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*ManualGroup, error)
	FindAll(ctx context.Context) ([]*ManualGroup, error)
	FindActive(ctx context.Context) ([]*ManualGroup, error)
	// FindFirstByTemplate returns the oldest group using the template
	FindFirstByTemplate(ctx context.Context, templateID uuid.UUID) (*ManualGroup, error)
}

// CostVersionRepository persists cost versions and their lines
type CostVersionRepository interface {
	// Replace deletes any version for (manual, template) and stores v
	Replace(ctx context.Context, v *ManualCostVersion) error
	FindByManual(ctx context.Context, manualID uuid.UUID) ([]*ManualCostVersion, error)
	DeleteByManualAndTemplate(ctx context.Context, manualID, templateID uuid.UUID) error
}
