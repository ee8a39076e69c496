package inventory

import (
	"context"

	"github.com/google/uuid"
)

// GroupRepository persists inventory groups and their POS links
type GroupRepository interface {
	Create(ctx context.Context, g *Group) error
	FindByID(ctx context.Context, id uuid.UUID) (*Group, error)
	FindAll(ctx context.Context) ([]*Group, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	// UpsertLink creates or repoints the link with the same POS menu name
	UpsertLink(ctx context.Context, link *PosMenuLink) error
	FindLinks(ctx context.Context, groupID uuid.UUID) ([]*PosMenuLink, error)
}

// PeriodRepository persists periods with their items and sales
type PeriodRepository interface {
	Create(ctx context.Context, p *Period) error
	// FindByID loads the period with items and sales
	FindByID(ctx context.Context, id uuid.UUID) (*Period, error)
	// FindByGroup is ordered by start date, newest first
	FindByGroup(ctx context.Context, groupID uuid.UUID) ([]*Period, error)
	UpdateStatus(ctx context.Context, p *Period) error
	SaveItems(ctx context.Context, items []*Item) error
	SaveSales(ctx context.Context, sales []*PeriodSales) error
}
