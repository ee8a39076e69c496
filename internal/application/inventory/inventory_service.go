package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/inventory"
	"github.com/storelaunch/backend/internal/domain/recipe"
	"github.com/storelaunch/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CreatePeriodInput opens a counting period
type CreatePeriodInput struct {
	GroupID   uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	Notes     string
}

// InventoryService manages groups, POS links and counting periods
type InventoryService struct {
	groups  inventory.GroupRepository
	periods inventory.PeriodRepository
	manuals recipe.ManualRepository
	logger  *zap.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	groups inventory.GroupRepository,
	periods inventory.PeriodRepository,
	manuals recipe.ManualRepository,
	logger *zap.Logger,
) *InventoryService {
	return &InventoryService{groups: groups, periods: periods, manuals: manuals, logger: logger}
}

// ListGroups returns every inventory group
func (s *InventoryService) ListGroups(ctx context.Context) ([]*inventory.Group, error) {
	return s.groups.FindAll(ctx)
}

// CreateGroup adds a group. Names are unique.
func (s *InventoryService) CreateGroup(ctx context.Context, name string) (*inventory.Group, error) {
	g, err := inventory.NewGroup(name)
	if err != nil {
		return nil, err
	}
	exists, err := s.groups.ExistsByName(ctx, g.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.ErrAlreadyExists.Code, "Inventory group already exists")
	}
	if err := s.groups.Create(ctx, g); err != nil {
		return nil, err
	}
	s.logger.Info("Inventory group created", zap.String("group_id", g.ID.String()), zap.String("name", g.Name))
	return g, nil
}

// LinkPosMenu maps a POS menu name of the group to a manual
func (s *InventoryService) LinkPosMenu(ctx context.Context, groupID uuid.UUID, posMenuName string, manualID uuid.UUID) (*inventory.PosMenuLink, error) {
	if _, err := s.findGroup(ctx, groupID); err != nil {
		return nil, err
	}
	link, err := inventory.NewPosMenuLink(groupID, posMenuName, manualID)
	if err != nil {
		return nil, err
	}
	if _, err := s.manuals.FindByID(ctx, manualID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.InvalidInput("Manual not found")
		}
		return nil, err
	}
	if err := s.groups.UpsertLink(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// Links lists a group's POS links
func (s *InventoryService) Links(ctx context.Context, groupID uuid.UUID) ([]*inventory.PosMenuLink, error) {
	if _, err := s.findGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.groups.FindLinks(ctx, groupID)
}

// ListPeriods returns a group's periods, newest first
func (s *InventoryService) ListPeriods(ctx context.Context, groupID uuid.UUID) ([]*inventory.Period, error) {
	if _, err := s.findGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.periods.FindByGroup(ctx, groupID)
}

// CreatePeriod opens a new period in a group
func (s *InventoryService) CreatePeriod(ctx context.Context, in CreatePeriodInput) (*inventory.Period, error) {
	if _, err := s.findGroup(ctx, in.GroupID); err != nil {
		return nil, err
	}
	p, err := inventory.NewPeriod(in.GroupID, in.StartDate, in.EndDate, in.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.periods.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("Inventory period opened", zap.String("period_id", p.ID.String()), zap.String("group_id", in.GroupID.String()))
	return p, nil
}

// GetPeriod returns a period with its items and sales
func (s *InventoryService) GetPeriod(ctx context.Context, id uuid.UUID) (*inventory.Period, error) {
	return s.findPeriod(ctx, id)
}

// UpsertCounts records stock counts keyed by ingredient
func (s *InventoryService) UpsertCounts(ctx context.Context, periodID uuid.UUID, counts []inventory.CountInput) (*inventory.Period, error) {
	p, err := s.findPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	changed, err := p.UpsertCounts(counts)
	if err != nil {
		s.logger.Warn("Stock counts rejected", zap.String("period_id", periodID.String()), zap.Error(err))
		return nil, err
	}
	if err := s.periods.SaveItems(ctx, changed); err != nil {
		return nil, err
	}
	return p, nil
}

// UpsertSales records POS sales keyed by menu name
func (s *InventoryService) UpsertSales(ctx context.Context, periodID uuid.UUID, sales []inventory.SalesInput) (*inventory.Period, error) {
	p, err := s.findPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	links, err := s.groups.FindLinks(ctx, p.GroupID)
	if err != nil {
		return nil, err
	}
	changed, err := p.UpsertSales(sales, links)
	if err != nil {
		s.logger.Warn("Sales rejected", zap.String("period_id", periodID.String()), zap.Error(err))
		return nil, err
	}
	if err := s.periods.SaveSales(ctx, changed); err != nil {
		return nil, err
	}
	return p, nil
}

// Calculate computes usage and variance for every item of an open period
func (s *InventoryService) Calculate(ctx context.Context, periodID uuid.UUID) (*inventory.Period, error) {
	p, err := s.findPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if err := p.EnsureOpen(); err != nil {
		return nil, err
	}
	recipes, err := s.recipes(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := p.Calculate(recipes); err != nil {
		return nil, err
	}
	if err := s.periods.SaveItems(ctx, p.Items); err != nil {
		return nil, err
	}
	s.logger.Info("Inventory variance calculated",
		zap.String("period_id", periodID.String()),
		zap.Int("items", len(p.Items)),
	)
	return p, nil
}

// recipes resolves the manual ingredients behind every sold POS link
func (s *InventoryService) recipes(ctx context.Context, p *inventory.Period) (inventory.Recipes, error) {
	links, err := s.groups.FindLinks(ctx, p.GroupID)
	if err != nil {
		return nil, err
	}
	manualOf := make(map[uuid.UUID]uuid.UUID, len(links))
	for _, l := range links {
		manualOf[l.ID] = l.MenuManualID
	}

	usage := make(map[uuid.UUID][]inventory.RecipeUsage)
	recipes := make(inventory.Recipes, len(p.Sales))
	for _, sale := range p.Sales {
		manualID, ok := manualOf[sale.PosMenuLinkID]
		if !ok {
			continue
		}
		if _, seen := usage[manualID]; !seen {
			m, err := s.manuals.FindByID(ctx, manualID)
			switch {
			case errors.Is(err, shared.ErrNotFound):
				s.logger.Warn("Linked manual missing", zap.String("manual_id", manualID.String()))
				usage[manualID] = nil
				continue
			case err != nil:
				return nil, err
			}
			usage[manualID] = recipeUsage(m)
		}
		recipes[sale.PosMenuLinkID] = usage[manualID]
	}
	return recipes, nil
}

func recipeUsage(m *recipe.MenuManual) []inventory.RecipeUsage {
	out := make([]inventory.RecipeUsage, 0, len(m.Ingredients))
	for _, ing := range m.Ingredients {
		if ing.IngredientID == nil {
			continue
		}
		out = append(out, inventory.RecipeUsage{IngredientID: *ing.IngredientID, Quantity: ing.Quantity})
	}
	return out
}

// Close freezes a period
func (s *InventoryService) Close(ctx context.Context, periodID uuid.UUID) (*inventory.Period, error) {
	p, err := s.findPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if err := p.Close(); err != nil {
		return nil, err
	}
	if err := s.periods.UpdateStatus(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("Inventory period closed", zap.String("period_id", periodID.String()))
	return p, nil
}

func (s *InventoryService) findGroup(ctx context.Context, id uuid.UUID) (*inventory.Group, error) {
	g, err := s.groups.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Group not found")
		}
		return nil, err
	}
	return g, nil
}

func (s *InventoryService) findPeriod(ctx context.Context, id uuid.UUID) (*inventory.Period, error) {
	p, err := s.periods.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Period not found")
		}
		return nil, err
	}
	return p, nil
}
