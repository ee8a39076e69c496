package recipe

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storelaunch/backend/internal/domain/pricing"
	"github.com/storelaunch/backend/internal/domain/recipe"
	"github.com/storelaunch/backend/internal/domain/shared"
	"github.com/storelaunch/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Currency fallbacks used when a group is created for a template
const (
	canadaCode      = "CA"
	canadaCurrency  = "CAD"
	defaultCurrency = "USD"
)

var (
	errManualNotFound   = shared.NotFound("Manual not found")
	errGroupNotFound    = shared.NotFound("Group not found")
	errTemplateNotFound = shared.NotFound("Template not found")
)

// CreateManualInput holds a new manual and where to place it
type CreateManualInput struct {
	Manual      recipe.ManualInput
	Ingredients []recipe.IngredientInput
	// AddToAllGroups creates one copy per active group
	AddToAllGroups bool
}

// UpdateManualInput changes a manual. Nil fields keep their current value.
type UpdateManualInput struct {
	Name          *string
	KoreanName    *string
	ImageURL      *string
	ShelfLife     *string
	Yield         *decimal.Decimal
	YieldUnit     *string
	SellingPrice  *decimal.Decimal
	Notes         *string
	CookingMethod *string
	IsActive      *bool
	Ingredients   *[]recipe.IngredientInput
	TemplateID    *uuid.UUID
}

// merge overlays the set fields on the manual's current values
func (in UpdateManualInput) merge(m *recipe.MenuManual) recipe.ManualInput {
	out := recipe.ManualInput{
		Name:          m.Name,
		KoreanName:    m.KoreanName,
		ImageURL:      m.ImageURL,
		ShelfLife:     m.ShelfLife,
		Yield:         m.Yield,
		YieldUnit:     m.YieldUnit,
		SellingPrice:  m.SellingPrice,
		Notes:         m.Notes,
		CookingMethod: m.CookingMethod,
		IsActive:      in.IsActive,
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&out.Name, in.Name)
	set(&out.KoreanName, in.KoreanName)
	set(&out.ImageURL, in.ImageURL)
	set(&out.ShelfLife, in.ShelfLife)
	set(&out.YieldUnit, in.YieldUnit)
	set(&out.Notes, in.Notes)
	set(&out.CookingMethod, in.CookingMethod)
	if in.Yield != nil {
		out.Yield = *in.Yield
	}
	if in.SellingPrice != nil {
		price := *in.SellingPrice
		out.SellingPrice = &price
	}
	return out
}

// costing recomputes cost versions. It is shared by manuals and groups.
type costing struct {
	costs     recipe.CostVersionRepository
	templates pricing.TemplateRepository
	calc      recipe.CostCalculator
	metrics   *telemetry.LaunchMetrics
	logger    *zap.Logger
}

func (c *costing) loadTemplate(ctx context.Context, id uuid.UUID) (*pricing.IngredientTemplate, error) {
	tpl, err := c.templates.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errTemplateNotFound
		}
		return nil, err
	}
	return tpl, nil
}

// replace stores a fresh version of the manual's cost against tpl
func (c *costing) replace(ctx context.Context, m *recipe.MenuManual, tpl *pricing.IngredientTemplate, currency string) (*recipe.ManualCostVersion, error) {
	res := c.calc.Calculate(m, recipe.NewPriceMap(tpl.Items))
	v := recipe.NewCostVersion(m.ID, tpl.ID, recipe.CostVersionName(tpl.Name), currency, res)
	if err := c.costs.Replace(ctx, v); err != nil {
		return nil, err
	}
	c.metrics.CostVersionCalculated(ctx)
	c.logger.Info("Cost version calculated",
		zap.String("manual_id", m.ID.String()),
		zap.String("template_id", tpl.ID.String()),
		zap.String("total_cost", v.TotalCost.String()),
	)
	return v, nil
}

// ManualService manages menu manuals and their cost versions
type ManualService struct {
	manuals   recipe.ManualRepository
	groups    recipe.GroupRepository
	countries pricing.CountryRepository
	costing   *costing
	logger    *zap.Logger
}

// NewManualService creates a new ManualService
func NewManualService(
	manuals recipe.ManualRepository,
	groups recipe.GroupRepository,
	costs recipe.CostVersionRepository,
	templates pricing.TemplateRepository,
	countries pricing.CountryRepository,
	logger *zap.Logger,
) *ManualService {
	return &ManualService{
		manuals:   manuals,
		groups:    groups,
		countries: countries,
		costing:   &costing{costs: costs, templates: templates, logger: logger},
		logger:    logger,
	}
}

// SetMetrics attaches business counters
func (s *ManualService) SetMetrics(m *telemetry.LaunchMetrics) {
	s.costing.metrics = m
}

// List returns manuals ordered by name
func (s *ManualService) List(ctx context.Context, q recipe.ManualQuery) ([]*recipe.MenuManual, error) {
	return s.manuals.FindAll(ctx, q)
}

// Get returns a manual with its group and ingredients
func (s *ManualService) Get(ctx context.Context, id uuid.UUID) (*recipe.MenuManual, error) {
	m, err := s.manuals.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errManualNotFound
		}
		return nil, err
	}
	return m, nil
}

// Create stores a single ungrouped manual, or one copy per active group.
// Copies in a group with a template get a cost version right away.
func (s *ManualService) Create(ctx context.Context, in CreateManualInput) ([]*recipe.MenuManual, error) {
	if !in.AddToAllGroups {
		m, err := recipe.NewMenuManual(in.Manual, nil, in.Ingredients)
		if err != nil {
			return nil, err
		}
		if err := s.manuals.Create(ctx, m); err != nil {
			return nil, err
		}
		s.logger.Info("Manual created", zap.String("manual_id", m.ID.String()))
		return []*recipe.MenuManual{m}, nil
	}

	groups, err := s.groups.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		def := recipe.NewDefaultGroup()
		if err := s.groups.Create(ctx, def); err != nil {
			return nil, err
		}
		groups = append(groups, def)
	}

	created := make([]*recipe.MenuManual, 0, len(groups))
	for _, g := range groups {
		groupID := g.ID
		m, err := recipe.NewMenuManual(in.Manual, &groupID, in.Ingredients)
		if err != nil {
			return nil, err
		}
		if err := s.manuals.Create(ctx, m); err != nil {
			return nil, err
		}
		m.Group = g

		if g.TemplateID != nil {
			tpl, err := s.costing.loadTemplate(ctx, *g.TemplateID)
			if err != nil {
				return nil, err
			}
			v, err := s.costing.replace(ctx, m, tpl, g.CurrencyOr(canadaCurrency))
			if err != nil {
				return nil, err
			}
			m.CostVersions = []*recipe.ManualCostVersion{v}
		}
		created = append(created, m)
	}

	s.logger.Info("Manual added to all groups",
		zap.String("name", in.Manual.Name),
		zap.Int("groups", len(created)),
	)
	return created, nil
}

// Update changes scalar fields, optionally replaces ingredients and moves
// the manual to the group of a template, creating that group when needed.
func (s *ManualService) Update(ctx context.Context, id uuid.UUID, in UpdateManualInput) (*recipe.MenuManual, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.TemplateID != nil {
		groupID, err := s.groupForTemplate(ctx, *in.TemplateID)
		if err != nil {
			return nil, err
		}
		m.MoveToGroup(&groupID)
	}

	if err := m.Apply(in.merge(m)); err != nil {
		return nil, err
	}
	if in.Ingredients != nil {
		m.ReplaceIngredients(*in.Ingredients)
	}
	if err := s.manuals.Update(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info("Manual updated", zap.String("manual_id", m.ID.String()))
	return s.Get(ctx, id)
}

func (s *ManualService) groupForTemplate(ctx context.Context, templateID uuid.UUID) (uuid.UUID, error) {
	g, err := s.groups.FindFirstByTemplate(ctx, templateID)
	if err == nil {
		return g.ID, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return uuid.Nil, err
	}

	tpl, err := s.costing.loadTemplate(ctx, templateID)
	if err != nil {
		return uuid.Nil, err
	}
	currency := defaultCurrency
	country, err := s.countries.FindByID(ctx, tpl.CountryID)
	switch {
	case err == nil:
		if country.Code == canadaCode {
			currency = canadaCurrency
		}
	case !errors.Is(err, shared.ErrNotFound):
		return uuid.Nil, err
	}

	tplID := tpl.ID
	g, err = recipe.NewManualGroup(tpl.Name+" Manuals", "", &tplID, currency)
	if err != nil {
		return uuid.Nil, err
	}
	if err := s.groups.Create(ctx, g); err != nil {
		return uuid.Nil, err
	}
	s.logger.Info("Manual group created for template",
		zap.String("group_id", g.ID.String()),
		zap.String("template_id", tplID.String()),
	)
	return g.ID, nil
}

// Delete removes a manual with its ingredients and cost versions
func (s *ManualService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.manuals.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return errManualNotFound
		}
		return err
	}
	s.logger.Info("Manual deleted", zap.String("manual_id", id.String()))
	return nil
}

// Recalculate replaces the manual's cost version for a template. The
// currency is the group currency, then the template's, then CAD.
func (s *ManualService) Recalculate(ctx context.Context, manualID, templateID uuid.UUID) (*recipe.ManualCostVersion, error) {
	m, err := s.Get(ctx, manualID)
	if err != nil {
		return nil, err
	}
	tpl, err := s.costing.loadTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	currency := m.Group.CurrencyOr(tpl.FirstCurrency())
	if currency == "" {
		currency = canadaCurrency
	}
	return s.costing.replace(ctx, m, tpl, currency)
}

// GroupDetail is a group with its template and member manuals
type GroupDetail struct {
	Group    *recipe.ManualGroup
	Template *pricing.IngredientTemplate
	Manuals  []*recipe.MenuManual
}

// UpdateGroupInput changes a group and optionally reprices its manuals
type UpdateGroupInput struct {
	recipe.GroupUpdate
	ApplyTemplateToAll bool
}

// GroupService manages manual groups
type GroupService struct {
	groups  recipe.GroupRepository
	manuals recipe.ManualRepository
	costing *costing
	logger  *zap.Logger
}

// NewGroupService creates a new GroupService
func NewGroupService(
	groups recipe.GroupRepository,
	manuals recipe.ManualRepository,
	costs recipe.CostVersionRepository,
	templates pricing.TemplateRepository,
	logger *zap.Logger,
) *GroupService {
	return &GroupService{
		groups:  groups,
		manuals: manuals,
		costing: &costing{costs: costs, templates: templates, logger: logger},
		logger:  logger,
	}
}

// SetMetrics attaches business counters
func (s *GroupService) SetMetrics(m *telemetry.LaunchMetrics) {
	s.costing.metrics = m
}

// List returns all groups
func (s *GroupService) List(ctx context.Context) ([]*recipe.ManualGroup, error) {
	return s.groups.FindAll(ctx)
}

// Create adds a group
func (s *GroupService) Create(ctx context.Context, name, description string, templateID *uuid.UUID, currency string) (*recipe.ManualGroup, error) {
	if templateID != nil {
		if _, err := s.costing.loadTemplate(ctx, *templateID); err != nil {
			return nil, err
		}
	}
	g, err := recipe.NewManualGroup(name, description, templateID, currency)
	if err != nil {
		return nil, err
	}
	if err := s.groups.Create(ctx, g); err != nil {
		return nil, err
	}
	s.logger.Info("Manual group created", zap.String("group_id", g.ID.String()))
	return g, nil
}

// Get returns the group with its template and manuals
func (s *GroupService) Get(ctx context.Context, id uuid.UUID) (*GroupDetail, error) {
	g, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, g)
}

func (s *GroupService) find(ctx context.Context, id uuid.UUID) (*recipe.ManualGroup, error) {
	g, err := s.groups.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errGroupNotFound
		}
		return nil, err
	}
	return g, nil
}

func (s *GroupService) detail(ctx context.Context, g *recipe.ManualGroup) (*GroupDetail, error) {
	d := &GroupDetail{Group: g}
	if g.TemplateID != nil {
		tpl, err := s.costing.templates.FindByID(ctx, *g.TemplateID)
		switch {
		case err == nil:
			d.Template = tpl
		case !errors.Is(err, shared.ErrNotFound):
			return nil, err
		}
	}
	manuals, err := s.manuals.FindByGroup(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	d.Manuals = manuals
	return d, nil
}

// Update changes the group. With ApplyTemplateToAll and a template, every
// member manual is repriced against that template.
func (s *GroupService) Update(ctx context.Context, id uuid.UUID, in UpdateGroupInput) (*GroupDetail, error) {
	g, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	var tpl *pricing.IngredientTemplate
	if in.TemplateID != nil {
		if tpl, err = s.costing.loadTemplate(ctx, *in.TemplateID); err != nil {
			return nil, err
		}
	}

	if err := g.Apply(in.GroupUpdate); err != nil {
		return nil, err
	}
	if err := s.groups.Update(ctx, g); err != nil {
		return nil, err
	}

	if in.ApplyTemplateToAll && tpl != nil {
		currency := repriceCurrency(in.Currency, tpl)
		manuals, err := s.manuals.FindByGroup(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		for _, m := range manuals {
			if _, err := s.costing.replace(ctx, m, tpl, currency); err != nil {
				return nil, err
			}
		}
		s.logger.Info("Template applied to group manuals",
			zap.String("group_id", g.ID.String()),
			zap.Int("manuals", len(manuals)),
		)
	}

	return s.detail(ctx, g)
}

// Delete detaches the group's manuals, then removes the group
func (s *GroupService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.manuals.DetachGroup(ctx, id); err != nil {
		return err
	}
	if err := s.groups.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Manual group deleted", zap.String("group_id", id.String()))
	return nil
}

// repriceCurrency picks the request currency, then the template's first
// item currency, then CAD. The stored group currency is not consulted.
func repriceCurrency(requested *string, tpl *pricing.IngredientTemplate) string {
	if requested != nil {
		if c := strings.ToUpper(strings.TrimSpace(*requested)); c != "" {
			return c
		}
	}
	if c := tpl.FirstCurrency(); c != "" {
		return c
	}
	return canadaCurrency
}
