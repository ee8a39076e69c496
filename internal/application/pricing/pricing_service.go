package pricing

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/pricing"
	"github.com/storelaunch/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CountryService lists and seeds markets
type CountryService struct {
	countryRepo pricing.CountryRepository
	logger      *zap.Logger
}

// NewCountryService creates a new CountryService
func NewCountryService(countryRepo pricing.CountryRepository, logger *zap.Logger) *CountryService {
	return &CountryService{countryRepo: countryRepo, logger: logger}
}

// List returns every country
func (s *CountryService) List(ctx context.Context) ([]*pricing.Country, error) {
	return s.countryRepo.FindAll(ctx)
}

// Seed upserts the default countries and returns how many were written
func (s *CountryService) Seed(ctx context.Context) (int, error) {
	seeds := pricing.DefaultCountries()
	for _, c := range seeds {
		if err := s.countryRepo.Upsert(ctx, c); err != nil {
			return 0, err
		}
	}
	s.logger.Info("Countries seeded", zap.Int("count", len(seeds)))
	return len(seeds), nil
}

// IngredientService manages ingredient masters
type IngredientService struct {
	ingredientRepo pricing.IngredientRepository
	templateRepo   pricing.TemplateRepository
	logger         *zap.Logger
}

// NewIngredientService creates a new IngredientService
func NewIngredientService(ingredientRepo pricing.IngredientRepository, templateRepo pricing.TemplateRepository, logger *zap.Logger) *IngredientService {
	return &IngredientService{ingredientRepo: ingredientRepo, templateRepo: templateRepo, logger: logger}
}

// List returns masters ordered by category, then english name
func (s *IngredientService) List(ctx context.Context) ([]*pricing.IngredientMaster, error) {
	return s.ingredientRepo.FindAll(ctx)
}

// Create adds a master. English names are unique.
func (s *IngredientService) Create(ctx context.Context, in pricing.IngredientInput) (*pricing.IngredientMaster, error) {
	ing, err := pricing.NewIngredientMaster(in)
	if err != nil {
		s.logger.Warn("Ingredient rejected", zap.Error(err))
		return nil, err
	}
	_, err = s.ingredientRepo.FindByEnglishName(ctx, ing.EnglishName)
	switch {
	case err == nil:
		return nil, shared.NewDomainError(shared.ErrAlreadyExists.Code, "Ingredient already exists")
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}
	if err := s.ingredientRepo.Create(ctx, ing); err != nil {
		return nil, err
	}
	s.logger.Info("Ingredient created",
		zap.String("ingredient_id", ing.ID.String()),
		zap.String("english_name", ing.EnglishName),
	)
	return ing, nil
}

// Search matches ingredient names. With a template the template's items are
// searched and priced; otherwise masters are returned without a price.
func (s *IngredientService) Search(ctx context.Context, in SearchInput) ([]pricing.SearchResult, error) {
	q := strings.TrimSpace(in.Query)
	results := make([]pricing.SearchResult, 0)
	if q == "" {
		return results, nil
	}
	limit := in.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	if in.TemplateID != nil {
		items, err := s.templateRepo.SearchItems(ctx, *in.TemplateID, q, limit)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if item.Ingredient == nil {
				continue
			}
			price := item.Price
			currency := item.Currency
			r := toSearchResult(item.Ingredient)
			r.YieldRate = item.EffectiveYield()
			r.Price = &price
			r.Currency = &currency
			results = append(results, r)
		}
		return results, nil
	}

	masters, err := s.ingredientRepo.Search(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	for _, m := range masters {
		results = append(results, toSearchResult(m))
	}
	return results, nil
}

func toSearchResult(m *pricing.IngredientMaster) pricing.SearchResult {
	return pricing.SearchResult{
		ID:          m.ID,
		Category:    m.Category,
		KoreanName:  m.KoreanName,
		EnglishName: m.EnglishName,
		Unit:        m.Unit,
		YieldRate:   m.YieldRate,
	}
}

// TemplateService manages ingredient price templates
type TemplateService struct {
	templateRepo   pricing.TemplateRepository
	ingredientRepo pricing.IngredientRepository
	countryRepo    pricing.CountryRepository
	logger         *zap.Logger
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(
	templateRepo pricing.TemplateRepository,
	ingredientRepo pricing.IngredientRepository,
	countryRepo pricing.CountryRepository,
	logger *zap.Logger,
) *TemplateService {
	return &TemplateService{
		templateRepo:   templateRepo,
		ingredientRepo: ingredientRepo,
		countryRepo:    countryRepo,
		logger:         logger,
	}
}

// List returns templates newest first
func (s *TemplateService) List(ctx context.Context, includeItems bool) ([]*pricing.IngredientTemplate, error) {
	return s.templateRepo.FindAll(ctx, includeItems)
}

// Get returns a template with its items
func (s *TemplateService) Get(ctx context.Context, id uuid.UUID) (*pricing.IngredientTemplate, error) {
	tpl, err := s.templateRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Template not found")
		}
		return nil, err
	}
	return tpl, nil
}

// Create stores a template with a zero-priced item per master ingredient.
// Without a country the default market is used.
func (s *TemplateService) Create(ctx context.Context, in CreateTemplateInput) (*pricing.IngredientTemplate, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, shared.InvalidInput("Template name is required")
	}

	countryID, err := s.resolveCountry(ctx, in.CountryID)
	if err != nil {
		return nil, err
	}

	masters, err := s.ingredientRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	tpl, err := pricing.NewIngredientTemplate(in.Name, countryID, in.Description, strings.ToUpper(in.Currency), masters)
	if err != nil {
		return nil, err
	}
	if err := s.templateRepo.Create(ctx, tpl); err != nil {
		return nil, err
	}

	s.logger.Info("Ingredient template created",
		zap.String("template_id", tpl.ID.String()),
		zap.Int("items", len(tpl.Items)),
	)
	return tpl, nil
}

func (s *TemplateService) resolveCountry(ctx context.Context, id *uuid.UUID) (uuid.UUID, error) {
	if id != nil && *id != uuid.Nil {
		if _, err := s.countryRepo.FindByID(ctx, *id); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return uuid.Nil, shared.InvalidInput("Country not found")
			}
			return uuid.Nil, err
		}
		return *id, nil
	}

	country, err := s.countryRepo.FindByCode(ctx, pricing.DefaultCountryCode)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return uuid.Nil, shared.InvalidInput("Country ID is required")
		}
		return uuid.Nil, err
	}
	return country.ID, nil
}

// UpdateItem changes an item and records price history when the price moves
func (s *TemplateService) UpdateItem(ctx context.Context, in UpdateItemInput) (*pricing.IngredientTemplateItem, error) {
	item, err := s.templateRepo.FindItem(ctx, in.TemplateID, in.ItemID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Template item not found")
		}
		return nil, err
	}

	history, err := item.ApplyChange(pricing.PriceChange{
		Price:     in.Price,
		Currency:  in.Currency,
		YieldRate: in.YieldRate,
		ChangedBy: in.ChangedBy,
		Reason:    in.Reason,
	})
	if err != nil {
		s.logger.Warn("Template item change rejected", zap.Error(err))
		return nil, err
	}

	if err := s.templateRepo.SaveItemChange(ctx, item, history); err != nil {
		return nil, err
	}

	if history != nil {
		s.logger.Info("Template item price changed",
			zap.String("item_id", item.ID.String()),
			zap.String("old_price", history.OldPrice.String()),
			zap.String("new_price", history.NewPrice.String()),
		)
	}
	return item, nil
}

// PriceHistory lists price changes of an item, newest first
func (s *TemplateService) PriceHistory(ctx context.Context, templateID, itemID uuid.UUID) ([]*pricing.PriceHistory, error) {
	if _, err := s.templateRepo.FindItem(ctx, templateID, itemID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Template item not found")
		}
		return nil, err
	}
	return s.templateRepo.FindPriceHistory(ctx, itemID)
}

// VendorService manages vendors
type VendorService struct {
	vendorRepo pricing.VendorRepository
	logger     *zap.Logger
}

// NewVendorService creates a new VendorService
func NewVendorService(vendorRepo pricing.VendorRepository, logger *zap.Logger) *VendorService {
	return &VendorService{vendorRepo: vendorRepo, logger: logger}
}

// List returns vendors matching the filter
func (s *VendorService) List(ctx context.Context, filter pricing.VendorFilter) ([]*pricing.Vendor, error) {
	filter.Country = strings.ToUpper(strings.TrimSpace(filter.Country))
	filter.Category = strings.TrimSpace(filter.Category)
	return s.vendorRepo.FindAll(ctx, filter)
}

// Create adds a vendor
func (s *VendorService) Create(ctx context.Context, in pricing.VendorInput) (*pricing.Vendor, error) {
	v, err := pricing.NewVendor(in)
	if err != nil {
		return nil, err
	}
	if err := s.vendorRepo.Create(ctx, v); err != nil {
		return nil, err
	}
	s.logger.Info("Vendor created", zap.String("vendor_id", v.ID.String()))
	return v, nil
}

// Update overwrites a vendor
func (s *VendorService) Update(ctx context.Context, id uuid.UUID, in pricing.VendorInput) (*pricing.Vendor, error) {
	v, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := v.Apply(in); err != nil {
		return nil, err
	}
	if err := s.vendorRepo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Delete removes a vendor
func (s *VendorService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.vendorRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Vendor deleted", zap.String("vendor_id", id.String()))
	return nil
}

func (s *VendorService) find(ctx context.Context, id uuid.UUID) (*pricing.Vendor, error) {
	v, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Vendor not found")
		}
		return nil, err
	}
	return v, nil
}
