package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/pricing"
	"github.com/storelaunch/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const itemBatchSize = 200

// GormIngredientTemplateRepository implements pricing.TemplateRepository using GORM
type GormIngredientTemplateRepository struct {
	db *gorm.DB
}

// NewGormIngredientTemplateRepository creates a new GormIngredientTemplateRepository
func NewGormIngredientTemplateRepository(db *gorm.DB) *GormIngredientTemplateRepository {
	return &GormIngredientTemplateRepository{db: db}
}

// Create stores the template and all of its items in one transaction
func (r *GormIngredientTemplateRepository) Create(ctx context.Context, tpl *pricing.IngredientTemplate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(models.IngredientTemplateModelFromDomain(tpl)).Error; err != nil {
			return err
		}
		if len(tpl.Items) == 0 {
			return nil
		}
		items := make([]*models.IngredientTemplateItemModel, len(tpl.Items))
		for i, it := range tpl.Items {
			items[i] = models.IngredientTemplateItemModelFromDomain(it)
		}
		return tx.Omit(clause.Associations).CreateInBatches(items, itemBatchSize).Error
	})
}

// Update stores the template's scalar fields
func (r *GormIngredientTemplateRepository) Update(ctx context.Context, tpl *pricing.IngredientTemplate) error {
	return updateColumns(ctx, r.db, models.IngredientTemplateModelFromDomain(tpl))
}

// FindAll returns templates newest first, optionally with their items
func (r *GormIngredientTemplateRepository) FindAll(ctx context.Context, includeItems bool) ([]*pricing.IngredientTemplate, error) {
	var rows []models.IngredientTemplateModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*pricing.IngredientTemplate, len(rows))
	ids := make([]uuid.UUID, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
		ids[i] = rows[i].ID
	}
	if !includeItems || len(ids) == 0 {
		return out, nil
	}

	items, err := r.findItems(ctx, r.db.WithContext(ctx).Where("ingredient_template_items.template_id IN ?", ids))
	if err != nil {
		return nil, err
	}
	byTemplate := make(map[uuid.UUID][]*pricing.IngredientTemplateItem, len(ids))
	for _, it := range items {
		byTemplate[it.TemplateID] = append(byTemplate[it.TemplateID], it)
	}
	for _, t := range out {
		t.Items = byTemplate[t.ID]
	}
	return out, nil
}

// FindByID loads the template with items ordered by ingredient category and name
func (r *GormIngredientTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.IngredientTemplate, error) {
	var model models.IngredientTemplateModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	tpl := model.ToDomain()

	items, err := r.findItems(ctx, r.db.WithContext(ctx).Where("ingredient_template_items.template_id = ?", id))
	if err != nil {
		return nil, err
	}
	tpl.Items = items
	return tpl, nil
}

// FindItem loads one item of a template with its ingredient
func (r *GormIngredientTemplateRepository) FindItem(ctx context.Context, templateID, itemID uuid.UUID) (*pricing.IngredientTemplateItem, error) {
	var model models.IngredientTemplateItemModel
	if err := r.db.WithContext(ctx).
		Joins("Ingredient").
		Where("ingredient_template_items.template_id = ? AND ingredient_template_items.id = ?", templateID, itemID).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// SaveItemChange persists the item and, when non-nil, its history entry atomically
func (r *GormIngredientTemplateRepository) SaveItemChange(ctx context.Context, item *pricing.IngredientTemplateItem, history *pricing.PriceHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateColumns(ctx, tx, models.IngredientTemplateItemModelFromDomain(item)); err != nil {
			return err
		}
		if history == nil {
			return nil
		}
		return tx.Create(models.PriceHistoryModelFromDomain(history)).Error
	})
}

// FindPriceHistory returns the price changes of an item, newest first
func (r *GormIngredientTemplateRepository) FindPriceHistory(ctx context.Context, itemID uuid.UUID) ([]*pricing.PriceHistory, error) {
	var rows []models.PriceHistoryModel
	if err := r.db.WithContext(ctx).
		Where("template_item_id = ?", itemID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*pricing.PriceHistory, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// SearchItems matches template items whose ingredient name contains q
func (r *GormIngredientTemplateRepository) SearchItems(ctx context.Context, templateID uuid.UUID, q string, limit int) ([]*pricing.IngredientTemplateItem, error) {
	pattern := likePattern(strings.ToLower(q))
	var rows []models.IngredientTemplateItemModel
	if err := r.db.WithContext(ctx).
		Joins("Ingredient").
		Where("ingredient_template_items.template_id = ?", templateID).
		Where(`LOWER("Ingredient".korean_name) LIKE ? OR LOWER("Ingredient".english_name) LIKE ?`, pattern, pattern).
		Order(`"Ingredient".english_name ASC`).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return itemsToDomain(rows), nil
}

func (r *GormIngredientTemplateRepository) findItems(_ context.Context, query *gorm.DB) ([]*pricing.IngredientTemplateItem, error) {
	var rows []models.IngredientTemplateItemModel
	if err := query.
		Joins("Ingredient").
		Order(`"Ingredient".category ASC`).
		Order(`"Ingredient".english_name ASC`).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return itemsToDomain(rows), nil
}

func itemsToDomain(rows []models.IngredientTemplateItemModel) []*pricing.IngredientTemplateItem {
	out := make([]*pricing.IngredientTemplateItem, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out
}
