package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/pricing"
	"github.com/storelaunch/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormIngredientRepository implements pricing.IngredientRepository using GORM
type GormIngredientRepository struct {
	db *gorm.DB
}

// NewGormIngredientRepository creates a new GormIngredientRepository
func NewGormIngredientRepository(db *gorm.DB) *GormIngredientRepository {
	return &GormIngredientRepository{db: db}
}

// Create creates a new ingredient master
func (r *GormIngredientRepository) Create(ctx context.Context, ing *pricing.IngredientMaster) error {
	return r.db.WithContext(ctx).Create(models.IngredientMasterModelFromDomain(ing)).Error
}

// Update updates an existing ingredient master
func (r *GormIngredientRepository) Update(ctx context.Context, ing *pricing.IngredientMaster) error {
	return updateColumns(ctx, r.db, models.IngredientMasterModelFromDomain(ing))
}

// FindByID finds an ingredient master by ID
func (r *GormIngredientRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.IngredientMaster, error) {
	var model models.IngredientMasterModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByEnglishName matches the english name case-insensitively
func (r *GormIngredientRepository) FindByEnglishName(ctx context.Context, name string) (*pricing.IngredientMaster, error) {
	var model models.IngredientMasterModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(english_name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns masters ordered by category, then english name
func (r *GormIngredientRepository) FindAll(ctx context.Context) ([]*pricing.IngredientMaster, error) {
	var rows []models.IngredientMasterModel
	if err := r.db.WithContext(ctx).
		Order("category ASC").
		Order("english_name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return ingredientsToDomain(rows), nil
}

// Search matches korean or english names containing q
func (r *GormIngredientRepository) Search(ctx context.Context, q string, limit int) ([]*pricing.IngredientMaster, error) {
	pattern := likePattern(strings.ToLower(q))
	var rows []models.IngredientMasterModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(korean_name) LIKE ? OR LOWER(english_name) LIKE ?", pattern, pattern).
		Order("english_name ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return ingredientsToDomain(rows), nil
}

func ingredientsToDomain(rows []models.IngredientMasterModel) []*pricing.IngredientMaster {
	out := make([]*pricing.IngredientMaster, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out
}
