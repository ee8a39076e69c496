package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/recipe"
	"github.com/storelaunch/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormManualRepository implements recipe.ManualRepository using GORM
type GormManualRepository struct {
	db *gorm.DB
}

// NewGormManualRepository creates a new GormManualRepository
func NewGormManualRepository(db *gorm.DB) *GormManualRepository {
	return &GormManualRepository{db: db}
}

func orderIngredients(db *gorm.DB) *gorm.DB {
	return db.Order("section ASC").Order("sort_order ASC")
}

func orderCostVersions(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

// Create stores the manual with its ingredients
func (r *GormManualRepository) Create(ctx context.Context, m *recipe.MenuManual) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(models.MenuManualModelFromDomain(m)).Error; err != nil {
			return err
		}
		return insertManualIngredients(tx, m)
	})
}

// Update stores scalar fields and replaces the ingredient list
func (r *GormManualRepository) Update(ctx context.Context, m *recipe.MenuManual) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateColumns(ctx, tx, models.MenuManualModelFromDomain(m)); err != nil {
			return err
		}
		if err := tx.Delete(&models.ManualIngredientModel{}, "manual_id = ?", m.ID).Error; err != nil {
			return err
		}
		return insertManualIngredients(tx, m)
	})
}

func insertManualIngredients(tx *gorm.DB, m *recipe.MenuManual) error {
	if len(m.Ingredients) == 0 {
		return nil
	}
	rows := make([]*models.ManualIngredientModel, len(m.Ingredients))
	for i, ing := range m.Ingredients {
		ing.ManualID = m.ID
		rows[i] = models.ManualIngredientModelFromDomain(ing)
	}
	return tx.Create(rows).Error
}

// Delete removes the manual with its ingredients and cost versions
func (r *GormManualRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		versions := tx.Model(&models.ManualCostVersionModel{}).Select("id").Where("manual_id = ?", id)
		if err := tx.Where("cost_version_id IN (?)", versions).Delete(&models.ManualCostLineModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.ManualCostVersionModel{}, "manual_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.ManualIngredientModel{}, "manual_id = ?", id).Error; err != nil {
			return err
		}
		return deleteByID(ctx, tx, &models.MenuManualModel{}, id)
	})
}

// FindByID loads the manual with its group and ordered ingredients
func (r *GormManualRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.MenuManual, error) {
	var model models.MenuManualModel
	if err := r.db.WithContext(ctx).
		Preload("Group").
		Preload("Ingredients", orderIngredients).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists manuals by name
func (r *GormManualRepository) FindAll(ctx context.Context, q recipe.ManualQuery) ([]*recipe.MenuManual, error) {
	query := r.db.WithContext(ctx).Preload("Group")
	if q.GroupID != nil {
		query = query.Where("group_id = ?", *q.GroupID)
	}
	if q.IncludeIngredients {
		query = query.Preload("Ingredients", orderIngredients)
	}
	if q.IncludeCostVersions {
		query = query.Preload("CostVersions", orderCostVersions)
	}

	var rows []models.MenuManualModel
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return manualsToDomain(rows), nil
}

// FindByGroup loads member manuals with ingredients and cost versions with lines
func (r *GormManualRepository) FindByGroup(ctx context.Context, groupID uuid.UUID) ([]*recipe.MenuManual, error) {
	var rows []models.MenuManualModel
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Preload("Ingredients", orderIngredients).
		Preload("CostVersions", orderCostVersions).
		Preload("CostVersions.Lines").
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return manualsToDomain(rows), nil
}

// DetachGroup clears the group of every member manual
func (r *GormManualRepository) DetachGroup(ctx context.Context, groupID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.MenuManualModel{}).
		Where("group_id = ?", groupID).
		Update("group_id", nil).Error
}

func manualsToDomain(rows []models.MenuManualModel) []*recipe.MenuManual {
	out := make([]*recipe.MenuManual, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out
}

// GormManualGroupRepository implements recipe.GroupRepository using GORM
type GormManualGroupRepository struct {
	db *gorm.DB
}

// NewGormManualGroupRepository creates a new GormManualGroupRepository
func NewGormManualGroupRepository(db *gorm.DB) *GormManualGroupRepository {
	return &GormManualGroupRepository{db: db}
}

// Create creates a new group
func (r *GormManualGroupRepository) Create(ctx context.Context, g *recipe.ManualGroup) error {
	return r.db.WithContext(ctx).Create(models.ManualGroupModelFromDomain(g)).Error
}

// Update updates an existing group
func (r *GormManualGroupRepository) Update(ctx context.Context, g *recipe.ManualGroup) error {
	return updateColumns(ctx, r.db, models.ManualGroupModelFromDomain(g))
}

// Delete deletes a group by ID
func (r *GormManualGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.ManualGroupModel{}, id)
}

// FindByID finds a group by ID
func (r *GormManualGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.ManualGroup, error) {
	var model models.ManualGroupModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists groups by name
func (r *GormManualGroupRepository) FindAll(ctx context.Context) ([]*recipe.ManualGroup, error) {
	return r.find(r.db.WithContext(ctx).Order("name ASC"))
}

// FindActive lists active groups, oldest first
func (r *GormManualGroupRepository) FindActive(ctx context.Context) ([]*recipe.ManualGroup, error) {
	return r.find(r.db.WithContext(ctx).Where("is_active = ?", true).Order("created_at ASC"))
}

// FindFirstByTemplate returns the oldest group using the template
func (r *GormManualGroupRepository) FindFirstByTemplate(ctx context.Context, templateID uuid.UUID) (*recipe.ManualGroup, error) {
	var model models.ManualGroupModel
	if err := r.db.WithContext(ctx).
		Where("template_id = ?", templateID).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

func (r *GormManualGroupRepository) find(query *gorm.DB) ([]*recipe.ManualGroup, error) {
	var rows []models.ManualGroupModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*recipe.ManualGroup, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// GormCostVersionRepository implements recipe.CostVersionRepository using GORM
type GormCostVersionRepository struct {
	db *gorm.DB
}

// NewGormCostVersionRepository creates a new GormCostVersionRepository
func NewGormCostVersionRepository(db *gorm.DB) *GormCostVersionRepository {
	return &GormCostVersionRepository{db: db}
}

// Replace deletes any version for the same manual and template, then stores v with its lines
func (r *GormCostVersionRepository) Replace(ctx context.Context, v *recipe.ManualCostVersion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteCostVersions(tx, v.ManualID, v.TemplateID); err != nil {
			return err
		}
		return tx.Create(models.ManualCostVersionModelFromDomain(v)).Error
	})
}

// FindByManual returns a manual's versions with lines, newest first
func (r *GormCostVersionRepository) FindByManual(ctx context.Context, manualID uuid.UUID) ([]*recipe.ManualCostVersion, error) {
	var rows []models.ManualCostVersionModel
	if err := r.db.WithContext(ctx).
		Where("manual_id = ?", manualID).
		Preload("Lines").
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*recipe.ManualCostVersion, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// DeleteByManualAndTemplate removes the version for (manual, template) if any
func (r *GormCostVersionRepository) DeleteByManualAndTemplate(ctx context.Context, manualID, templateID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteCostVersions(tx, manualID, templateID)
	})
}

func deleteCostVersions(tx *gorm.DB, manualID, templateID uuid.UUID) error {
	versions := tx.Model(&models.ManualCostVersionModel{}).
		Select("id").
		Where("manual_id = ? AND template_id = ?", manualID, templateID)
	if err := tx.Where("cost_version_id IN (?)", versions).Delete(&models.ManualCostLineModel{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.ManualCostVersionModel{}, "manual_id = ? AND template_id = ?", manualID, templateID).Error
}
