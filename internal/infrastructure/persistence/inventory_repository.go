package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/inventory"
	"github.com/storelaunch/backend/internal/domain/shared"
	"github.com/storelaunch/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryGroupRepository implements inventory.GroupRepository using GORM
type GormInventoryGroupRepository struct {
	db *gorm.DB
}

// NewGormInventoryGroupRepository creates a new GormInventoryGroupRepository
func NewGormInventoryGroupRepository(db *gorm.DB) *GormInventoryGroupRepository {
	return &GormInventoryGroupRepository{db: db}
}

// Create creates a new group
func (r *GormInventoryGroupRepository) Create(ctx context.Context, g *inventory.Group) error {
	err := r.db.WithContext(ctx).Create(models.InventoryGroupModelFromDomain(g)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	return err
}

// FindByID finds a group by ID
func (r *GormInventoryGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Group, error) {
	var model models.InventoryGroupModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists groups by name
func (r *GormInventoryGroupRepository) FindAll(ctx context.Context) ([]*inventory.Group, error) {
	var rows []models.InventoryGroupModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*inventory.Group, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// ExistsByName checks whether a group with the name exists
func (r *GormInventoryGroupRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.InventoryGroupModel{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpsertLink creates the link or repoints the existing link with the same POS menu name
func (r *GormInventoryGroupRepository) UpsertLink(ctx context.Context, link *inventory.PosMenuLink) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}, {Name: "pos_menu_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"menu_manual_id"}),
	}).Create(models.PosMenuLinkModelFromDomain(link)).Error
}

// FindLinks lists a group's POS links by name
func (r *GormInventoryGroupRepository) FindLinks(ctx context.Context, groupID uuid.UUID) ([]*inventory.PosMenuLink, error) {
	var rows []models.PosMenuLinkModel
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("pos_menu_name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*inventory.PosMenuLink, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// GormInventoryPeriodRepository implements inventory.PeriodRepository using GORM
type GormInventoryPeriodRepository struct {
	db *gorm.DB
}

// NewGormInventoryPeriodRepository creates a new GormInventoryPeriodRepository
func NewGormInventoryPeriodRepository(db *gorm.DB) *GormInventoryPeriodRepository {
	return &GormInventoryPeriodRepository{db: db}
}

// Create creates a new period
func (r *GormInventoryPeriodRepository) Create(ctx context.Context, p *inventory.Period) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(models.InventoryPeriodModelFromDomain(p)).Error
}

// FindByID loads the period with its items and sales
func (r *GormInventoryPeriodRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Period, error) {
	var model models.InventoryPeriodModel
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("ingredient_id ASC") }).
		Preload("Sales").
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByGroup lists a group's periods by start date, newest first
func (r *GormInventoryPeriodRepository) FindByGroup(ctx context.Context, groupID uuid.UUID) ([]*inventory.Period, error) {
	var rows []models.InventoryPeriodModel
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("start_date DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*inventory.Period, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// UpdateStatus persists the period's status and version
func (r *GormInventoryPeriodRepository) UpdateStatus(ctx context.Context, p *inventory.Period) error {
	result := r.db.WithContext(ctx).
		Model(&models.InventoryPeriodModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"status":     p.Status,
			"version":    p.Version,
			"updated_at": p.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SaveItems inserts or overwrites the given items
func (r *GormInventoryPeriodRepository) SaveItems(ctx context.Context, items []*inventory.Item) error {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]int, len(items))
	rows := make([]*models.InventoryItemModel, 0, len(items))
	for _, it := range items {
		if i, ok := seen[it.ID]; ok {
			rows[i] = models.InventoryItemModelFromDomain(it)
			continue
		}
		seen[it.ID] = len(rows)
		rows = append(rows, models.InventoryItemModelFromDomain(it))
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"opening_stock", "stock_in", "wastage", "actual_closing_stock",
			"total_usage", "theoretical_usage", "variance", "updated_at",
		}),
	}).Create(rows).Error
}

// SaveSales inserts or overwrites the given sales entries
func (r *GormInventoryPeriodRepository) SaveSales(ctx context.Context, sales []*inventory.PeriodSales) error {
	if len(sales) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]int, len(sales))
	rows := make([]*models.PeriodSalesModel, 0, len(sales))
	for _, s := range sales {
		if i, ok := seen[s.ID]; ok {
			rows[i] = models.PeriodSalesModelFromDomain(s)
			continue
		}
		seen[s.ID] = len(rows)
		rows = append(rows, models.PeriodSalesModelFromDomain(s))
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity_sold"}),
	}).Create(rows).Error
}
