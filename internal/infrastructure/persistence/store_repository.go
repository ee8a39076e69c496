package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/launch"
	"github.com/storelaunch/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStoreRepository implements launch.StoreRepository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GormStoreRepository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// Create stores the store and, when set, its initial planned open date
func (r *GormStoreRepository) Create(ctx context.Context, s *launch.Store) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.StoreModelFromDomain(s)).Error; err != nil {
			return err
		}
		if s.PlannedOpenDate == nil {
			return nil
		}
		return tx.Create(models.PlannedOpenDateModelFromDomain(s.PlannedOpenDate)).Error
	})
}

// Update updates the store's fields
func (r *GormStoreRepository) Update(ctx context.Context, s *launch.Store) error {
	return updateColumns(ctx, r.db, models.StoreModelFromDomain(s))
}

// Delete removes the store together with its tasks, planned dates and file records
func (r *GormStoreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tasks := tx.Model(&models.TaskModel{}).Select("id").Where("store_id = ?", id)
		if err := tx.Where("task_id IN (?)", tasks).Delete(&models.TaskCommentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id IN (?)", tasks).Delete(&models.TaskChecklistItemModel{}).Error; err != nil {
			return err
		}
		for _, child := range []any{&models.TaskModel{}, &models.PlannedOpenDateModel{}, &models.StoreFileModel{}} {
			if err := tx.Where("store_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return deleteByID(ctx, tx, &models.StoreModel{}, id)
	})
}

// FindByID loads the store with its current planned open date
func (r *GormStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*launch.Store, error) {
	var model models.StoreModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	store := model.ToDomain()

	var planned []models.PlannedOpenDateModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", id).
		Order("created_at DESC").
		Limit(1).
		Find(&planned).Error; err != nil {
		return nil, err
	}
	if len(planned) > 0 {
		store.PlannedOpenDate = planned[0].ToDomain()
	}
	return store, nil
}

// FindAll lists stores newest first, each with its current planned open date
func (r *GormStoreRepository) FindAll(ctx context.Context) ([]*launch.Store, error) {
	var rows []models.StoreModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []*launch.Store{}, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	var planned []models.PlannedOpenDateModel
	if err := r.db.WithContext(ctx).
		Where("store_id IN ?", ids).
		Order("created_at DESC").
		Find(&planned).Error; err != nil {
		return nil, err
	}
	current := make(map[uuid.UUID]*launch.PlannedOpenDate, len(rows))
	for i := range planned {
		if _, seen := current[planned[i].StoreID]; !seen {
			current[planned[i].StoreID] = planned[i].ToDomain()
		}
	}

	stores := make([]*launch.Store, len(rows))
	for i := range rows {
		stores[i] = rows[i].ToDomain()
		stores[i].PlannedOpenDate = current[rows[i].ID]
	}
	return stores, nil
}

// AddPlannedOpenDate appends an entry to the store's open date history
func (r *GormStoreRepository) AddPlannedOpenDate(ctx context.Context, p *launch.PlannedOpenDate) error {
	return r.db.WithContext(ctx).Create(models.PlannedOpenDateModelFromDomain(p)).Error
}

// ListPlannedOpenDates returns the history, newest first
func (r *GormStoreRepository) ListPlannedOpenDates(ctx context.Context, storeID uuid.UUID) ([]*launch.PlannedOpenDate, error) {
	var rows []models.PlannedOpenDateModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*launch.PlannedOpenDate, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// GormStoreFileRepository implements launch.FileRepository using GORM
type GormStoreFileRepository struct {
	db *gorm.DB
}

// NewGormStoreFileRepository creates a new GormStoreFileRepository
func NewGormStoreFileRepository(db *gorm.DB) *GormStoreFileRepository {
	return &GormStoreFileRepository{db: db}
}

// Create records an uploaded file
func (r *GormStoreFileRepository) Create(ctx context.Context, f *launch.StoreFile) error {
	return r.db.WithContext(ctx).Create(models.StoreFileModelFromDomain(f)).Error
}

// FindByStore lists a store's files, newest first
func (r *GormStoreFileRepository) FindByStore(ctx context.Context, storeID uuid.UUID) ([]*launch.StoreFile, error) {
	var rows []models.StoreFileModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*launch.StoreFile, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}
