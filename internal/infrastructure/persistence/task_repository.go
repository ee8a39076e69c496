package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/launch"
	"github.com/storelaunch/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLaunchTemplateRepository implements launch.TemplateRepository using GORM
type GormLaunchTemplateRepository struct {
	db *gorm.DB
}

// NewGormLaunchTemplateRepository creates a new GormLaunchTemplateRepository
func NewGormLaunchTemplateRepository(db *gorm.DB) *GormLaunchTemplateRepository {
	return &GormLaunchTemplateRepository{db: db}
}

// Create stores the template with its tasks
func (r *GormLaunchTemplateRepository) Create(ctx context.Context, t *launch.LaunchTemplate) error {
	return r.db.WithContext(ctx).Create(models.LaunchTemplateModelFromDomain(t)).Error
}

// FindByID loads the template with its ordered tasks
func (r *GormLaunchTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*launch.LaunchTemplate, error) {
	var model models.LaunchTemplateModel
	if err := r.db.WithContext(ctx).Preload("Tasks").First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists templates by name with their tasks
func (r *GormLaunchTemplateRepository) FindAll(ctx context.Context) ([]*launch.LaunchTemplate, error) {
	var rows []models.LaunchTemplateModel
	if err := r.db.WithContext(ctx).Preload("Tasks").Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*launch.LaunchTemplate, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// GormTaskRepository implements launch.TaskRepository using GORM
type GormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GormTaskRepository
func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, t *launch.Task) error {
	return r.db.WithContext(ctx).Create(models.TaskModelFromDomain(t)).Error
}

// Update updates an existing task
func (r *GormTaskRepository) Update(ctx context.Context, t *launch.Task) error {
	return updateColumns(ctx, r.db, models.TaskModelFromDomain(t))
}

// SaveAll updates the given tasks in one transaction
func (r *GormTaskRepository) SaveAll(ctx context.Context, tasks []*launch.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, t := range tasks {
			if err := updateColumns(ctx, tx, models.TaskModelFromDomain(t)); err != nil {
				return err
			}
		}
		return nil
	})
}

// ApplyGeneration removes replaced tasks and creates the new ones atomically
func (r *GormTaskRepository) ApplyGeneration(ctx context.Context, plan launch.GenerationPlan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(plan.Remove) > 0 {
			ids := make([]uuid.UUID, len(plan.Remove))
			for i, t := range plan.Remove {
				ids[i] = t.ID
			}
			if err := tx.Where("task_id IN ?", ids).Delete(&models.TaskCommentModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("task_id IN ?", ids).Delete(&models.TaskChecklistItemModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", ids).Delete(&models.TaskModel{}).Error; err != nil {
				return err
			}
		}
		if len(plan.Create) == 0 {
			return nil
		}
		rows := make([]*models.TaskModel, len(plan.Create))
		for i, t := range plan.Create {
			rows[i] = models.TaskModelFromDomain(t)
		}
		return tx.CreateInBatches(rows, itemBatchSize).Error
	})
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*launch.Task, error) {
	var model models.TaskModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByStore lists a store's tasks by due date, then order
func (r *GormTaskRepository) FindByStore(ctx context.Context, storeID uuid.UUID) ([]*launch.Task, error) {
	var rows []models.TaskModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("due_date ASC").
		Order("sort_order ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*launch.Task, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// AddComment appends a comment to a task
func (r *GormTaskRepository) AddComment(ctx context.Context, c *launch.TaskComment) error {
	return r.db.WithContext(ctx).Create(models.TaskCommentModelFromDomain(c)).Error
}

// ListComments lists a task's comments, oldest first
func (r *GormTaskRepository) ListComments(ctx context.Context, taskID uuid.UUID) ([]*launch.TaskComment, error) {
	var rows []models.TaskCommentModel
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*launch.TaskComment, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// AddChecklistItem appends a checklist item to a task
func (r *GormTaskRepository) AddChecklistItem(ctx context.Context, item *launch.ChecklistItem) error {
	return r.db.WithContext(ctx).Create(models.TaskChecklistItemModelFromDomain(item)).Error
}

// FindChecklistItem finds an item belonging to the task
func (r *GormTaskRepository) FindChecklistItem(ctx context.Context, taskID, itemID uuid.UUID) (*launch.ChecklistItem, error) {
	var model models.TaskChecklistItemModel
	if err := r.db.WithContext(ctx).
		Where("task_id = ? AND id = ?", taskID, itemID).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// UpdateChecklistItem updates an existing checklist item
func (r *GormTaskRepository) UpdateChecklistItem(ctx context.Context, item *launch.ChecklistItem) error {
	return updateColumns(ctx, r.db, models.TaskChecklistItemModelFromDomain(item))
}

// ListChecklist lists a task's checklist by order
func (r *GormTaskRepository) ListChecklist(ctx context.Context, taskID uuid.UUID) ([]*launch.ChecklistItem, error) {
	var rows []models.TaskChecklistItemModel
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("sort_order ASC").
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*launch.ChecklistItem, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}
