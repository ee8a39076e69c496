package launch

import (
	"context"

	"github.com/google/uuid"
)

// StoreRepository persists stores and their planned open dates
type StoreRepository interface {
	Create(ctx context.Context, s *Store) error
	Update(ctx context.Context, s *Store) error
	Delete(ctx context.Context, id uuid.UUID) error
	// FindByID loads the store with its current planned open date
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)
	// FindAll is ordered by creation time, newest first
	FindAll(ctx context.Context) ([]*Store, error)
	AddPlannedOpenDate(ctx context.Context, p *PlannedOpenDate) error
	// ListPlannedOpenDates returns the history, newest first
	ListPlannedOpenDates(ctx context.Context, storeID uuid.UUID) ([]*PlannedOpenDate, error)
}

// TemplateRepository persists launch templates
type TemplateRepository interface {
	Create(ctx context.Context, t *LaunchTemplate) error
	FindByID(ctx context.Context, id uuid.UUID) (*LaunchTemplate, error)
	FindAll(ctx context.Context) ([]*LaunchTemplate, error)
}

// TaskRepository persists tasks with their comments and checklists
type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	Update(ctx context.Context, t *Task) error
	// SaveAll updates the given tasks in one transaction
	SaveAll(ctx context.Context, tasks []*Task) error
	// ApplyGeneration removes and creates tasks in one transaction
	ApplyGeneration(ctx context.Context, plan GenerationPlan) error
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	// FindByStore is ordered by due date, then order
	FindByStore(ctx context.Context, storeID uuid.UUID) ([]*Task, error)

	AddComment(ctx context.Context, c *TaskComment) error
	ListComments(ctx context.Context, taskID uuid.UUID) ([]*TaskComment, error)
	AddChecklistItem(ctx context.Context, item *ChecklistItem) error
	FindChecklistItem(ctx context.Context, taskID, itemID uuid.UUID) (*ChecklistItem, error)
	UpdateChecklistItem(ctx context.Context, item *ChecklistItem) error
	ListChecklist(ctx context.Context, taskID uuid.UUID) ([]*ChecklistItem, error)
}

// FileRepository persists store file metadata
type FileRepository interface {
	Create(ctx context.Context, f *StoreFile) error
	// FindByStore is ordered by upload time, newest first
	FindByStore(ctx context.Context, storeID uuid.UUID) ([]*StoreFile, error)
}
