package launch

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/launch"
	"github.com/storelaunch/backend/internal/domain/shared"
	"github.com/storelaunch/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// GenerateResult summarizes a template materialization
type GenerateResult struct {
	Created int
	Removed int
	Tasks   []*launch.Task
}

// RescheduleInput moves a task and optionally its siblings
type RescheduleInput struct {
	TaskID    uuid.UUID
	StartDate *time.Time
	DueDate   *time.Time
	Policy    string
}

// ChecklistInput adds a checklist item. Without an order the item goes last.
type ChecklistInput struct {
	Content string
	Order   *int
}

// TaskService manages store tasks
type TaskService struct {
	tasks     launch.TaskRepository
	stores    launch.StoreRepository
	templates launch.TemplateRepository
	publisher shared.EventPublisher
	metrics   *telemetry.LaunchMetrics
	logger    *zap.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(
	tasks launch.TaskRepository,
	stores launch.StoreRepository,
	templates launch.TemplateRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *TaskService {
	return &TaskService{
		tasks:     tasks,
		stores:    stores,
		templates: templates,
		publisher: publisher,
		logger:    logger,
	}
}

// SetMetrics attaches business counters
func (s *TaskService) SetMetrics(m *telemetry.LaunchMetrics) {
	s.metrics = m
}

// Generate materializes a launch template against the store's current
// planned open date.
func (s *TaskService) Generate(ctx context.Context, storeID, templateID uuid.UUID) (*GenerateResult, error) {
	store, err := findStore(ctx, s.stores, storeID)
	if err != nil {
		return nil, err
	}
	if store.PlannedOpenDate == nil {
		return nil, shared.InvalidInput("Store has no planned open date")
	}
	tpl, err := findTemplate(ctx, s.templates, templateID)
	if err != nil {
		return nil, err
	}
	existing, err := s.tasks.FindByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	plan := launch.PlanGeneration(storeID, tpl, store.PlannedOpenDate.Date, existing)
	if err := s.tasks.ApplyGeneration(ctx, plan); err != nil {
		return nil, err
	}
	s.metrics.TasksGenerated(ctx, len(plan.Create))
	s.logger.Info("Tasks generated",
		zap.String("store_id", storeID.String()),
		zap.String("template_id", templateID.String()),
		zap.Int("created", len(plan.Create)),
		zap.Int("removed", len(plan.Remove)),
	)

	tasks, err := s.tasks.FindByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return &GenerateResult{Created: len(plan.Create), Removed: len(plan.Remove), Tasks: tasks}, nil
}

// List returns a store's tasks by due date, then order
func (s *TaskService) List(ctx context.Context, storeID uuid.UUID) ([]*launch.Task, error) {
	if _, err := findStore(ctx, s.stores, storeID); err != nil {
		return nil, err
	}
	return s.tasks.FindByStore(ctx, storeID)
}

// Get returns one task
func (s *TaskService) Get(ctx context.Context, id uuid.UUID) (*launch.Task, error) {
	return s.find(ctx, id)
}

// Create adds a MANUAL task to a store
func (s *TaskService) Create(ctx context.Context, storeID uuid.UUID, in launch.ManualTaskInput) (*launch.Task, error) {
	if _, err := findStore(ctx, s.stores, storeID); err != nil {
		return nil, err
	}
	task, err := launch.NewManualTask(storeID, in)
	if err != nil {
		s.logger.Warn("Task rejected", zap.Error(err))
		return nil, err
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	s.logger.Info("Manual task created",
		zap.String("store_id", storeID.String()),
		zap.String("task_id", task.ID.String()),
	)
	return task, nil
}

// Update applies a partial change and records it in the audit trail
func (s *TaskService) Update(ctx context.Context, id uuid.UUID, u launch.TaskUpdate, actor uuid.UUID) (*launch.Task, error) {
	task, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := task.Update(u, actor); err != nil {
		s.logger.Warn("Task update rejected", zap.Error(err))
		return nil, err
	}
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	if err := s.publisher.Publish(ctx, task.GetDomainEvents()...); err != nil {
		s.logger.Error("Failed to publish task events", zap.String("task_id", id.String()), zap.Error(err))
	}
	task.ClearDomainEvents()
	return task, nil
}

// Reschedule moves a task and cascades to the store's other tasks.
// It returns every moved task, the target first.
func (s *TaskService) Reschedule(ctx context.Context, in RescheduleInput) ([]*launch.Task, error) {
	policy, err := launch.ParsePolicy(in.Policy, launch.PolicyThisOnly)
	if err != nil {
		return nil, err
	}
	task, err := s.find(ctx, in.TaskID)
	if err != nil {
		return nil, err
	}
	siblings, err := s.tasks.FindByStore(ctx, task.StoreID)
	if err != nil {
		return nil, err
	}

	changed, err := launch.Reschedule(task, siblings, launch.RescheduleRequest{
		StartDate: in.StartDate,
		DueDate:   in.DueDate,
		Policy:    policy,
	})
	if err != nil {
		s.logger.Warn("Reschedule rejected", zap.String("task_id", task.ID.String()), zap.Error(err))
		return nil, err
	}
	if err := s.tasks.SaveAll(ctx, changed); err != nil {
		return nil, err
	}
	s.metrics.TasksRescheduled(ctx, string(policy), len(changed))
	s.logger.Info("Task rescheduled",
		zap.String("task_id", task.ID.String()),
		zap.String("policy", string(policy)),
		zap.Int("moved", len(changed)),
	)
	return changed, nil
}

// AddComment leaves a comment on a task
func (s *TaskService) AddComment(ctx context.Context, taskID, userID uuid.UUID, content string) (*launch.TaskComment, error) {
	if _, err := s.find(ctx, taskID); err != nil {
		return nil, err
	}
	c, err := launch.NewTaskComment(taskID, userID, content)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.AddComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Comments lists a task's comments, oldest first
func (s *TaskService) Comments(ctx context.Context, taskID uuid.UUID) ([]*launch.TaskComment, error) {
	if _, err := s.find(ctx, taskID); err != nil {
		return nil, err
	}
	return s.tasks.ListComments(ctx, taskID)
}

// AddChecklistItem appends an item to a task's checklist
func (s *TaskService) AddChecklistItem(ctx context.Context, taskID uuid.UUID, in ChecklistInput) (*launch.ChecklistItem, error) {
	if _, err := s.find(ctx, taskID); err != nil {
		return nil, err
	}
	order := 0
	if in.Order != nil {
		order = *in.Order
	} else {
		items, err := s.tasks.ListChecklist(ctx, taskID)
		if err != nil {
			return nil, err
		}
		order = len(items)
	}
	item, err := launch.NewChecklistItem(taskID, in.Content, order)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.AddChecklistItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Checklist lists a task's checklist in order
func (s *TaskService) Checklist(ctx context.Context, taskID uuid.UUID) ([]*launch.ChecklistItem, error) {
	if _, err := s.find(ctx, taskID); err != nil {
		return nil, err
	}
	return s.tasks.ListChecklist(ctx, taskID)
}

// SetChecklistItem marks an item done or open
func (s *TaskService) SetChecklistItem(ctx context.Context, taskID, itemID uuid.UUID, done bool) (*launch.ChecklistItem, error) {
	item, err := s.tasks.FindChecklistItem(ctx, taskID, itemID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Checklist item not found")
		}
		return nil, err
	}
	item.SetCompleted(done)
	if err := s.tasks.UpdateChecklistItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *TaskService) find(ctx context.Context, id uuid.UUID) (*launch.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Task not found")
		}
		return nil, err
	}
	return task, nil
}
