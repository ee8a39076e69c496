package launch

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/shared"
)

// TaskStatus is the progress state of a task
type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "NOT_STARTED"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
	TaskStatusBlocked    TaskStatus = "BLOCKED"
)

// TaskPriority ranks tasks
type TaskPriority string

const (
	PriorityLow      TaskPriority = "LOW"
	PriorityMedium   TaskPriority = "MEDIUM"
	PriorityHigh     TaskPriority = "HIGH"
	PriorityCritical TaskPriority = "CRITICAL"
)

// SourceType tells whether a task was generated or added by hand
type SourceType string

const (
	SourceTemplate SourceType = "TEMPLATE"
	SourceManual   SourceType = "MANUAL"
)

// ErrTaskLocked is returned when a locked task is asked to move
var ErrTaskLocked = shared.NewDomainError("TASK_LOCKED", "Task is locked")

func (s TaskStatus) isValid() bool {
	switch s {
	case TaskStatusNotStarted, TaskStatusInProgress, TaskStatusDone, TaskStatusBlocked:
		return true
	}
	return false
}

func (p TaskPriority) isValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Task is a dated unit of launch work for one store
type Task struct {
	shared.BaseAggregateRoot
	StoreID        uuid.UUID
	TemplateTaskID *uuid.UUID
	Phase          string
	Title          string
	Description    string
	Status         TaskStatus
	Priority       TaskPriority
	StartDate      time.Time
	DueDate        time.Time
	AssigneeID     *uuid.UUID
	IsMilestone    bool
	SourceType     SourceType
	ManualOverride bool
	Locked         bool
	CalendarRule   WorkdayRule
	Order          int
}

// TaskSnapshot is the audited JSON form of a task
type TaskSnapshot struct {
	ID             uuid.UUID    `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description,omitempty"`
	Status         TaskStatus   `json:"status"`
	Priority       TaskPriority `json:"priority"`
	StartDate      string       `json:"startDate"`
	DueDate        string       `json:"dueDate"`
	AssigneeID     *uuid.UUID   `json:"assigneeId,omitempty"`
	ManualOverride bool         `json:"manualOverride"`
	Locked         bool         `json:"locked"`
}

// ManualTaskInput describes a task added by hand
type ManualTaskInput struct {
	Phase       string
	Title       string
	Description string
	Priority    TaskPriority
	StartDate   *time.Time
	DueDate     time.Time
	AssigneeID  *uuid.UUID
	IsMilestone bool
	Order       int
}

// NewManualTask creates a MANUAL task. The start date defaults to the due date.
func NewManualTask(storeID uuid.UUID, in ManualTaskInput) (*Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, shared.InvalidInput("Task title is required")
	}
	if in.DueDate.IsZero() {
		return nil, shared.InvalidInput("Due date is required")
	}
	priority := in.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.isValid() {
		return nil, shared.InvalidInput("Invalid priority: " + string(priority))
	}
	due := DateOnly(in.DueDate)
	start := due
	if in.StartDate != nil {
		start = DateOnly(*in.StartDate)
	}
	if start.After(due) {
		return nil, shared.InvalidInput("Start date must be on or before due date")
	}
	return &Task{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StoreID:           storeID,
		Phase:             strings.TrimSpace(in.Phase),
		Title:             title,
		Description:       in.Description,
		Status:            TaskStatusNotStarted,
		Priority:          priority,
		StartDate:         start,
		DueDate:           due,
		AssigneeID:        in.AssigneeID,
		IsMilestone:       in.IsMilestone,
		SourceType:        SourceManual,
		CalendarRule:      WorkdayCalendarDays,
		Order:             in.Order,
	}, nil
}

// NewTaskFromTemplate materializes a template task against an open date
func NewTaskFromTemplate(storeID uuid.UUID, tt *TemplateTask, openDate time.Time) *Task {
	start, due := tt.Schedule(openDate)
	ttID := tt.ID
	return &Task{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StoreID:           storeID,
		TemplateTaskID:    &ttID,
		Phase:             tt.Phase,
		Title:             tt.Title,
		Description:       tt.Description,
		Status:            TaskStatusNotStarted,
		Priority:          PriorityMedium,
		StartDate:         start,
		DueDate:           due,
		IsMilestone:       tt.IsMilestone,
		SourceType:        SourceTemplate,
		CalendarRule:      tt.WorkdayRule,
		Order:             tt.Order,
	}
}

// TaskUpdate carries optional task changes
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *TaskPriority
	AssigneeID  *uuid.UUID
	// ClearAssignee unassigns the task when AssigneeID is nil
	ClearAssignee bool
	Locked        *bool
}

// Update applies the set fields and records an audited change
func (t *Task) Update(u TaskUpdate, actor uuid.UUID) error {
	before := t.Snapshot()
	if u.Title != nil {
		title := strings.TrimSpace(*u.Title)
		if title == "" {
			return shared.InvalidInput("Task title is required")
		}
		t.Title = title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Status != nil {
		if !u.Status.isValid() {
			return shared.InvalidInput("Invalid status: " + string(*u.Status))
		}
		t.Status = *u.Status
	}
	if u.Priority != nil {
		if !u.Priority.isValid() {
			return shared.InvalidInput("Invalid priority: " + string(*u.Priority))
		}
		t.Priority = *u.Priority
	}
	if u.AssigneeID != nil {
		id := *u.AssigneeID
		t.AssigneeID = &id
	} else if u.ClearAssignee {
		t.AssigneeID = nil
	}
	if u.Locked != nil {
		t.Locked = *u.Locked
	}
	t.Touch()
	t.IncrementVersion()
	t.AddDomainEvent(NewTaskUpdatedEvent(t, actor, before))
	return nil
}

// Shift moves both dates by a calendar delta, keeping business-day tasks
// off weekends. Locked tasks do not move.
func (t *Task) Shift(days int) bool {
	if t.Locked || days == 0 {
		return false
	}
	t.StartDate = ShiftDate(t.StartDate, days, t.CalendarRule)
	t.DueDate = ShiftDate(t.DueDate, days, t.CalendarRule)
	t.Touch()
	return true
}

// MoveTo sets explicit dates and flags the task as manually overridden
func (t *Task) MoveTo(start, due time.Time) error {
	if t.Locked {
		return ErrTaskLocked
	}
	start, due = DateOnly(start), DateOnly(due)
	if start.After(due) {
		return shared.InvalidInput("Start date must be on or before due date")
	}
	t.StartDate = start
	t.DueDate = due
	t.ManualOverride = true
	t.Touch()
	t.IncrementVersion()
	return nil
}

// Snapshot returns the audited view of the task
func (t *Task) Snapshot() TaskSnapshot {
	return TaskSnapshot{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Status:         t.Status,
		Priority:       t.Priority,
		StartDate:      t.StartDate.Format(DateLayout),
		DueDate:        t.DueDate.Format(DateLayout),
		AssigneeID:     t.AssigneeID,
		ManualOverride: t.ManualOverride,
		Locked:         t.Locked,
	}
}

// TaskComment is a note left on a task
type TaskComment struct {
	ID        uuid.UUID
	TaskID    uuid.UUID
	UserID    uuid.UUID
	Content   string
	CreatedAt time.Time
}

// NewTaskComment creates a comment
func NewTaskComment(taskID, userID uuid.UUID, content string) (*TaskComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, shared.InvalidInput("Content is required")
	}
	return &TaskComment{ID: uuid.New(), TaskID: taskID, UserID: userID, Content: content, CreatedAt: time.Now()}, nil
}

// ChecklistItem is a sub-step of a task
type ChecklistItem struct {
	ID          uuid.UUID
	TaskID      uuid.UUID
	Content     string
	IsCompleted bool
	Order       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewChecklistItem creates an open checklist item
func NewChecklistItem(taskID uuid.UUID, content string, order int) (*ChecklistItem, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, shared.InvalidInput("Content is required")
	}
	now := time.Now()
	return &ChecklistItem{ID: uuid.New(), TaskID: taskID, Content: content, Order: order, CreatedAt: now, UpdatedAt: now}, nil
}

// SetCompleted toggles completion
func (c *ChecklistItem) SetCompleted(done bool) {
	c.IsCompleted = done
	c.UpdatedAt = time.Now()
}
