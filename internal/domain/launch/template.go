package launch

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/shared"
)

// WorkdayRule controls how day offsets are counted
type WorkdayRule string

const (
	WorkdayCalendarDays WorkdayRule = "CALENDAR_DAYS"
	WorkdayBusinessDays WorkdayRule = "BUSINESS_DAYS"
)

// AnchorOpenDate anchors template tasks on the planned open date
const AnchorOpenDate = "OPEN_DATE"

// LaunchTemplate is a reusable checklist of launch tasks
type LaunchTemplate struct {
	shared.BaseEntity
	Name     string
	Country  string
	IsActive bool
	Tasks    []*TemplateTask
}

// TemplateTask is a task definition relative to an anchor date
type TemplateTask struct {
	ID              uuid.UUID
	TemplateID      uuid.UUID
	Phase           string
	Title           string
	Description     string
	AnchorEvent     string
	OffsetDays      int
	DurationDays    int
	WorkdayRule     WorkdayRule
	IsMilestone     bool
	RoleResponsible string
	Order           int
}

// TemplateTaskInput describes a template task before it is stored
type TemplateTaskInput struct {
	Phase           string
	Title           string
	Description     string
	OffsetDays      int
	DurationDays    int
	WorkdayRule     WorkdayRule
	IsMilestone     bool
	RoleResponsible string
	Order           *int
}

// NewLaunchTemplate creates an active template with its tasks
func NewLaunchTemplate(name, country string, tasks []TemplateTaskInput) (*LaunchTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.InvalidInput("Template name is required")
	}
	tpl := &LaunchTemplate{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Country:    strings.ToUpper(strings.TrimSpace(country)),
		IsActive:   true,
		Tasks:      make([]*TemplateTask, 0, len(tasks)),
	}
	for i, in := range tasks {
		if strings.TrimSpace(in.Title) == "" {
			return nil, shared.InvalidInput("Task title is required")
		}
		rule := in.WorkdayRule
		if rule == "" {
			rule = WorkdayCalendarDays
		}
		if rule != WorkdayCalendarDays && rule != WorkdayBusinessDays {
			return nil, shared.InvalidInput("Invalid workday rule: " + string(rule))
		}
		duration := in.DurationDays
		if duration < 1 {
			duration = 1
		}
		order := i
		if in.Order != nil {
			order = *in.Order
		}
		tpl.Tasks = append(tpl.Tasks, &TemplateTask{
			ID:              uuid.New(),
			TemplateID:      tpl.ID,
			Phase:           strings.TrimSpace(in.Phase),
			Title:           strings.TrimSpace(in.Title),
			Description:     in.Description,
			AnchorEvent:     AnchorOpenDate,
			OffsetDays:      in.OffsetDays,
			DurationDays:    duration,
			WorkdayRule:     rule,
			IsMilestone:     in.IsMilestone,
			RoleResponsible: in.RoleResponsible,
			Order:           order,
		})
	}
	tpl.SortTasks()
	return tpl, nil
}

// SortTasks orders tasks by their order field
func (t *LaunchTemplate) SortTasks() {
	sort.SliceStable(t.Tasks, func(i, j int) bool { return t.Tasks[i].Order < t.Tasks[j].Order })
}

// Schedule returns the start and due dates of the task for an open date
func (tt *TemplateTask) Schedule(openDate time.Time) (start, due time.Time) {
	due = AddDays(DateOnly(openDate), tt.OffsetDays, tt.WorkdayRule)
	duration := tt.DurationDays
	if duration < 1 {
		duration = 1
	}
	start = AddDays(due, -(duration - 1), tt.WorkdayRule)
	return start, due
}
