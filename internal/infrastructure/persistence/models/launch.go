package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/launch"
)

// StoreModel is the persistence model for stores
type StoreModel struct {
	AggregateModel
	TempName     string             `gorm:"type:varchar(200)"`
	OfficialName string             `gorm:"type:varchar(200)"`
	Country      string             `gorm:"type:varchar(8);not null;index"`
	City         string             `gorm:"type:varchar(100)"`
	Address      string             `gorm:"type:varchar(500)"`
	Timezone     string             `gorm:"type:varchar(64);not null"`
	StorePhone   string             `gorm:"type:varchar(50)"`
	StoreEmail   string             `gorm:"type:varchar(200)"`
	OwnerName    string             `gorm:"type:varchar(200)"`
	OwnerPhone   string             `gorm:"type:varchar(50)"`
	OwnerEmail   string             `gorm:"type:varchar(200)"`
	OwnerAddress string             `gorm:"type:varchar(500)"`
	Status       launch.StoreStatus `gorm:"type:varchar(20);not null;default:'PLANNING'"`
	CreatedBy    *uuid.UUID         `gorm:"type:varchar(36)"`
}

// TableName returns the table name for GORM
func (StoreModel) TableName() string {
	return "stores"
}

// ToDomain converts the persistence model to a domain store
func (m *StoreModel) ToDomain() *launch.Store {
	return &launch.Store{
		BaseAggregateRoot: m.ToAggregateRoot(),
		TempName:          m.TempName,
		OfficialName:      m.OfficialName,
		Country:           m.Country,
		City:              m.City,
		Address:           m.Address,
		Timezone:          m.Timezone,
		StorePhone:        m.StorePhone,
		StoreEmail:        m.StoreEmail,
		OwnerName:         m.OwnerName,
		OwnerPhone:        m.OwnerPhone,
		OwnerEmail:        m.OwnerEmail,
		OwnerAddress:      m.OwnerAddress,
		Status:            m.Status,
		CreatedBy:         m.CreatedBy,
	}
}

// StoreModelFromDomain creates a persistence model from a domain store
func StoreModelFromDomain(s *launch.Store) *StoreModel {
	m := &StoreModel{
		TempName:     s.TempName,
		OfficialName: s.OfficialName,
		Country:      s.Country,
		City:         s.City,
		Address:      s.Address,
		Timezone:     s.Timezone,
		StorePhone:   s.StorePhone,
		StoreEmail:   s.StoreEmail,
		OwnerName:    s.OwnerName,
		OwnerPhone:   s.OwnerPhone,
		OwnerEmail:   s.OwnerEmail,
		OwnerAddress: s.OwnerAddress,
		Status:       s.Status,
		CreatedBy:    s.CreatedBy,
	}
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	return m
}

// PlannedOpenDateModel is the persistence model for planned open dates
type PlannedOpenDateModel struct {
	ID        uuid.UUID  `gorm:"type:varchar(36);primaryKey"`
	StoreID   uuid.UUID  `gorm:"type:varchar(36);not null;index"`
	Date      time.Time  `gorm:"not null"`
	Reason    string     `gorm:"type:text"`
	ChangedBy *uuid.UUID `gorm:"type:varchar(36)"`
	CreatedAt time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (PlannedOpenDateModel) TableName() string {
	return "planned_open_dates"
}

// ToDomain converts the persistence model to a domain planned date
func (m *PlannedOpenDateModel) ToDomain() *launch.PlannedOpenDate {
	return &launch.PlannedOpenDate{
		ID:        m.ID,
		StoreID:   m.StoreID,
		Date:      launch.DateOnly(m.Date),
		Reason:    m.Reason,
		ChangedBy: m.ChangedBy,
		CreatedAt: m.CreatedAt,
	}
}

// PlannedOpenDateModelFromDomain creates a persistence model from a domain planned date
func PlannedOpenDateModelFromDomain(p *launch.PlannedOpenDate) *PlannedOpenDateModel {
	return &PlannedOpenDateModel{
		ID:        p.ID,
		StoreID:   p.StoreID,
		Date:      p.Date,
		Reason:    p.Reason,
		ChangedBy: p.ChangedBy,
		CreatedAt: p.CreatedAt,
	}
}

// LaunchTemplateModel is the persistence model for launch templates
type LaunchTemplateModel struct {
	BaseModel
	Name     string `gorm:"type:varchar(200);not null"`
	Country  string `gorm:"type:varchar(8)"`
	IsActive bool   `gorm:"not null"`

	Tasks []TemplateTaskModel `gorm:"foreignKey:TemplateID"`
}

// TableName returns the table name for GORM
func (LaunchTemplateModel) TableName() string {
	return "launch_templates"
}

// ToDomain converts the persistence model to a domain template
func (m *LaunchTemplateModel) ToDomain() *launch.LaunchTemplate {
	t := &launch.LaunchTemplate{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Country:    m.Country,
		IsActive:   m.IsActive,
		Tasks:      make([]*launch.TemplateTask, 0, len(m.Tasks)),
	}
	for i := range m.Tasks {
		t.Tasks = append(t.Tasks, m.Tasks[i].ToDomain())
	}
	t.SortTasks()
	return t
}

// LaunchTemplateModelFromDomain creates a persistence model with its tasks
func LaunchTemplateModelFromDomain(t *launch.LaunchTemplate) *LaunchTemplateModel {
	m := &LaunchTemplateModel{
		Name:     t.Name,
		Country:  t.Country,
		IsActive: t.IsActive,
		Tasks:    make([]TemplateTaskModel, 0, len(t.Tasks)),
	}
	m.FromDomainBaseEntity(t.BaseEntity)
	for _, tt := range t.Tasks {
		m.Tasks = append(m.Tasks, TemplateTaskModel{
			ID:              tt.ID,
			TemplateID:      t.ID,
			Phase:           tt.Phase,
			Title:           tt.Title,
			Description:     tt.Description,
			AnchorEvent:     tt.AnchorEvent,
			OffsetDays:      tt.OffsetDays,
			DurationDays:    tt.DurationDays,
			WorkdayRule:     tt.WorkdayRule,
			IsMilestone:     tt.IsMilestone,
			RoleResponsible: tt.RoleResponsible,
			Order:           tt.Order,
		})
	}
	return m
}

// TemplateTaskModel is the persistence model for template tasks
type TemplateTaskModel struct {
	ID              uuid.UUID          `gorm:"type:varchar(36);primaryKey"`
	TemplateID      uuid.UUID          `gorm:"type:varchar(36);not null;index"`
	Phase           string             `gorm:"type:varchar(100)"`
	Title           string             `gorm:"type:varchar(300);not null"`
	Description     string             `gorm:"type:text"`
	AnchorEvent     string             `gorm:"type:varchar(30);not null"`
	OffsetDays      int                `gorm:"not null;default:0"`
	DurationDays    int                `gorm:"not null;default:1"`
	WorkdayRule     launch.WorkdayRule `gorm:"type:varchar(20);not null"`
	IsMilestone     bool               `gorm:"not null"`
	RoleResponsible string             `gorm:"type:varchar(50)"`
	Order           int                `gorm:"column:sort_order;not null;default:0"`
}

// TableName returns the table name for GORM
func (TemplateTaskModel) TableName() string {
	return "template_tasks"
}

// ToDomain converts the persistence model to a domain template task
func (m *TemplateTaskModel) ToDomain() *launch.TemplateTask {
	return &launch.TemplateTask{
		ID:              m.ID,
		TemplateID:      m.TemplateID,
		Phase:           m.Phase,
		Title:           m.Title,
		Description:     m.Description,
		AnchorEvent:     m.AnchorEvent,
		OffsetDays:      m.OffsetDays,
		DurationDays:    m.DurationDays,
		WorkdayRule:     m.WorkdayRule,
		IsMilestone:     m.IsMilestone,
		RoleResponsible: m.RoleResponsible,
		Order:           m.Order,
	}
}

// TaskModel is the persistence model for store tasks
type TaskModel struct {
	AggregateModel
	StoreID        uuid.UUID           `gorm:"type:varchar(36);not null;index"`
	TemplateTaskID *uuid.UUID          `gorm:"type:varchar(36);index"`
	Phase          string              `gorm:"type:varchar(100)"`
	Title          string              `gorm:"type:varchar(300);not null"`
	Description    string              `gorm:"type:text"`
	Status         launch.TaskStatus   `gorm:"type:varchar(20);not null"`
	Priority       launch.TaskPriority `gorm:"type:varchar(20);not null"`
	StartDate      time.Time           `gorm:"not null"`
	DueDate        time.Time           `gorm:"not null;index"`
	AssigneeID     *uuid.UUID          `gorm:"type:varchar(36);index"`
	IsMilestone    bool                `gorm:"not null"`
	SourceType     launch.SourceType   `gorm:"type:varchar(20);not null"`
	ManualOverride bool                `gorm:"not null"`
	Locked         bool                `gorm:"not null"`
	CalendarRule   launch.WorkdayRule  `gorm:"type:varchar(20);not null"`
	Order          int                 `gorm:"column:sort_order;not null;default:0"`
}

// TableName returns the table name for GORM
func (TaskModel) TableName() string {
	return "tasks"
}

// ToDomain converts the persistence model to a domain task
func (m *TaskModel) ToDomain() *launch.Task {
	return &launch.Task{
		BaseAggregateRoot: m.ToAggregateRoot(),
		StoreID:           m.StoreID,
		TemplateTaskID:    m.TemplateTaskID,
		Phase:             m.Phase,
		Title:             m.Title,
		Description:       m.Description,
		Status:            m.Status,
		Priority:          m.Priority,
		StartDate:         launch.DateOnly(m.StartDate),
		DueDate:           launch.DateOnly(m.DueDate),
		AssigneeID:        m.AssigneeID,
		IsMilestone:       m.IsMilestone,
		SourceType:        m.SourceType,
		ManualOverride:    m.ManualOverride,
		Locked:            m.Locked,
		CalendarRule:      m.CalendarRule,
		Order:             m.Order,
	}
}

// TaskModelFromDomain creates a persistence model from a domain task
func TaskModelFromDomain(t *launch.Task) *TaskModel {
	m := &TaskModel{
		StoreID:        t.StoreID,
		TemplateTaskID: t.TemplateTaskID,
		Phase:          t.Phase,
		Title:          t.Title,
		Description:    t.Description,
		Status:         t.Status,
		Priority:       t.Priority,
		StartDate:      t.StartDate,
		DueDate:        t.DueDate,
		AssigneeID:     t.AssigneeID,
		IsMilestone:    t.IsMilestone,
		SourceType:     t.SourceType,
		ManualOverride: t.ManualOverride,
		Locked:         t.Locked,
		CalendarRule:   t.CalendarRule,
		Order:          t.Order,
	}
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	return m
}

// TaskCommentModel is the persistence model for task comments
type TaskCommentModel struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	TaskID    uuid.UUID `gorm:"type:varchar(36);not null;index"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TaskCommentModel) TableName() string {
	return "task_comments"
}

// ToDomain converts the persistence model to a domain comment
func (m *TaskCommentModel) ToDomain() *launch.TaskComment {
	return &launch.TaskComment{ID: m.ID, TaskID: m.TaskID, UserID: m.UserID, Content: m.Content, CreatedAt: m.CreatedAt}
}

// TaskCommentModelFromDomain creates a persistence model from a domain comment
func TaskCommentModelFromDomain(c *launch.TaskComment) *TaskCommentModel {
	return &TaskCommentModel{ID: c.ID, TaskID: c.TaskID, UserID: c.UserID, Content: c.Content, CreatedAt: c.CreatedAt}
}

// TaskChecklistItemModel is the persistence model for checklist items
type TaskChecklistItemModel struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	TaskID      uuid.UUID `gorm:"type:varchar(36);not null;index"`
	Content     string    `gorm:"type:text;not null"`
	IsCompleted bool      `gorm:"not null"`
	Order       int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TaskChecklistItemModel) TableName() string {
	return "task_checklist_items"
}

// ToDomain converts the persistence model to a domain checklist item
func (m *TaskChecklistItemModel) ToDomain() *launch.ChecklistItem {
	return &launch.ChecklistItem{
		ID:          m.ID,
		TaskID:      m.TaskID,
		Content:     m.Content,
		IsCompleted: m.IsCompleted,
		Order:       m.Order,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// TaskChecklistItemModelFromDomain creates a persistence model from a domain checklist item
func TaskChecklistItemModelFromDomain(c *launch.ChecklistItem) *TaskChecklistItemModel {
	return &TaskChecklistItemModel{
		ID:          c.ID,
		TaskID:      c.TaskID,
		Content:     c.Content,
		IsCompleted: c.IsCompleted,
		Order:       c.Order,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// StoreFileModel is the persistence model for store file metadata
type StoreFileModel struct {
	ID          uuid.UUID  `gorm:"type:varchar(36);primaryKey"`
	StoreID     uuid.UUID  `gorm:"type:varchar(36);not null;index"`
	FileName    string     `gorm:"type:varchar(255);not null"`
	ContentType string     `gorm:"type:varchar(100);not null"`
	Size        int64      `gorm:"not null"`
	StorageKey  string     `gorm:"type:varchar(500);not null;uniqueIndex"`
	UploadedBy  *uuid.UUID `gorm:"type:varchar(36)"`
	CreatedAt   time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StoreFileModel) TableName() string {
	return "store_files"
}

// ToDomain converts the persistence model to a domain store file
func (m *StoreFileModel) ToDomain() *launch.StoreFile {
	return &launch.StoreFile{
		ID:          m.ID,
		StoreID:     m.StoreID,
		FileName:    m.FileName,
		ContentType: m.ContentType,
		Size:        m.Size,
		StorageKey:  m.StorageKey,
		UploadedBy:  m.UploadedBy,
		CreatedAt:   m.CreatedAt,
	}
}

// StoreFileModelFromDomain creates a persistence model from a domain store file
func StoreFileModelFromDomain(f *launch.StoreFile) *StoreFileModel {
	return &StoreFileModel{
		ID:          f.ID,
		StoreID:     f.StoreID,
		FileName:    f.FileName,
		ContentType: f.ContentType,
		Size:        f.Size,
		StorageKey:  f.StorageKey,
		UploadedBy:  f.UploadedBy,
		CreatedAt:   f.CreatedAt,
	}
}
