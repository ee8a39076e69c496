package handler

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	launchapp "github.com/storelaunch/backend/internal/application/launch"
	"github.com/storelaunch/backend/internal/domain/audit"
	"github.com/storelaunch/backend/internal/domain/launch"
	"github.com/storelaunch/backend/internal/domain/shared"
)

// =====================
// Launch Request DTOs
// =====================

// StoreRequest creates or updates a store
type StoreRequest struct {
	TempName        string `json:"tempName" binding:"max=200"`
	OfficialName    string `json:"officialName" binding:"max=200"`
	Country         string `json:"country" binding:"max=10"`
	City            string `json:"city" binding:"max=100"`
	Address         string `json:"address"`
	Timezone        string `json:"timezone" binding:"max=64"`
	StorePhone      string `json:"storePhone" binding:"max=50"`
	StoreEmail      string `json:"storeEmail" binding:"omitempty,email"`
	OwnerName       string `json:"ownerName" binding:"max=200"`
	OwnerPhone      string `json:"ownerPhone" binding:"max=50"`
	OwnerEmail      string `json:"ownerEmail" binding:"omitempty,email"`
	OwnerAddress    string `json:"ownerAddress"`
	Status          string `json:"status" binding:"omitempty,oneof=PLANNING IN_PROGRESS OPENED CANCELLED"`
	PlannedOpenDate string `json:"plannedOpenDate"`
	OpenDateReason  string `json:"openDateReason"`
}

func (r StoreRequest) toInput() launch.StoreInput {
	return launch.StoreInput{
		TempName:     r.TempName,
		OfficialName: r.OfficialName,
		Country:      r.Country,
		City:         r.City,
		Address:      r.Address,
		Timezone:     r.Timezone,
		StorePhone:   r.StorePhone,
		StoreEmail:   r.StoreEmail,
		OwnerName:    r.OwnerName,
		OwnerPhone:   r.OwnerPhone,
		OwnerEmail:   r.OwnerEmail,
		OwnerAddress: r.OwnerAddress,
		Status:       launch.StoreStatus(r.Status),
	}
}

// PlannedDateRequest appends a planned open date
type PlannedDateRequest struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason"`
	Policy string `json:"policy"`
}

// LaunchTemplateTaskRequest is one task of a launch template
type LaunchTemplateTaskRequest struct {
	Phase           string `json:"phase"`
	Title           string `json:"title" binding:"required,max=200"`
	Description     string `json:"description"`
	OffsetDays      int    `json:"offsetDays"`
	DurationDays    int    `json:"durationDays"`
	WorkdayRule     string `json:"workdayRule" binding:"omitempty,oneof=CALENDAR_DAYS BUSINESS_DAYS"`
	IsMilestone     bool   `json:"isMilestone"`
	RoleResponsible string `json:"roleResponsible"`
	Order           *int   `json:"order"`
}

func (r LaunchTemplateTaskRequest) toInput() launch.TemplateTaskInput {
	return launch.TemplateTaskInput{
		Phase:           r.Phase,
		Title:           r.Title,
		Description:     r.Description,
		OffsetDays:      r.OffsetDays,
		DurationDays:    r.DurationDays,
		WorkdayRule:     launch.WorkdayRule(r.WorkdayRule),
		IsMilestone:     r.IsMilestone,
		RoleResponsible: r.RoleResponsible,
		Order:           r.Order,
	}
}

// LaunchTemplateRequest creates a launch template
type LaunchTemplateRequest struct {
	Name    string                      `json:"name" binding:"required,max=200"`
	Country string                      `json:"country"`
	Tasks   []LaunchTemplateTaskRequest `json:"tasks" binding:"dive"`
}

// GenerateTasksRequest selects the template to materialize
type GenerateTasksRequest struct {
	TemplateID uuid.UUID `json:"templateId" binding:"required"`
}

// CreateTaskRequest adds a MANUAL task
type CreateTaskRequest struct {
	Phase       string     `json:"phase"`
	Title       string     `json:"title" binding:"max=200"`
	Description string     `json:"description"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	StartDate   string     `json:"startDate"`
	DueDate     string     `json:"dueDate" binding:"required"`
	AssigneeID  *uuid.UUID `json:"assigneeId"`
	IsMilestone bool       `json:"isMilestone"`
	Order       int        `json:"order"`
}

// UpdateTaskRequest changes a task. Absent fields are left unchanged;
// an explicit null assigneeId clears the assignee.
type UpdateTaskRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Status      *string         `json:"status" binding:"omitempty,oneof=NOT_STARTED IN_PROGRESS DONE BLOCKED"`
	Priority    *string         `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	AssigneeID  json.RawMessage `json:"assigneeId"`
	Locked      *bool           `json:"locked"`
}

func (r UpdateTaskRequest) toUpdate() (launch.TaskUpdate, error) {
	u := launch.TaskUpdate{
		Title:       r.Title,
		Description: r.Description,
		Locked:      r.Locked,
	}
	if r.Status != nil {
		st := launch.TaskStatus(*r.Status)
		u.Status = &st
	}
	if r.Priority != nil {
		p := launch.TaskPriority(*r.Priority)
		u.Priority = &p
	}
	switch raw := bytes.TrimSpace(r.AssigneeID); {
	case len(raw) == 0:
	case bytes.Equal(raw, []byte("null")):
		u.ClearAssignee = true
	default:
		var id uuid.UUID
		if err := json.Unmarshal(raw, &id); err != nil {
			return u, shared.InvalidInput("Invalid assigneeId")
		}
		u.AssigneeID = &id
	}
	return u, nil
}

// RescheduleRequest moves a task
type RescheduleRequest struct {
	StartDate string `json:"startDate"`
	DueDate   string `json:"dueDate"`
	Policy    string `json:"policy"`
}

// CommentRequest adds a task comment
type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// ChecklistItemRequest adds a checklist item
type ChecklistItemRequest struct {
	Content string `json:"content" binding:"required"`
	Order   *int   `json:"order"`
}

// ChecklistToggleRequest marks a checklist item done or not
type ChecklistToggleRequest struct {
	IsCompleted *bool `json:"isCompleted" binding:"required"`
}

// =====================
// Launch Response DTOs
// =====================

// PlannedOpenDateResponse is one entry of a store's date history
type PlannedOpenDateResponse struct {
	ID        uuid.UUID  `json:"id"`
	StoreID   uuid.UUID  `json:"storeId"`
	Date      string     `json:"date"`
	Reason    string     `json:"reason"`
	ChangedBy *uuid.UUID `json:"changedBy"`
	CreatedAt time.Time  `json:"createdAt"`
}

// StoreResponse is a store with its current planned open date
type StoreResponse struct {
	ID              uuid.UUID                `json:"id"`
	TempName        string                   `json:"tempName"`
	OfficialName    string                   `json:"officialName"`
	Country         string                   `json:"country"`
	City            string                   `json:"city"`
	Address         string                   `json:"address"`
	Timezone        string                   `json:"timezone"`
	StorePhone      string                   `json:"storePhone"`
	StoreEmail      string                   `json:"storeEmail"`
	OwnerName       string                   `json:"ownerName"`
	OwnerPhone      string                   `json:"ownerPhone"`
	OwnerEmail      string                   `json:"ownerEmail"`
	OwnerAddress    string                   `json:"ownerAddress"`
	Status          string                   `json:"status"`
	CreatedBy       *uuid.UUID               `json:"createdBy"`
	PlannedOpenDate *PlannedOpenDateResponse `json:"plannedOpenDate"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
}

// TaskResponse is a launch task
type TaskResponse struct {
	ID             uuid.UUID  `json:"id"`
	StoreID        uuid.UUID  `json:"storeId"`
	TemplateTaskID *uuid.UUID `json:"templateTaskId"`
	Phase          string     `json:"phase"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	StartDate      string     `json:"startDate"`
	DueDate        string     `json:"dueDate"`
	AssigneeID     *uuid.UUID `json:"assigneeId"`
	IsMilestone    bool       `json:"isMilestone"`
	SourceType     string     `json:"sourceType"`
	ManualOverride bool       `json:"manualOverride"`
	Locked         bool       `json:"locked"`
	CalendarRule   string     `json:"calendarRule"`
	Order          int        `json:"order"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// PlannedDateResultResponse reports a new open date and the tasks it moved
type PlannedDateResultResponse struct {
	PlannedOpenDate PlannedOpenDateResponse `json:"plannedOpenDate"`
	DeltaDays       int                     `json:"deltaDays"`
	ShiftedTasks    []TaskResponse          `json:"shiftedTasks"`
}

// GenerateTasksResponse reports a template generation run
type GenerateTasksResponse struct {
	Created int            `json:"created"`
	Removed int            `json:"removed"`
	Tasks   []TaskResponse `json:"tasks"`
}

// LaunchTemplateTaskResponse is one task of a launch template
type LaunchTemplateTaskResponse struct {
	ID              uuid.UUID `json:"id"`
	Phase           string    `json:"phase"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	AnchorEvent     string    `json:"anchorEvent"`
	OffsetDays      int       `json:"offsetDays"`
	DurationDays    int       `json:"durationDays"`
	WorkdayRule     string    `json:"workdayRule"`
	IsMilestone     bool      `json:"isMilestone"`
	RoleResponsible string    `json:"roleResponsible"`
	Order           int       `json:"order"`
}

// LaunchTemplateResponse is a launch template
type LaunchTemplateResponse struct {
	ID        uuid.UUID                    `json:"id"`
	Name      string                       `json:"name"`
	Country   string                       `json:"country"`
	IsActive  bool                         `json:"isActive"`
	Tasks     []LaunchTemplateTaskResponse `json:"tasks"`
	CreatedAt time.Time                    `json:"createdAt"`
	UpdatedAt time.Time                    `json:"updatedAt"`
}

// CommentResponse is a task comment
type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	TaskID    uuid.UUID `json:"taskId"`
	UserID    uuid.UUID `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChecklistItemResponse is a task checklist item
type ChecklistItemResponse struct {
	ID          uuid.UUID `json:"id"`
	TaskID      uuid.UUID `json:"taskId"`
	Content     string    `json:"content"`
	IsCompleted bool      `json:"isCompleted"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// StoreFileResponse is an uploaded store document
type StoreFileResponse struct {
	ID          uuid.UUID  `json:"id"`
	StoreID     uuid.UUID  `json:"storeId"`
	FileName    string     `json:"fileName"`
	ContentType string     `json:"contentType"`
	Size        int64      `json:"size"`
	StorageKey  string     `json:"storageKey"`
	UploadedBy  *uuid.UUID `json:"uploadedBy"`
	DownloadURL string     `json:"downloadUrl"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// AuditLogResponse is one audit trail entry
type AuditLogResponse struct {
	ID         uuid.UUID  `json:"id"`
	EntityType string     `json:"entityType"`
	EntityID   uuid.UUID  `json:"entityId"`
	Action     string     `json:"action"`
	ChangedBy  *uuid.UUID `json:"changedBy"`
	BeforeJSON string     `json:"beforeJson"`
	AfterJSON  string     `json:"afterJson"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(launch.DateLayout)
}

func toPlannedOpenDateResponse(p *launch.PlannedOpenDate) PlannedOpenDateResponse {
	return PlannedOpenDateResponse{
		ID:        p.ID,
		StoreID:   p.StoreID,
		Date:      formatDate(p.Date),
		Reason:    p.Reason,
		ChangedBy: p.ChangedBy,
		CreatedAt: p.CreatedAt,
	}
}

func toStoreResponse(s *launch.Store) StoreResponse {
	resp := StoreResponse{
		ID:           s.ID,
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
		Status:       string(s.Status),
		CreatedBy:    s.CreatedBy,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
	if s.PlannedOpenDate != nil {
		p := toPlannedOpenDateResponse(s.PlannedOpenDate)
		resp.PlannedOpenDate = &p
	}
	return resp
}

func toTaskResponse(t *launch.Task) TaskResponse {
	return TaskResponse{
		ID:             t.ID,
		StoreID:        t.StoreID,
		TemplateTaskID: t.TemplateTaskID,
		Phase:          t.Phase,
		Title:          t.Title,
		Description:    t.Description,
		Status:         string(t.Status),
		Priority:       string(t.Priority),
		StartDate:      formatDate(t.StartDate),
		DueDate:        formatDate(t.DueDate),
		AssigneeID:     t.AssigneeID,
		IsMilestone:    t.IsMilestone,
		SourceType:     string(t.SourceType),
		ManualOverride: t.ManualOverride,
		Locked:         t.Locked,
		CalendarRule:   string(t.CalendarRule),
		Order:          t.Order,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func toPlannedDateResultResponse(r *launchapp.PlannedDateResult) PlannedDateResultResponse {
	return PlannedDateResultResponse{
		PlannedOpenDate: toPlannedOpenDateResponse(r.PlannedOpenDate),
		DeltaDays:       r.DeltaDays,
		ShiftedTasks:    mapSlice(r.ShiftedTasks, toTaskResponse),
	}
}

func toLaunchTemplateTaskResponse(t *launch.TemplateTask) LaunchTemplateTaskResponse {
	return LaunchTemplateTaskResponse{
		ID:              t.ID,
		Phase:           t.Phase,
		Title:           t.Title,
		Description:     t.Description,
		AnchorEvent:     t.AnchorEvent,
		OffsetDays:      t.OffsetDays,
		DurationDays:    t.DurationDays,
		WorkdayRule:     string(t.WorkdayRule),
		IsMilestone:     t.IsMilestone,
		RoleResponsible: t.RoleResponsible,
		Order:           t.Order,
	}
}

func toLaunchTemplateResponse(t *launch.LaunchTemplate) LaunchTemplateResponse {
	return LaunchTemplateResponse{
		ID:        t.ID,
		Name:      t.Name,
		Country:   t.Country,
		IsActive:  t.IsActive,
		Tasks:     mapSlice(t.Tasks, toLaunchTemplateTaskResponse),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toCommentResponse(c *launch.TaskComment) CommentResponse {
	return CommentResponse{ID: c.ID, TaskID: c.TaskID, UserID: c.UserID, Content: c.Content, CreatedAt: c.CreatedAt}
}

func toChecklistItemResponse(i *launch.ChecklistItem) ChecklistItemResponse {
	return ChecklistItemResponse{
		ID:          i.ID,
		TaskID:      i.TaskID,
		Content:     i.Content,
		IsCompleted: i.IsCompleted,
		Order:       i.Order,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func toStoreFileResponse(v *launchapp.FileView) StoreFileResponse {
	return StoreFileResponse{
		ID:          v.ID,
		StoreID:     v.StoreID,
		FileName:    v.FileName,
		ContentType: v.ContentType,
		Size:        v.Size,
		StorageKey:  v.StorageKey,
		UploadedBy:  v.UploadedBy,
		DownloadURL: v.DownloadURL,
		CreatedAt:   v.CreatedAt,
	}
}

func toAuditLogResponse(l *audit.Log) AuditLogResponse {
	return AuditLogResponse{
		ID:         l.ID,
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		Action:     l.Action,
		ChangedBy:  l.ChangedBy,
		BeforeJSON: l.BeforeJSON,
		AfterJSON:  l.AfterJSON,
		CreatedAt:  l.CreatedAt,
	}
}
