package handler

import (
	"github.com/gin-gonic/gin"
	launchapp "github.com/storelaunch/backend/internal/application/launch"
	"github.com/storelaunch/backend/internal/domain/launch"
)

// TaskHandler handles launch task requests
type TaskHandler struct {
	BaseHandler
	tasks *launchapp.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(tasks *launchapp.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Generate handles POST /stores/:id/tasks/generate
func (h *TaskHandler) Generate(c *gin.Context) {
	storeID, ok := h.PathID(c, "id", "Store not found")
	if !ok {
		return
	}
	var req GenerateTasksRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.tasks.Generate(c.Request.Context(), storeID, req.TemplateID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, GenerateTasksResponse{
		Created: result.Created,
		Removed: result.Removed,
		Tasks:   mapSlice(result.Tasks, toTaskResponse),
	})
}

// List handles GET /stores/:id/tasks
func (h *TaskHandler) List(c *gin.Context) {
	storeID, ok := h.PathID(c, "id", "Store not found")
	if !ok {
		return
	}
	tasks, err := h.tasks.List(c.Request.Context(), storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mapSlice(tasks, toTaskResponse))
}

// Create handles POST /stores/:id/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	storeID, ok := h.PathID(c, "id", "Store not found")
	if !ok {
		return
	}
	var req CreateTaskRequest
	if !h.BindJSON(c, &req) {
		return
	}
	due, err := launch.ParseDate(req.DueDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	start, err := parseOptionalDate(req.StartDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), storeID, launch.ManualTaskInput{
		Phase:       req.Phase,
		Title:       req.Title,
		Description: req.Description,
		Priority:    launch.TaskPriority(req.Priority),
		StartDate:   start,
		DueDate:     due,
		AssigneeID:  req.AssigneeID,
		IsMilestone: req.IsMilestone,
		Order:       req.Order,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toTaskResponse(task))
}

// Get handles GET /tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Task not found")
	if !ok {
		return
	}
	task, err := h.tasks.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toTaskResponse(task))
}

// Update handles PUT /tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Task not found")
	if !ok {
		return
	}
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	var req UpdateTaskRequest
	if !h.BindJSON(c, &req) {
		return
	}
	u, err := req.toUpdate()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	task, err := h.tasks.Update(c.Request.Context(), id, u, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toTaskResponse(task))
}

// Reschedule handles POST /tasks/:id/reschedule. The moved tasks are
// returned with the target first.
func (h *TaskHandler) Reschedule(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Task not found")
	if !ok {
		return
	}
	var req RescheduleRequest
	if !h.BindJSON(c, &req) {
		return
	}
	start, err := parseOptionalDate(req.StartDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	due, err := parseOptionalDate(req.DueDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	moved, err := h.tasks.Reschedule(c.Request.Context(), launchapp.RescheduleInput{
		TaskID:    id,
		StartDate: start,
		DueDate:   due,
		Policy:    req.Policy,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mapSlice(moved, toTaskResponse))
}

// Comments handles GET /tasks/:id/comments
func (h *TaskHandler) Comments(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Task not found")
	if !ok {
		return
	}
	comments, err := h.tasks.Comments(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mapSlice(comments, toCommentResponse))
}

// AddComment handles POST /tasks/:id/comments
func (h *TaskHandler) AddComment(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Task not found")
	if !ok {
		return
	}
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	var req CommentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	comment, err := h.tasks.AddComment(c.Request.Context(), id, userID, req.Content)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toCommentResponse(comment))
}

// Checklist handles GET /tasks/:id/checklist
func (h *TaskHandler) Checklist(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Task not found")
	if !ok {
		return
	}
	items, err := h.tasks.Checklist(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mapSlice(items, toChecklistItemResponse))
}

// AddChecklistItem handles POST /tasks/:id/checklist
func (h *TaskHandler) AddChecklistItem(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Task not found")
	if !ok {
		return
	}
	var req ChecklistItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	item, err := h.tasks.AddChecklistItem(c.Request.Context(), id, launchapp.ChecklistInput{
		Content: req.Content,
		Order:   req.Order,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toChecklistItemResponse(item))
}

// SetChecklistItem handles PATCH /tasks/:id/checklist/:itemId
func (h *TaskHandler) SetChecklistItem(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Task not found")
	if !ok {
		return
	}
	itemID, ok := h.PathID(c, "itemId", "Checklist item not found")
	if !ok {
		return
	}
	var req ChecklistToggleRequest
	if !h.BindJSON(c, &req) {
		return
	}
	item, err := h.tasks.SetChecklistItem(c.Request.Context(), id, itemID, *req.IsCompleted)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toChecklistItemResponse(item))
}
