package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inc-tasks/task-api/internal/dto"
	apierrors "github.com/inc-tasks/task-api/internal/errors"
	"github.com/inc-tasks/task-api/internal/middleware"
	"github.com/inc-tasks/task-api/internal/services"
	"github.com/inc-tasks/task-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns tasks filtered by status, priority, assignedTo and search, newest first
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	page, err := h.taskService.ListTasks(c.Request.Context(), services.ListTasksInput{
		Page:       params.Page,
		Limit:      params.Limit,
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		AssignedTo: c.Query("assignedTo"),
		Search:     c.Query("search"),
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	respondTaskPage(c, page)
}

// MyTasks lists tasks the caller assigned (?type=assignedBy) or holds (default)
func (h *TaskHandler) MyTasks(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, middleware.MsgTokenRequired)
		return
	}
	params := utils.GetPaginationParams(c)

	page, err := h.taskService.ListTasksByUser(c.Request.Context(), userID, c.Query("type"), params.Page, params.Limit)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	respondTaskPage(c, page)
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success("Task retrieved successfully", dto.ToTaskDTO(*task)))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		apierrors.Unauthorized(c, middleware.MsgTokenRequired)
		return
	}

	var req dto.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		AssignedTo:     req.AssignedTo,
		AssignedToName: req.AssignedToName,
		AssignedBy:     req.AssignedBy,
		AssignedByName: req.AssignedByName,
		DueDate:        req.DueDate,
	}, actor)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Success("Task created successfully", dto.ToTaskDTO(*task)))
}

// UpdateTask applies a partial update to an existing task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		apierrors.Unauthorized(c, middleware.MsgTokenRequired)
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, services.UpdateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		AssignedTo:     req.AssignedTo,
		AssignedToName: req.AssignedToName,
		ClearAssignee:  req.ClearAssignee,
		AssignedBy:     req.AssignedBy,
		AssignedByName: req.AssignedByName,
		DueDate:        req.DueDate,
		ClearDueDate:   req.ClearDueDate,
	}, actor)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success("Task updated successfully", dto.ToTaskDTO(*task)))
}

// UpdateTaskStatus changes only the status, stamping the caller as the last editor
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		apierrors.Unauthorized(c, middleware.MsgTokenRequired)
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.UpdateTaskStatus(c.Request.Context(), taskID, req.Status, actor.ID, actor.Name)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	if task == nil {
		apierrors.NotFoundResponse(c, services.ErrTaskNotFound.Message)
		return
	}

	c.JSON(http.StatusOK, dto.Success("Task status updated successfully", dto.ToTaskDTO(*task)))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success("Task deleted successfully", nil))
}

// TaskStats counts tasks by status and priority. ?mine=true restricts it to the caller's tasks.
func (h *TaskHandler) TaskStats(c *gin.Context) {
	var userID *uint64
	if mine, _ := strconv.ParseBool(c.Query("mine")); mine {
		id, ok := middleware.GetUserID(c)
		if !ok {
			apierrors.Unauthorized(c, middleware.MsgTokenRequired)
			return
		}
		userID = &id
	}

	stats, err := h.taskService.TaskStats(c.Request.Context(), userID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success("Task statistics retrieved successfully", stats))
}

// GenerateTasks drafts task suggestions from free text using AI. Nothing is stored.
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	var req dto.GenerateTasksRequest
	if !bindJSON(c, &req) {
		return
	}

	drafts, err := h.taskService.GenerateTaskDrafts(c.Request.Context(), req.Text)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success("Tasks generated successfully", dto.ToTaskDraftDTOs(drafts)))
}

func respondTaskPage(c *gin.Context, page *services.TaskPage) {
	response := dto.Success("Tasks retrieved successfully", dto.ToTaskDTOs(page.Tasks))
	response.Pagination = dto.TaskPagination(page.PageInfo)
	c.JSON(http.StatusOK, response)
}

func taskIDParam(c *gin.Context) (uint64, bool) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, false
	}
	return id, true
}
