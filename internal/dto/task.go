package dto

import (
	"time"

	"github.com/inc-tasks/task-api/internal/models"
	"github.com/inc-tasks/task-api/internal/services"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID             uint64              `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Status         models.TaskStatus   `json:"status"`
	Priority       models.TaskPriority `json:"priority"`
	AssignedTo     *uint64             `json:"assignedTo"`
	AssignedToName *string             `json:"assignedToName"`
	AssignedBy     uint64              `json:"assignedBy"`
	AssignedByName string              `json:"assignedByName"`
	CreatedBy      uint64              `json:"createdBy"`
	UpdatedBy      uint64              `json:"updatedBy"`
	UpdatedByName  string              `json:"updatedByName,omitempty"`
	DueDate        *time.Time          `json:"dueDate"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// CreateTaskRequest is the body of POST /tasks
type CreateTaskRequest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	AssignedTo     *uint64    `json:"assignedTo"`
	AssignedToName *string    `json:"assignedToName"`
	AssignedBy     *uint64    `json:"assignedBy"`
	AssignedByName string     `json:"assignedByName"`
	DueDate        *time.Time `json:"dueDate"`
}

// UpdateTaskRequest is the body of PUT /tasks/:id. Absent fields are left untouched.
type UpdateTaskRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Status         *string    `json:"status"`
	Priority       *string    `json:"priority"`
	AssignedTo     *uint64    `json:"assignedTo"`
	AssignedToName *string    `json:"assignedToName"`
	ClearAssignee  bool       `json:"clearAssignee"`
	AssignedBy     *uint64    `json:"assignedBy"`
	AssignedByName *string    `json:"assignedByName"`
	DueDate        *time.Time `json:"dueDate"`
	ClearDueDate   bool       `json:"clearDueDate"`
}

// UpdateTaskStatusRequest is the body of PATCH /tasks/:id/status
type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

// GenerateTasksRequest is the body of POST /tasks/generate
type GenerateTasksRequest struct {
	Text string `json:"text"`
}

// TaskDraftDTO is a suggested task that has not been stored
type TaskDraftDTO struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"dueDate"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		Status:         task.Status,
		Priority:       task.Priority,
		AssignedTo:     task.AssignedTo,
		AssignedToName: task.AssignedToName,
		AssignedBy:     task.AssignedBy,
		AssignedByName: task.AssignedByName,
		CreatedBy:      task.CreatedBy,
		UpdatedBy:      task.UpdatedBy,
		UpdatedByName:  task.UpdatedByName,
		DueDate:        task.DueDate,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		out[i] = ToTaskDTO(task)
	}
	return out
}

// ToTaskDraftDTOs converts generated drafts
func ToTaskDraftDTOs(drafts []services.GeneratedTask) []TaskDraftDTO {
	out := make([]TaskDraftDTO, len(drafts))
	for i, d := range drafts {
		out[i] = TaskDraftDTO{
			Title:       d.Title,
			Description: d.Description,
			Priority:    d.Priority,
			DueDate:     d.DueDate,
		}
	}
	return out
}
