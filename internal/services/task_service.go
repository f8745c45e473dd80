package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/inc-tasks/task-api/internal/models"
	"github.com/inc-tasks/task-api/internal/repository"
	"github.com/inc-tasks/task-api/internal/utils"
	"gorm.io/gorm"
)

// Values accepted by ListTasksByUser
const (
	UserTaskRoleAssignedBy = "assignedBy"
	UserTaskRoleAssignedTo = "assignedTo"
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo  repository.TaskRepository
	userRepo  repository.UserRepository
	generator DraftGenerator
}

// NewTaskService creates a new TaskService. generator may be nil when drafting is not configured.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, generator DraftGenerator) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		userRepo:  userRepo,
		generator: generator,
	}
}

// ListTasksInput holds raw listing filters. Empty strings are not applied.
type ListTasksInput struct {
	Page       int
	Limit      int
	Status     string
	Priority   string
	AssignedTo string
	Search     string
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title          string
	Description    string
	Status         string
	Priority       string
	AssignedTo     *uint64
	AssignedToName *string
	AssignedBy     *uint64
	AssignedByName string
	DueDate        *time.Time
}

// UpdateTaskInput represents input for updating a task
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	Status         *string
	Priority       *string
	AssignedTo     *uint64
	AssignedToName *string
	ClearAssignee  bool
	AssignedBy     *uint64
	AssignedByName *string
	DueDate        *time.Time
	ClearDueDate   bool
}

// TaskPage is one page of a task listing
type TaskPage struct {
	Tasks []models.Task
	utils.PageInfo
}

// ListTasks returns tasks matching the filters, newest first
func (s *TaskService) ListTasks(ctx context.Context, input ListTasksInput) (*TaskPage, error) {
	var filter repository.TaskFilter

	if input.Status != "" {
		status, err := parseStatus(input.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}
	if input.Priority != "" {
		priority, err := parsePriority(input.Priority)
		if err != nil {
			return nil, err
		}
		filter.Priority = &priority
	}
	if input.AssignedTo != "" {
		id, err := strconv.ParseUint(strings.TrimSpace(input.AssignedTo), 10, 64)
		if err != nil {
			return nil, ErrInvalidAssignedTo
		}
		filter.AssignedTo = &id
	}
	filter.Search = strings.TrimSpace(input.Search)

	return s.list(ctx, filter, input.Page, input.Limit)
}

// ListTasksByUser lists tasks a user assigned (role assignedBy) or holds (anything else)
func (s *TaskService) ListTasksByUser(ctx context.Context, userID uint64, role string, page, limit int) (*TaskPage, error) {
	var filter repository.TaskFilter
	if role == UserTaskRoleAssignedBy {
		filter.AssignedBy = &userID
	} else {
		filter.AssignedTo = &userID
	}
	return s.list(ctx, filter, page, limit)
}

func (s *TaskService) list(ctx context.Context, filter repository.TaskFilter, page, limit int) (*TaskPage, error) {
	params := utils.NewPaginationParams(page, limit)
	filter.Page, filter.Limit = params.Page, params.Limit

	tasks, total, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return &TaskPage{Tasks: tasks, PageInfo: utils.NewPageInfo(params, total)}, nil
}

// GetTask returns a task by id
func (s *TaskService) GetTask(ctx context.Context, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask validates input and stores a task. The assigner defaults to the actor.
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput, actor Actor) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	status := models.TaskStatusPending
	if input.Status != "" {
		parsed, err := parseStatus(input.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	priority := models.TaskPriorityMedium
	if input.Priority != "" {
		parsed, err := parsePriority(input.Priority)
		if err != nil {
			return nil, err
		}
		priority = parsed
	}

	assignedBy, assignedByName := actor.ID, actor.Name
	if input.AssignedBy != nil {
		var err error
		assignedBy, assignedByName, err = delegatedAssigner(*input.AssignedBy, &input.AssignedByName, actor)
		if err != nil {
			return nil, err
		}
	} else if name := strings.TrimSpace(input.AssignedByName); name != "" {
		assignedByName = name
	}

	task := &models.Task{
		Title:          title,
		Description:    strings.TrimSpace(input.Description),
		Status:         status,
		Priority:       priority,
		AssignedBy:     assignedBy,
		AssignedByName: assignedByName,
		CreatedBy:      actor.ID,
		UpdatedBy:      actor.ID,
		UpdatedByName:  actor.Name,
		DueDate:        input.DueDate,
	}

	if input.AssignedTo != nil {
		name, err := s.assigneeName(ctx, *input.AssignedTo, input.AssignedToName)
		if err != nil {
			return nil, err
		}
		task.AssignedTo = input.AssignedTo
		task.AssignedToName = &name
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask applies a partial update and stamps the actor as updater
func (s *TaskService) UpdateTask(ctx context.Context, taskID uint64, input UpdateTaskInput, actor Actor) (*models.Task, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = strings.TrimSpace(*input.Description)
	}
	if input.Status != nil {
		status, err := parseStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		task.Status = status
	}
	if input.Priority != nil {
		priority, err := parsePriority(*input.Priority)
		if err != nil {
			return nil, err
		}
		task.Priority = priority
	}

	if input.ClearAssignee {
		task.AssignedTo = nil
		task.AssignedToName = nil
	} else if input.AssignedTo != nil {
		name, err := s.assigneeName(ctx, *input.AssignedTo, input.AssignedToName)
		if err != nil {
			return nil, err
		}
		task.AssignedTo = input.AssignedTo
		task.AssignedToName = &name
	}

	if input.AssignedBy != nil {
		assignedBy, name, err := delegatedAssigner(*input.AssignedBy, input.AssignedByName, actor)
		if err != nil {
			return nil, err
		}
		task.AssignedBy, task.AssignedByName = assignedBy, name
	} else if input.AssignedByName != nil {
		name := strings.TrimSpace(*input.AssignedByName)
		if name == "" {
			return nil, ErrAssignedByName
		}
		task.AssignedByName = name
	}

	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	task.UpdatedBy = actor.ID
	task.UpdatedByName = actor.Name

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// UpdateTaskStatus sets the status of a task. It returns nil, nil when the task does not exist.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, taskID uint64, status string, updatedBy uint64, updatedByName string) (*models.Task, error) {
	parsed, err := parseStatus(status)
	if err != nil {
		return nil, err
	}
	if updatedBy == 0 {
		return nil, ErrUpdatedByRequired
	}
	updatedByName = strings.TrimSpace(updatedByName)
	if updatedByName == "" {
		return nil, ErrUpdatedByName
	}

	if err := s.taskRepo.UpdateStatus(ctx, taskID, parsed, updatedBy, updatedByName); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// DeleteTask soft deletes a task
func (s *TaskService) DeleteTask(ctx context.Context, taskID uint64) error {
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// TaskStats counts tasks by status and priority, over every task or only those involving userID
func (s *TaskService) TaskStats(ctx context.Context, userID *uint64) (*models.TaskStats, error) {
	stats, err := s.taskRepo.Stats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute task stats: %w", err)
	}
	return stats, nil
}

// GenerateTaskDrafts asks the configured generator for drafts. Nothing is persisted.
func (s *TaskService) GenerateTaskDrafts(ctx context.Context, text string) ([]GeneratedTask, error) {
	if s.generator == nil {
		return nil, ErrAIServiceUnavailable
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrDraftTextRequired
	}

	drafts, err := s.generator.GenerateTasksFromText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate task drafts: %w", err)
	}
	return drafts, nil
}

// delegatedAssigner resolves the assigner of a task. Naming someone other than the actor
// requires their name; the actor's own id falls back to the actor's name.
func delegatedAssigner(assignedBy uint64, name *string, actor Actor) (uint64, string, error) {
	given := ""
	if name != nil {
		given = strings.TrimSpace(*name)
	}

	if assignedBy == actor.ID {
		if given == "" {
			given = actor.Name
		}
		return assignedBy, given, nil
	}
	if assignedBy == 0 {
		return 0, "", ErrInvalidAssignedBy
	}
	if given == "" {
		return 0, "", ErrAssignedByName
	}
	return assignedBy, given, nil
}

// assigneeName returns the given name, or the assignee's full name looked up from the store
func (s *TaskService) assigneeName(ctx context.Context, userID uint64, given *string) (string, error) {
	if given != nil {
		if name := strings.TrimSpace(*given); name != "" {
			return name, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrAssigneeNotFound
		}
		return "", fmt.Errorf("failed to find assignee: %w", err)
	}

	if name := user.FullName(); name != "" {
		return name, nil
	}
	return user.Username, nil
}

func parseStatus(raw string) (models.TaskStatus, error) {
	status := models.TaskStatus(strings.TrimSpace(raw))
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

func parsePriority(raw string) (models.TaskPriority, error) {
	priority := models.TaskPriority(strings.TrimSpace(raw))
	if !priority.Valid() {
		return "", ErrInvalidPriority
	}
	return priority, nil
}
