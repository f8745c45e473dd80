package repository

import (
	"context"
	"strings"

	"github.com/inc-tasks/task-api/internal/database"
	"github.com/inc-tasks/task-api/internal/models"
	"github.com/inc-tasks/task-api/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Task{})

	// Apply filters
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.AssignedTo != nil {
		query = query.Where("tasks.assigned_to = ?", *filter.AssignedTo)
	}
	if filter.AssignedBy != nil {
		query = query.Where("tasks.assigned_by = ?", *filter.AssignedBy)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		query = searchColumns(query, term,
			"tasks.title", "tasks.description", "tasks.assigned_to_name", "tasks.assigned_by_name")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tasks := []models.Task{}
	err := query.
		Scopes(database.NewestFirst("tasks"), database.Paginate(utils.NewPaginationParams(filter.Page, filter.Limit))).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// UpdateStatus sets the status and stamps the updater
func (r *GormTaskRepository) UpdateStatus(ctx context.Context, id uint64, status models.TaskStatus, updatedBy uint64, updatedByName string) error {
	result := r.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).Updates(map[string]any{
		"status":          status,
		"updated_by":      updatedBy,
		"updated_by_name": updatedByName,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete soft deletes a task
func (r *GormTaskRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&models.Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type groupCount struct {
	Value string
	Count int64
}

// Stats counts tasks per status and priority, optionally limited to tasks a user assigned or holds
func (r *GormTaskRepository) Stats(ctx context.Context, userID *uint64) (*models.TaskStats, error) {
	base := func() *gorm.DB {
		db := r.db.WithContext(ctx).Model(&models.Task{})
		if userID != nil {
			db = db.Where("tasks.assigned_to = ? OR tasks.assigned_by = ?", *userID, *userID)
		}
		return db
	}

	var byStatus, byPriority []groupCount
	if err := base().
		Select("tasks.status AS value, COUNT(*) AS count").
		Group("tasks.status").
		Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	if err := base().
		Select("tasks.priority AS value, COUNT(*) AS count").
		Group("tasks.priority").
		Scan(&byPriority).Error; err != nil {
		return nil, err
	}

	stats := &models.TaskStats{}
	for _, row := range byStatus {
		stats.Total += row.Count
		switch models.TaskStatus(row.Value) {
		case models.TaskStatusPending:
			stats.Pending = row.Count
		case models.TaskStatusInProgress:
			stats.InProgress = row.Count
		case models.TaskStatusCompleted:
			stats.Completed = row.Count
		}
	}
	for _, row := range byPriority {
		switch models.TaskPriority(row.Value) {
		case models.TaskPriorityHigh:
			stats.High = row.Count
		case models.TaskPriorityMedium:
			stats.Medium = row.Count
		case models.TaskPriorityLow:
			stats.Low = row.Count
		}
	}

	return stats, nil
}
