package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	return s == TaskStatusPending || s == TaskStatusInProgress || s == TaskStatusCompleted
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Valid reports whether p is a known priority.
func (p TaskPriority) Valid() bool {
	return p == TaskPriorityLow || p == TaskPriorityMedium || p == TaskPriorityHigh
}

type Task struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	Title          string         `gorm:"type:varchar(255);not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Status         TaskStatus     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Priority       TaskPriority   `gorm:"type:varchar(20);not null;default:'medium';index" json:"priority"`
	AssignedTo     *uint64        `gorm:"index" json:"assignedTo"`
	AssignedToName *string        `gorm:"type:varchar(255)" json:"assignedToName"`
	AssignedBy     uint64         `gorm:"not null;index" json:"assignedBy"`
	AssignedByName string         `gorm:"type:varchar(255);not null" json:"assignedByName"`
	CreatedBy      uint64         `gorm:"not null;index" json:"createdBy"`
	UpdatedBy      uint64         `gorm:"not null;index" json:"updatedBy"`
	UpdatedByName  string         `gorm:"type:varchar(255)" json:"updatedByName,omitempty"`
	DueDate        *time.Time     `gorm:"index" json:"dueDate"`
	CreatedAt      time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TaskStats aggregates task counts by status and priority.
type TaskStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
	High       int64 `json:"high"`
	Medium     int64 `json:"medium"`
	Low        int64 `json:"low"`
}
