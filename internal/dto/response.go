package dto

import (
	"github.com/inc-tasks/task-api/internal/utils"
)

// Response is the envelope every endpoint answers with
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes the position of a page. Exactly one of TotalTasks and TotalUsers is set.
type Pagination struct {
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
	TotalTasks  *int64 `json:"totalTasks,omitempty"`
	TotalUsers  *int64 `json:"totalUsers,omitempty"`
	HasNext     bool   `json:"hasNext"`
	HasPrev     bool   `json:"hasPrev"`
}

// Success wraps data in a successful envelope
func Success(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

// TaskPagination builds pagination metadata for task listings
func TaskPagination(info utils.PageInfo) *Pagination {
	total := info.Total
	return &Pagination{
		CurrentPage: info.Page,
		TotalPages:  info.TotalPages,
		TotalTasks:  &total,
		HasNext:     info.HasNext,
		HasPrev:     info.HasPrev,
	}
}

// UserPagination builds pagination metadata for user listings
func UserPagination(info utils.PageInfo) *Pagination {
	total := info.Total
	return &Pagination{
		CurrentPage: info.Page,
		TotalPages:  info.TotalPages,
		TotalUsers:  &total,
		HasNext:     info.HasNext,
		HasPrev:     info.HasPrev,
	}
}
