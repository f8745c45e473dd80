package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inc-tasks/task-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PageInfo is the derived position of a page within a result set
type PageInfo struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// GetPaginationParams extracts and validates pagination parameters from the request.
// Absent, non-numeric or non-positive values fall back to the defaults.
func GetPaginationParams(c *gin.Context) PaginationParams {
	return NewPaginationParams(parsePositive(c.Query("page")), parsePositive(c.Query("limit")))
}

// NewPaginationParams normalizes page and limit and computes the offset
func NewPaginationParams(page, limit int) PaginationParams {
	if page < constants.DefaultPage {
		page = constants.DefaultPage
	}
	if page > constants.MaxPage {
		page = constants.MaxPage
	}
	if limit < constants.MinPageSize {
		limit = constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// TotalPages is ceil(total/limit)
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// NewPageInfo computes page counts and neighbour flags for a listing
func NewPageInfo(params PaginationParams, total int64) PageInfo {
	totalPages := TotalPages(total, params.Limit)
	return PageInfo{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}

func parsePositive(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
