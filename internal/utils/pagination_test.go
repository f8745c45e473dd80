package utils

import (
	"fmt"
	"math"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/inc-tasks/task-api/internal/constants"
	"github.com/stretchr/testify/assert"
)

func contextWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/tasks?"+query, nil)
	return c
}

func TestGetPaginationParams(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", 1, 10, 0},
		{"explicit", "page=3&limit=20", 3, 20, 40},
		{"non numeric", "page=abc&limit=xyz", 1, 10, 0},
		{"zero and negative", "page=0&limit=-5", 1, 10, 0},
		{"limit capped", "page=2&limit=500", 2, 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := GetPaginationParams(contextWithQuery(tt.query))
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantOffset, p.Offset)
		})
	}
}

func TestNewPaginationParams_HugePage(t *testing.T) {
	for _, limit := range []int{1, 10, 100, 500} {
		p := NewPaginationParams(math.MaxInt, limit)
		assert.Equal(t, constants.MaxPage, p.Page)
		assert.Positive(t, p.Offset)
		assert.Equal(t, (p.Page-1)*p.Limit, p.Offset)
	}

	p := GetPaginationParams(contextWithQuery(fmt.Sprintf("page=%d&limit=100", math.MaxInt)))
	assert.Equal(t, constants.MaxPage, p.Page)
	assert.Positive(t, p.Offset)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 2, TotalPages(15, 10))
	assert.Equal(t, 7, TotalPages(7, 1))
}

func TestNewPageInfo_Invariants(t *testing.T) {
	for total := int64(0); total <= 45; total++ {
		for _, limit := range []int{1, 3, 10, 25} {
			for page := 1; page <= 6; page++ {
				info := NewPageInfo(NewPaginationParams(page, limit), total)

				want := int((total + int64(limit) - 1) / int64(limit))
				assert.Equal(t, want, info.TotalPages)
				assert.Equal(t, page < info.TotalPages, info.HasNext)
				assert.Equal(t, page > 1, info.HasPrev)
			}
		}
	}
}

func TestNewPageInfo_FirstPageOfFifteen(t *testing.T) {
	info := NewPageInfo(NewPaginationParams(1, 10), 15)

	assert.Equal(t, 2, info.TotalPages)
	assert.True(t, info.HasNext)
	assert.False(t, info.HasPrev)
}
