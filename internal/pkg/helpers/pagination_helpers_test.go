package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yigit/atcampus/internal/app/models/dto"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 20, 40, 20},
		{"page below one is clamped", 0, 10, 0, 10},
		{"negative page is clamped", -4, 5, 0, 5},
		{"zero size uses default", 2, 0, 10, DefaultPageSize},
		{"size above max uses default", 2, MaxPageSize + 1, 10, DefaultPageSize},
		{"max size is allowed", 2, MaxPageSize, 100, MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int64
		page, size int
		want       dto.PaginationInfo
	}{
		{"no items on first page", 0, 1, 10, dto.PaginationInfo{CurrentPage: 1, TotalPages: 1, PageSize: 10, TotalItems: 0}},
		{"no items past first page", 0, 3, 10, dto.PaginationInfo{CurrentPage: 3, TotalPages: 0, PageSize: 10, TotalItems: 0}},
		{"partial last page", 21, 2, 10, dto.PaginationInfo{CurrentPage: 2, TotalPages: 3, PageSize: 10, TotalItems: 21}},
		{"page beyond total is clamped", 21, 9, 10, dto.PaginationInfo{CurrentPage: 3, TotalPages: 3, PageSize: 10, TotalItems: 21}},
		{"page below one is clamped", 5, 0, 10, dto.PaginationInfo{CurrentPage: 1, TotalPages: 1, PageSize: 10, TotalItems: 5}},
		{"zero size uses default", 25, 1, 0, dto.PaginationInfo{CurrentPage: 1, TotalPages: 3, PageSize: DefaultPageSize, TotalItems: 25}},
		{"size above max uses default", 25, 1, MaxPageSize + 1, dto.PaginationInfo{CurrentPage: 1, TotalPages: 3, PageSize: DefaultPageSize, TotalItems: 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPaginationInfo(tt.totalItems, tt.page, tt.size))
		})
	}
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query              string
		wantPage, wantSize int
	}{
		{"", 1, 10},
		{"?page=3&size=25", 3, 25},
		{"?page=abc&size=-1", 1, 10},
		{"?page=0&size=101", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/api/v1/jobs/saved"+tt.query, nil)

			page, size := ParsePaginationParams(c)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}
