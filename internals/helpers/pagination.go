package helper

import (
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 200

	// batas offset; page di atasnya dipotong supaya (page-1)*limit tidak overflow
	MaxOffset = math.MaxInt32
)

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type Paging struct {
	Page   int
	Limit  int
	Offset int
}

// ResolvePaging membaca ?page= & ?limit= (alias ?per_page=) dan normalisasi.
// Nilai yang tidak valid diganti default, bukan error.
func ResolvePaging(c *fiber.Ctx, defaultLimit, maxLimit int) Paging {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	page, _ := strconv.Atoi(strings.TrimSpace(c.Query("page")))
	if page < 1 {
		page = DefaultPage
	}

	limitStr := strings.TrimSpace(c.Query("limit"))
	if limitStr == "" {
		limitStr = strings.TrimSpace(c.Query("per_page"))
	}
	limit, _ := strconv.Atoi(limitStr)
	if limit < 1 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}

	if maxPage := MaxOffset/limit + 1; page > maxPage {
		page = maxPage
	}

	return Paging{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

func BuildPagination(total int64, p Paging) Pagination {
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	page := p.Page
	if page <= 0 {
		page = DefaultPage
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit)) // ceil
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// PageSlice memotong slice hasil in-memory sesuai paging.
func PageSlice[T any](items []T, p Paging) []T {
	if p.Offset < 0 || p.Limit <= 0 || p.Offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if p.Limit < end-p.Offset {
		end = p.Offset + p.Limit
	}
	return items[p.Offset:end]
}
