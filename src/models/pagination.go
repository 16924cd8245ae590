package models

import (
	"math"
	"strings"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	// MaxPage keeps the skip computation within int64 on every platform.
	MaxPage          = math.MaxInt32
)

// PaginationParams holds paging, search and sort options taken from the query string.
type PaginationParams struct {
	Page   int    `json:"page" query:"page"`
	Limit  int    `json:"limit" query:"limit"`
	Search string `json:"search" query:"search"`
	SortBy string `json:"sortBy" query:"sortBy"`
	Order  string `json:"order" query:"order"`
}

type PaginationMeta struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

// Normalize clamps page and limit and restricts SortBy to allowed, falling back to fallbackSort.
func (p *PaginationParams) Normalize(allowed []string, fallbackSort string) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	sortOK := false
	for _, field := range allowed {
		if p.SortBy == field {
			sortOK = true
			break
		}
	}
	if !sortOK {
		p.SortBy = fallbackSort
	}
	if strings.ToLower(p.Order) != "desc" {
		p.Order = "asc"
	} else {
		p.Order = "desc"
	}
}

// GetSkip returns how many documents precede the requested page.
func (p *PaginationParams) GetSkip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// GetSortOrder returns 1 for ascending and -1 for descending.
func (p *PaginationParams) GetSortOrder() int {
	if p.Order == "desc" {
		return -1
	}
	return 1
}

// NewPaginationMeta builds the meta block for a page of a result set of size total.
func NewPaginationMeta(total int64, params PaginationParams) *PaginationMeta {
	totalPages := 0
	if params.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(params.Limit)))
	}
	return &PaginationMeta{
		Page:        params.Page,
		Limit:       params.Limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     params.Page < totalPages,
		HasPrevious: params.Page > 1,
	}
}
