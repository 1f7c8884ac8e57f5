package dto

import (
	"net/http"
	"strconv"
	"strings"

	"lodge/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams carries the paging and ordering knobs shared by list endpoints.
// Lists are held in memory, so Page and Limit slice an already loaded result.
type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty,min=1"`
	Limit   int    `json:"limit"    validate:"omitempty,min=1,max=100"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads page, limit, sort_by and sort_dir from the query string.
// Unparseable or non-positive numbers are ignored, limit is capped at
// constant.MaxValueLimit and sort_by is kept only when listed in sortable.
// With withDefaults the missing page and limit fall back to the defaults.
func (q *QueryParams) FromRequest(r *http.Request, withDefaults bool, sortable ...string) {
	values := r.URL.Query()

	if page, ok := positiveInt(values.Get(constant.RequestParamPage)); ok {
		q.Page = page
	}

	if limit, ok := positiveInt(values.Get(constant.RequestParamLimit)); ok {
		q.Limit = min(limit, constant.MaxValueLimit)
	}

	sortBy := strings.ToLower(strings.TrimSpace(values.Get(constant.RequestParamSortBy)))
	for _, field := range sortable {
		if sortBy == field {
			q.SortBy = field

			break
		}
	}

	switch dir := strings.ToUpper(values.Get(constant.RequestParamSortDir)); dir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = dir
	}

	if !withDefaults {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}

	if q.SortBy != constant.Empty && q.SortDir == constant.Empty {
		q.SortDir = constant.DefaultValueSortDir
	}
}

// Offset is the index of the first item on the requested page.
func (q QueryParams) Offset() int {
	if q.Limit <= 0 {
		return 0
	}

	return (max(q.Page, 1) - 1) * q.Limit
}

// Descending reports whether results should be ordered from largest to smallest.
func (q QueryParams) Descending() bool {
	return q.SortDir == SortDirDesc
}

func positiveInt(raw string) (int, bool) {
	if raw == constant.Empty {
		return 0, false
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, false
	}

	return v, true
}
