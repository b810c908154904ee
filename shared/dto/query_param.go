package dto

import (
	"agenda/shared/constant"
	"net/http"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty,gte=1"`
	Limit   int    `json:"limit"    validate:"omitempty,gte=1,lte=100"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

func positiveInt(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 1 {
		return 0
	}

	return value
}

// FromRequest reads page, limit, sort_by and sort_dir from the query string.
// With paginate set, missing page and limit fall back to the defaults and
// limit is capped at constant.MaxValueLimit.
func (q *QueryParams) FromRequest(r *http.Request, paginate bool) {
	values := r.URL.Query()

	if page := positiveInt(values.Get(constant.RequestParamPage)); page > 0 {
		q.Page = page
	}

	if limit := positiveInt(values.Get(constant.RequestParamLimit)); limit > 0 {
		q.Limit = limit
	}

	if sortBy := strings.TrimSpace(values.Get(constant.RequestParamSortBy)); sortBy != "" {
		q.SortBy = sortBy
	}

	switch dir := strings.ToUpper(values.Get(constant.RequestParamSortDir)); dir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = dir
	}

	if !paginate {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	switch {
	case q.Limit == 0:
		q.Limit = constant.DefaultValueLimit
	case q.Limit > constant.MaxValueLimit:
		q.Limit = constant.MaxValueLimit
	}
}

// Offset is the number of rows skipped before the current page.
func (q QueryParams) Offset() int {
	if q.Page < 1 || q.Limit < 1 {
		return 0
	}

	return (q.Page - 1) * q.Limit
}

// RestrictSort keeps SortBy only when it is one of the allowed keys and replaces it with the
// mapped column, falling back otherwise. The direction defaults to ascending.
func (q *QueryParams) RestrictSort(allowed map[string]string, fallback string) {
	column, ok := allowed[q.SortBy]
	if !ok {
		column = fallback
	}

	q.SortBy = column

	if q.SortBy != "" && q.SortDir == "" {
		q.SortDir = SortDirAsc
	}
}
