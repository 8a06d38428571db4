// Package query turns list request parameters into a filter, sort and page window.
package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/BuzzLyutic/task-crud-api/internal/model"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Build reads status, priority, search, page, limit, sort and order.
// limit is capped at maxLimit when maxLimit > 0. An unknown sort key falls
// back to createdAt.
func Build(values url.Values, maxLimit int) model.ListQuery {
	q := model.ListQuery{
		Filter: model.TaskFilter{
			Status:   strings.TrimSpace(values.Get("status")),
			Priority: strings.TrimSpace(values.Get("priority")),
			Search:   values.Get("search"),
		},
		Page:  positiveInt(values.Get("page"), DefaultPage),
		Limit: positiveInt(values.Get("limit"), DefaultLimit),
	}

	if maxLimit > 0 && q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	// (page-1)*limit не должен переполнять int
	if maxPage := math.MaxInt / q.Limit; q.Page > maxPage {
		q.Page = maxPage
	}

	q.Sort.Field = model.SortField(values.Get("sort"))
	if !q.Sort.Field.Valid() {
		q.Sort.Field = model.SortCreatedAt
	}

	// как и раньше: всё, кроме "desc" (или пустого значения), - по возрастанию
	order := values.Get("order")
	q.Sort.Desc = order == "" || order == "desc"

	return q
}

func positiveInt(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return def
	}
	return n
}
