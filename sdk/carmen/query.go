package carmen

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// PerpageAll asks the server for every row in one page.
const PerpageAll = -1

// AdvanceCondition is one clause of an advanced filter.
type AdvanceCondition struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

// ListQuery builds the query string for list endpoints. The zero value asks
// for the server's defaults.
type ListQuery struct {
	page         int
	perpage      int
	search       string
	searchFields []string
	filter       map[string]any
	sortField    string
	sortDesc     bool
	advance      []AdvanceCondition
}

// NewListQuery starts at page 1 with 10 rows per page. A zero-value
// &ListQuery{} asks for the server's own defaults instead.
func NewListQuery() *ListQuery {
	return &ListQuery{page: 1, perpage: 10}
}

func (q *ListQuery) Page(page int) *ListQuery {
	q.page = page
	return q
}

func (q *ListQuery) Perpage(perpage int) *ListQuery {
	q.perpage = perpage
	return q
}

func (q *ListQuery) Search(term string, fields ...string) *ListQuery {
	q.search = term
	q.searchFields = fields
	return q
}

func (q *ListQuery) Filter(column string, value any) *ListQuery {
	if q.filter == nil {
		q.filter = map[string]any{}
	}
	q.filter[column] = value
	return q
}

func (q *ListQuery) SortAsc(field string) *ListQuery {
	q.sortField, q.sortDesc = field, false
	return q
}

func (q *ListQuery) SortDesc(field string) *ListQuery {
	q.sortField, q.sortDesc = field, true
	return q
}

func (q *ListQuery) Advance(conditions ...AdvanceCondition) *ListQuery {
	q.advance = append(q.advance, conditions...)
	return q
}

// Values renders the query as url.Values.
func (q *ListQuery) Values() url.Values {
	values := url.Values{}
	if q == nil {
		return values
	}
	if q.page > 0 {
		values.Set("page", strconv.Itoa(q.page))
	}
	if q.perpage != 0 {
		values.Set("perpage", strconv.Itoa(q.perpage))
	}
	if q.search != "" {
		values.Set("search", q.search)
		if len(q.searchFields) > 0 {
			values.Set("searchfields", strings.Join(q.searchFields, ","))
		}
	}
	if len(q.filter) > 0 {
		raw, _ := json.Marshal(q.filter)
		values.Set("filter", string(raw))
	}
	if q.sortField != "" {
		dir := "asc"
		if q.sortDesc {
			dir = "desc"
		}
		values.Set("sort", q.sortField+":"+dir)
	}
	if len(q.advance) > 0 {
		raw, _ := json.Marshal(q.advance)
		values.Set("advance", string(raw))
	}

	return values
}

// Encode renders the query string, without a leading "?".
func (q *ListQuery) Encode() string {
	return q.Values().Encode()
}

func (q *ListQuery) path(base string) string {
	encoded := q.Encode()
	if encoded == "" {
		return base
	}
	return base + "?" + encoded
}
