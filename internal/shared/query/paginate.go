// Package query holds the paginate descriptor shared by every list endpoint:
// page/perpage, free-text search with explicit search fields, a flat JSON
// filter object, a single-column sort spec and an "advance" structured query.
// The descriptor is pure data; repositories decide how it maps to SQL.
package query

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/carmen-hq/carmen/internal/shared/constants"
)

// Paginate is the request-shaping descriptor for list endpoints.
type Paginate struct {
	Page         int
	Perpage      int
	Search       string
	SearchFields []string
	Filter       map[string]any
	Sort         string
	Advance      []AdvanceCondition
}

// AdvanceCondition is one entry of the "advance" query: an explicit
// field/operator/value triple for queries the flat filter cannot express.
type AdvanceCondition struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

var advanceOperators = map[string]bool{
	"eq": true, "ne": true,
	"gt": true, "gte": true,
	"lt": true, "lte": true,
	"like": true, "in": true,
}

// New returns a descriptor with defaults applied.
func New() Paginate {
	return Paginate{
		Page:    constants.DefaultPage,
		Perpage: constants.DefaultPerpage,
	}
}

// FromValues parses a descriptor from URL query values. defaultSearchFields is
// used when a search term arrives without explicit searchfields. Unknown
// parameters are ignored; malformed filter/advance JSON is an error because the
// caller's intent cannot be guessed.
func FromValues(values url.Values, defaultSearchFields []string) (Paginate, error) {
	p := New()

	if raw := values.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
			p.Page = n
		}
	}
	if raw := values.Get("perpage"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			if n == constants.PerpageAll || n >= 1 {
				p.Perpage = n
			}
		}
	}
	if p.Perpage > constants.MaxPerpage {
		p.Perpage = constants.MaxPerpage
	}

	p.Search = strings.TrimSpace(values.Get("search"))
	if raw := values.Get("searchfields"); raw != "" {
		for _, f := range strings.Split(raw, ",") {
			if f = strings.TrimSpace(f); f != "" {
				p.SearchFields = append(p.SearchFields, f)
			}
		}
	}
	if p.Search != "" && len(p.SearchFields) == 0 {
		p.SearchFields = defaultSearchFields
	}

	if raw := values.Get("filter"); raw != "" {
		filter := map[string]any{}
		if err := json.Unmarshal([]byte(raw), &filter); err != nil {
			return p, fmt.Errorf("invalid filter parameter: %w", err)
		}
		if len(filter) > 0 {
			p.Filter = filter
		}
	}

	p.Sort = strings.TrimSpace(values.Get("sort"))

	if raw := values.Get("advance"); raw != "" {
		var conds []AdvanceCondition
		if err := json.Unmarshal([]byte(raw), &conds); err != nil {
			return p, fmt.Errorf("invalid advance parameter: %w", err)
		}
		for _, c := range conds {
			if c.Field == "" {
				return p, fmt.Errorf("advance condition missing field")
			}
			if !advanceOperators[c.Operator] {
				return p, fmt.Errorf("advance condition has unknown operator %q", c.Operator)
			}
		}
		p.Advance = conds
	}

	return p, nil
}

// Values encodes the descriptor back into URL query values. Empty members are
// omitted so building then parsing yields the same descriptor.
func (p Paginate) Values() url.Values {
	values := url.Values{}
	page := p.Page
	if page < 1 {
		page = constants.DefaultPage
	}
	perpage := p.Perpage
	if perpage == 0 {
		perpage = constants.DefaultPerpage
	}
	values.Set("page", strconv.Itoa(page))
	values.Set("perpage", strconv.Itoa(perpage))

	if p.Search != "" {
		values.Set("search", p.Search)
	}
	if len(p.SearchFields) > 0 {
		values.Set("searchfields", strings.Join(p.SearchFields, ","))
	}
	if len(p.Filter) > 0 {
		raw, err := json.Marshal(p.Filter)
		if err == nil {
			values.Set("filter", string(raw))
		}
	}
	if p.Sort != "" {
		values.Set("sort", p.Sort)
	}
	if len(p.Advance) > 0 {
		raw, err := json.Marshal(p.Advance)
		if err == nil {
			values.Set("advance", string(raw))
		}
	}
	return values
}

// Encode returns the URL-encoded query string for the descriptor.
func (p Paginate) Encode() string {
	return p.Values().Encode()
}

// FetchAll reports whether the perpage sentinel asks for every row.
func (p Paginate) FetchAll() bool {
	return p.Perpage == constants.PerpageAll
}

// Offset returns the zero-based row offset.
func (p Paginate) Offset() int {
	if p.Page <= 1 || p.FetchAll() {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}

// Limit returns the page size with defaults and cap applied; -1 with FetchAll.
func (p Paginate) Limit() int {
	if p.FetchAll() {
		return -1
	}
	if p.Perpage <= 0 {
		return constants.DefaultPerpage
	}
	if p.Perpage > constants.MaxPerpage {
		return constants.MaxPerpage
	}
	return p.Perpage
}

// SortField splits the "field:asc|desc" sort spec. Direction defaults to asc;
// a bare field name is accepted.
func (p Paginate) SortField() (field string, desc bool) {
	if p.Sort == "" {
		return "", false
	}
	parts := strings.SplitN(p.Sort, ":", 2)
	field = strings.TrimSpace(parts[0])
	if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[1]), "desc") {
		desc = true
	}
	return field, desc
}

// OrderClause renders the sort spec as a SQL ORDER BY clause, consulting the
// caller's column whitelist. An empty string means sort was absent or the
// field is not sortable.
func (p Paginate) OrderClause(allowed map[string]bool) string {
	field, desc := p.SortField()
	if field == "" || !allowed[field] {
		return ""
	}
	if desc {
		return field + " DESC"
	}
	return field + " ASC"
}
