package query

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carmen-hq/carmen/internal/shared/constants"
)

func TestValuesOmitsEmptyMembers(t *testing.T) {
	p := New()
	values := p.Values()

	assert.Equal(t, "1", values.Get("page"))
	assert.Equal(t, "10", values.Get("perpage"))
	_, hasSearch := values["search"]
	assert.False(t, hasSearch, "empty search must be omitted entirely")
	_, hasFilter := values["filter"]
	assert.False(t, hasFilter)
	_, hasSort := values["sort"]
	assert.False(t, hasSort)
	_, hasAdvance := values["advance"]
	assert.False(t, hasAdvance)
}

func TestFilterRoundTrip(t *testing.T) {
	p := New()
	p.Filter = map[string]any{"is_active": true, "cluster_id": float64(7)}

	parsed, err := url.ParseQuery(p.Encode())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(parsed.Get("filter")), &got))
	assert.Equal(t, p.Filter, got)
}

func TestFromValuesDefaults(t *testing.T) {
	p, err := FromValues(url.Values{}, nil)
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultPage, p.Page)
	assert.Equal(t, constants.DefaultPerpage, p.Perpage)
	assert.Empty(t, p.Search)
}

func TestFromValuesSearchFieldFallback(t *testing.T) {
	defaults := []string{"code", "name"}

	values := url.Values{}
	values.Set("search", "bangkok")
	p, err := FromValues(values, defaults)
	require.NoError(t, err)
	assert.Equal(t, defaults, p.SearchFields)

	values.Set("searchfields", "alias_name , code")
	p, err = FromValues(values, defaults)
	require.NoError(t, err)
	assert.Equal(t, []string{"alias_name", "code"}, p.SearchFields)
}

func TestFromValuesPerpage(t *testing.T) {
	tests := []struct {
		name    string
		perpage string
		want    int
	}{
		{"default when absent", "", constants.DefaultPerpage},
		{"default on garbage", "abc", constants.DefaultPerpage},
		{"default on zero", "0", constants.DefaultPerpage},
		{"sentinel fetch all", "-1", constants.PerpageAll},
		{"capped at max", "500", constants.MaxPerpage},
		{"kept when valid", "25", 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			if tt.perpage != "" {
				values.Set("perpage", tt.perpage)
			}
			p, err := FromValues(values, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Perpage)
		})
	}
}

func TestFromValuesRejectsMalformedFilter(t *testing.T) {
	values := url.Values{}
	values.Set("filter", "{not json")
	_, err := FromValues(values, nil)
	assert.Error(t, err)
}

func TestFromValuesAdvance(t *testing.T) {
	values := url.Values{}
	values.Set("advance", `[{"field":"created_at","operator":"gte","value":"2026-01-01"}]`)
	p, err := FromValues(values, nil)
	require.NoError(t, err)
	require.Len(t, p.Advance, 1)
	assert.Equal(t, "created_at", p.Advance[0].Field)
	assert.Equal(t, "gte", p.Advance[0].Operator)

	values.Set("advance", `[{"field":"created_at","operator":"between","value":1}]`)
	_, err = FromValues(values, nil)
	assert.Error(t, err, "unknown operator must be rejected")
}

func TestOffsetLimit(t *testing.T) {
	p := Paginate{Page: 3, Perpage: 20}
	assert.Equal(t, 40, p.Offset())
	assert.Equal(t, 20, p.Limit())

	all := Paginate{Page: 5, Perpage: constants.PerpageAll}
	assert.Equal(t, 0, all.Offset())
	assert.Equal(t, -1, all.Limit())
	assert.True(t, all.FetchAll())
}

func TestOrderClause(t *testing.T) {
	allowed := map[string]bool{"code": true, "created_at": true}

	tests := []struct {
		sort string
		want string
	}{
		{"", ""},
		{"code:asc", "code ASC"},
		{"code:desc", "code DESC"},
		{"code", "code ASC"},
		{"created_at:DESC", "created_at DESC"},
		{"password_hash:asc", ""},
	}
	for _, tt := range tests {
		p := Paginate{Sort: tt.sort}
		assert.Equal(t, tt.want, p.OrderClause(allowed), "sort=%q", tt.sort)
	}
}
