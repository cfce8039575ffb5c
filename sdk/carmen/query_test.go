package carmen

import (
	"net/url"
	"testing"
)

func decodeQuery(t *testing.T, encoded string) url.Values {
	t.Helper()
	values, err := url.ParseQuery(encoded)
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	return values
}

func TestListQuery_Encode(t *testing.T) {
	q := NewListQuery().
		Page(3).
		Perpage(25).
		Search("bangkok", "name", "code").
		Filter("cluster_id", 7).
		SortDesc("created_at")

	values := decodeQuery(t, q.Encode())

	if values.Get("page") != "3" {
		t.Errorf("page = %q", values.Get("page"))
	}
	if values.Get("perpage") != "25" {
		t.Errorf("perpage = %q", values.Get("perpage"))
	}
	if values.Get("search") != "bangkok" {
		t.Errorf("search = %q", values.Get("search"))
	}
	if values.Get("searchfields") != "name,code" {
		t.Errorf("searchfields = %q", values.Get("searchfields"))
	}
	if values.Get("filter") != `{"cluster_id":7}` {
		t.Errorf("filter = %q", values.Get("filter"))
	}
	if values.Get("sort") != "created_at:desc" {
		t.Errorf("sort = %q", values.Get("sort"))
	}
}

func TestListQuery_Advance(t *testing.T) {
	q := NewListQuery().Advance(
		AdvanceCondition{Field: "is_active", Operator: "eq", Value: true},
		AdvanceCondition{Field: "created_at", Operator: "gte", Value: "2026-01-01"},
	)

	values := decodeQuery(t, q.Encode())
	want := `[{"field":"is_active","operator":"eq","value":true},{"field":"created_at","operator":"gte","value":"2026-01-01"}]`
	if values.Get("advance") != want {
		t.Errorf("advance = %q", values.Get("advance"))
	}
}

func TestListQuery_Defaults(t *testing.T) {
	values := decodeQuery(t, NewListQuery().Encode())
	if values.Get("page") != "1" || values.Get("perpage") != "10" {
		t.Errorf("defaults = %v", values)
	}

	if got := (&ListQuery{}).Encode(); got != "" {
		t.Errorf("zero-value encode = %q, want empty", got)
	}
	if got := (*ListQuery)(nil).path("/api-system/users"); got != "/api-system/users" {
		t.Errorf("path = %q", got)
	}
}

func TestListQuery_PerpageAll(t *testing.T) {
	values := decodeQuery(t, NewListQuery().Perpage(PerpageAll).Encode())
	if values.Get("perpage") != "-1" {
		t.Errorf("perpage = %q", values.Get("perpage"))
	}
}

func TestListQuery_SearchWithoutFields(t *testing.T) {
	values := decodeQuery(t, NewListQuery().Search("admin").Encode())
	if values.Get("search") != "admin" {
		t.Errorf("search = %q", values.Get("search"))
	}
	if _, ok := values["searchfields"]; ok {
		t.Error("searchfields should be omitted")
	}
}
