package carmen

import "testing"

func TestPager_TotalPages(t *testing.T) {
	p := NewPager(10)
	p.Apply(&Paginate{Total: 47, Page: 1, Perpage: 10})

	if got := p.TotalPages(); got != 5 {
		t.Errorf("total pages = %d, want 5", got)
	}
	p.Apply(&Paginate{Total: 50, Page: 1, Perpage: 10})
	if got := p.TotalPages(); got != 5 {
		t.Errorf("total pages = %d, want 5", got)
	}
	p.Apply(&Paginate{Total: 0, Page: 1, Perpage: 10})
	if got := p.TotalPages(); got != 1 {
		t.Errorf("empty set total pages = %d, want 1", got)
	}
}

func TestPager_Navigation(t *testing.T) {
	p := NewPager(10)
	p.Apply(&Paginate{Total: 47, Page: 1, Perpage: 10})

	if p.HasPrev() {
		t.Error("first page should have no prev")
	}
	for i := 0; i < 10; i++ {
		p.Next()
	}
	if p.Page() != 5 {
		t.Errorf("page = %d, want 5", p.Page())
	}
	if p.HasNext() {
		t.Error("last page should have no next")
	}
	if p.Next() {
		t.Error("Next past the end should not move")
	}
	if !p.Prev() || p.Page() != 4 {
		t.Errorf("page after prev = %d, want 4", p.Page())
	}
}

func TestPager_GoToClamps(t *testing.T) {
	p := NewPager(10)
	p.Apply(&Paginate{Total: 47})

	p.GoTo(99)
	if p.Page() != 5 {
		t.Errorf("page = %d, want 5", p.Page())
	}
	p.GoTo(-3)
	if p.Page() != 1 {
		t.Errorf("page = %d, want 1", p.Page())
	}
}

func TestPager_SetPerpageResets(t *testing.T) {
	p := NewPager(10)
	p.Apply(&Paginate{Total: 47, Page: 4, Perpage: 10})

	p.SetPerpage(25)
	if p.Page() != 1 {
		t.Errorf("page = %d, want 1", p.Page())
	}
	if p.TotalPages() != 2 {
		t.Errorf("total pages = %d, want 2", p.TotalPages())
	}

	values := decodeQuery(t, p.Query().Encode())
	if values.Get("page") != "1" || values.Get("perpage") != "25" {
		t.Errorf("query = %v", values)
	}
}
