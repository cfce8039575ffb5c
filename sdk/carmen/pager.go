package carmen

// Pager tracks the current position inside a server-side paginated listing.
// Feed it the Paginate block from each response and ask it where it can go.
type Pager struct {
	page    int
	perpage int
	total   int
}

// NewPager starts at page 1. perpage values below 1 fall back to 10.
func NewPager(perpage int) *Pager {
	if perpage < 1 {
		perpage = 10
	}
	return &Pager{page: 1, perpage: perpage}
}

// Apply records the paginate metadata from the latest response.
func (p *Pager) Apply(meta *Paginate) {
	if meta == nil {
		return
	}
	p.total = int(meta.Total)
	if meta.Page > 0 {
		p.page = meta.Page
	}
	if meta.Perpage > 0 {
		p.perpage = meta.Perpage
	}
}

func (p *Pager) Page() int    { return p.page }
func (p *Pager) Perpage() int { return p.perpage }
func (p *Pager) Total() int   { return p.total }

// TotalPages rounds up, so 47 rows at 10 per page is 5 pages.
// An empty result set still has one page.
func (p *Pager) TotalPages() int {
	if p.total <= 0 {
		return 1
	}
	pages := (p.total + p.perpage - 1) / p.perpage
	if pages < 1 {
		pages = 1
	}
	return pages
}

func (p *Pager) HasNext() bool { return p.page < p.TotalPages() }
func (p *Pager) HasPrev() bool { return p.page > 1 }

// Next advances one page and reports whether it moved.
func (p *Pager) Next() bool {
	if !p.HasNext() {
		return false
	}
	p.page++
	return true
}

// Prev steps back one page and reports whether it moved.
func (p *Pager) Prev() bool {
	if !p.HasPrev() {
		return false
	}
	p.page--
	return true
}

// GoTo jumps to page n, clamped into the valid range.
func (p *Pager) GoTo(n int) {
	if n < 1 {
		n = 1
	}
	if max := p.TotalPages(); n > max {
		n = max
	}
	p.page = n
}

// SetPerpage changes the page size and resets to the first page.
func (p *Pager) SetPerpage(perpage int) {
	if perpage < 1 {
		return
	}
	p.perpage = perpage
	p.page = 1
}

// Query builds a ListQuery positioned at the pager's current page.
func (p *Pager) Query() *ListQuery {
	return NewListQuery().Page(p.page).Perpage(p.perpage)
}
