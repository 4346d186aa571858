package repository

const (
	DefaultPerPage = 15
	MaxPerPage     = 100
)

// PageRequest selects one page of a listing. Page starts at 1.
type PageRequest struct {
	Page    int
	PerPage int
}

func (r PageRequest) normalize() PageRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PerPage < 1 {
		r.PerPage = DefaultPerPage
	}
	if r.PerPage > MaxPerPage {
		r.PerPage = MaxPerPage
	}
	return r
}

func (r PageRequest) offset() int {
	return (r.Page - 1) * r.PerPage
}

// Page is one page of records with its position in the full listing.
type Page[T any] struct {
	Data        []T   `json:"data"`
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	LastPage    int   `json:"last_page"`
	From        int   `json:"from"`
	To          int   `json:"to"`
}

func newPage[T any](rows []T, total int64, req PageRequest) *Page[T] {
	last := int((total + int64(req.PerPage) - 1) / int64(req.PerPage))
	if last < 1 {
		last = 1
	}
	p := &Page[T]{
		Data:        rows,
		Total:       total,
		CurrentPage: req.Page,
		PerPage:     req.PerPage,
		LastPage:    last,
	}
	if len(rows) > 0 {
		p.From = req.offset() + 1
		p.To = req.offset() + len(rows)
	}
	return p
}

// HasPrev reports whether a previous page exists
func (p *Page[T]) HasPrev() bool {
	return p.CurrentPage > 1
}

// HasNext reports whether a next page exists
func (p *Page[T]) HasNext() bool {
	return p.CurrentPage < p.LastPage
}

// Map converts the page rows, keeping the pagination metadata.
func Map[T, R any](p *Page[T], fn func(T) R) *Page[R] {
	out := make([]R, 0, len(p.Data))
	for _, row := range p.Data {
		out = append(out, fn(row))
	}
	return &Page[R]{
		Data:        out,
		Total:       p.Total,
		CurrentPage: p.CurrentPage,
		PerPage:     p.PerPage,
		LastPage:    p.LastPage,
		From:        p.From,
		To:          p.To,
	}
}

// Whole wraps an unpaginated listing as a single page.
func Whole[T any](rows []T) *Page[T] {
	n := len(rows)
	p := &Page[T]{Data: rows, Total: int64(n), CurrentPage: 1, PerPage: n, LastPage: 1}
	if n > 0 {
		p.From, p.To = 1, n
	}
	return p
}
