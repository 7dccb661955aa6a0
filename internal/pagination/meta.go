package pagination

// Meta is the pagination block of a list response envelope.
type Meta struct {
	Count  *int `json:"count"`
	Limit  int  `json:"limit"`
	Page   int  `json:"page"`
	Offset int  `json:"offset"`
}

// NewMeta describes w. Count is nil unless the caller opted into totals.
// Page is offset/limit rounded down, and 0 when either is 0 or the window is
// unbounded.
func NewMeta(w Window, count *int) Meta {
	limit := w.Limit()
	page := 0
	if w.Start > 0 && limit > 0 {
		page = w.Start / limit
	}
	return Meta{Count: count, Limit: limit, Page: page, Offset: w.Start}
}

// Page is a frame of items together with its meta.
type Page[T any] struct {
	Items []T
	Meta  Meta
}

// Paginate slices items by p. When withCount is set the total number of items
// is reported in the meta.
func Paginate[T any](items []T, p *Paginator, withCount bool) Page[T] {
	var count *int
	if withCount {
		n := len(items)
		count = &n
	}
	w := p.Window()
	return Page[T]{Items: Frame(items, w), Meta: NewMeta(w, count)}
}
