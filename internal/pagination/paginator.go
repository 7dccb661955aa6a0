// Package pagination computes offset/page windows over collections.
package pagination

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultLimit is the page size used when the client sends no limit.
const DefaultLimit = 10

// AllLimit is the normalised "all items" limit.
const AllLimit = -1

// Errors returned for parameters the paginator cannot normalise.
var (
	ErrInvalidOffset = errors.New("invalid offset")
	ErrInvalidPage   = errors.New("invalid page")
	ErrInvalidLimit  = errors.New("invalid limit")
)

// ParamError names the query parameter that failed normalisation.
type ParamError struct {
	Param string
	Value any
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Err, e.Value)
}

func (e *ParamError) Unwrap() error { return e.Err }

// Window is the half open [Start, End) slice selected by the parameters.
// When Bounded is false the window runs through the last element.
type Window struct {
	Start   int
	End     int
	Bounded bool
}

// Limit is End-Start, or AllLimit for an unbounded window.
func (w Window) Limit() int {
	if !w.Bounded {
		return AllLimit
	}
	return w.End - w.Start
}

// Paginator holds the normalised parameters of one list request.
type Paginator struct {
	offset    int
	hasOffset bool
	page      int
	hasPage   bool
	limit     int
	all       bool

	window Window
}

// Option customises New.
type Option func(*config)

type config struct {
	defaultLimit int
}

// WithDefaultLimit overrides DefaultLimit.
func WithDefaultLimit(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.defaultLimit = n
		}
	}
}

// New normalises offset, page and limit and resolves the window. Each value
// may be nil, an integer, a pointer to an integer or a numeric string; limit
// additionally accepts -1, "-1" and "all".
//
// Offset wins over page. An "all" limit ignores page but keeps the offset.
func New(offset, page, limit any, opts ...Option) (*Paginator, error) {
	cfg := config{defaultLimit: DefaultLimit}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Paginator{}
	var err error

	if p.offset, p.hasOffset, err = normalize(offset); err != nil || (p.hasOffset && p.offset < 0) {
		return nil, &ParamError{Param: "offset", Value: offset, Err: ErrInvalidOffset}
	}
	if p.page, p.hasPage, err = normalize(page); err != nil || (p.hasPage && p.page < 0) {
		return nil, &ParamError{Param: "page", Value: page, Err: ErrInvalidPage}
	}

	switch {
	case isAll(limit):
		p.all = true
	default:
		var set bool
		p.limit, set, err = normalize(limit)
		if err != nil || (set && p.limit < 0) {
			return nil, &ParamError{Param: "limit", Value: limit, Err: ErrInvalidLimit}
		}
		if !set {
			p.limit = cfg.defaultLimit
		}
	}

	if err := p.checkBounds(); err != nil {
		return nil, err
	}

	p.window = p.resolve()
	return p, nil
}

// checkBounds rejects offsets and pages whose window end overflows int.
func (p *Paginator) checkBounds() error {
	if p.all {
		return nil
	}
	switch {
	case p.hasOffset:
		if p.offset > math.MaxInt-p.limit {
			return &ParamError{Param: "offset", Value: p.offset, Err: ErrInvalidOffset}
		}
	case p.hasPage && p.limit > 0:
		if p.page > math.MaxInt/p.limit-1 {
			return &ParamError{Param: "page", Value: p.page, Err: ErrInvalidPage}
		}
	}
	return nil
}

func (p *Paginator) resolve() Window {
	switch {
	case p.hasOffset && p.all:
		return Window{Start: p.offset}
	case p.hasOffset:
		return Window{Start: p.offset, End: p.offset + p.limit, Bounded: true}
	case p.all:
		return Window{}
	case p.hasPage:
		start := p.page * p.limit
		return Window{Start: start, End: start + p.limit, Bounded: true}
	default:
		return Window{End: p.limit, Bounded: true}
	}
}

// Window returns the resolved window.
func (p *Paginator) Window() Window { return p.window }

// Start is the first index of the window.
func (p *Paginator) Start() int { return p.window.Start }

// End is the exclusive end of the window and whether it is bounded.
func (p *Paginator) End() (int, bool) { return p.window.End, p.window.Bounded }

// Frame returns the window of items. The input slice is never modified; the
// result shares its backing array.
func Frame[T any](items []T, w Window) []T {
	start := min(max(w.Start, 0), len(items))
	end := len(items)
	if w.Bounded {
		end = min(w.End, len(items))
	}
	if end < start {
		end = start
	}
	return items[start:end:end]
}

func isAll(v any) bool {
	switch x := v.(type) {
	case int:
		return x == AllLimit
	case *int:
		return x != nil && *x == AllLimit
	case string:
		s := strings.TrimSpace(x)
		return s == "all" || s == "-1"
	}
	return false
}

// normalize returns the integer value and whether one was supplied.
func normalize(v any) (int, bool, error) {
	switch x := v.(type) {
	case nil:
		return 0, false, nil
	case int:
		return x, true, nil
	case int64:
		return int(x), true, nil
	case *int:
		if x == nil {
			return 0, false, nil
		}
		return *x, true, nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, false, fmt.Errorf("parse %q: %w", x, err)
		}
		return n, true, nil
	default:
		return 0, false, fmt.Errorf("unsupported type %T", v)
	}
}
