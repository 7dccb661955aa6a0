package pagination

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/miphreal/drf-tweaks/internal/codes"
	"github.com/miphreal/drf-tweaks/internal/validation"
)

// Query parameter names.
const (
	OffsetParam = "offset"
	PageParam   = "page"
	LimitParam  = "limit"
)

// Params are the pagination query parameters after validation. Nil means the
// parameter was not sent.
type Params struct {
	Offset *int
	Page   *int
	Limit  *int
}

// ParseParams reads offset, page and limit from q and validates them:
// offset and page must be >= 0, limit must be in [-1, maxLimit]. "all" is
// accepted for limit. Failures for every parameter are collected into one
// *validation.Error keyed by parameter name.
func ParseParams(q url.Values, maxLimit int, v *validation.Validator) (Params, error) {
	detail := &validation.Errors{}
	var p Params

	p.Offset = parseInt(q, OffsetParam, detail)
	p.Page = parseInt(q, PageParam, detail)
	if strings.TrimSpace(q.Get(LimitParam)) == "all" {
		all := AllLimit
		p.Limit = &all
	} else {
		p.Limit = parseInt(q, LimitParam, detail)
	}

	checks := []struct {
		name  string
		value *int
		tag   string
	}{
		{OffsetParam, p.Offset, "min=0"},
		{PageParam, p.Page, "min=0"},
		{LimitParam, p.Limit, fmt.Sprintf("min=%d,max=%d", AllLimit, maxLimit)},
	}
	for _, c := range checks {
		if c.value == nil {
			continue
		}
		if err := v.Var(c.name, *c.value, c.tag); err != nil {
			ve, ok := validation.AsError(err)
			if !ok {
				return Params{}, err
			}
			detail.Merge("", ve.Detail)
		}
	}

	if !detail.Empty() {
		return Params{}, &validation.Error{Detail: detail}
	}
	return p, nil
}

// Paginator builds the paginator for p.
func (p Params) Paginator(opts ...Option) (*Paginator, error) {
	return New(p.Offset, p.Page, p.Limit, opts...)
}

func parseInt(q url.Values, name string, detail *validation.Errors) *int {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		detail.Add(name, validation.Token("A valid integer is required.", codes.AliasInvalid))
		return nil
	}
	return &n
}

// AsValidationError converts a paginator error into a field validation error
// on the offending parameter. Other errors are returned unchanged.
func AsValidationError(err error) error {
	var pe *ParamError
	if !errors.As(err, &pe) {
		return err
	}
	msg := "A valid integer is required."
	if errors.Is(err, ErrInvalidLimit) {
		msg = `A valid integer or "all" is required.`
	}
	return validation.FieldError(pe.Param, msg, codes.AliasInvalid)
}
