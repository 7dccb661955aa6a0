package api

import (
	"net/http"

	"github.com/miphreal/drf-tweaks/internal/config"
	"github.com/miphreal/drf-tweaks/internal/pagination"
	"github.com/miphreal/drf-tweaks/internal/selection"
	"github.com/miphreal/drf-tweaks/internal/validation"
)

// Query parameters shared by list endpoints.
const (
	OrderingParam = "ordering"
	FieldsParam   = "fields"
)

// listQuery is the parsed collection query of a list endpoint.
type listQuery struct {
	paginator *pagination.Paginator
	ordering  []selection.Term
	fields    selection.Selection
}

// parseListQuery validates the pagination parameters and resolves ordering
// and field selection. Parameter failures come back as validation errors.
func parseListQuery(
	r *http.Request,
	cfg config.PaginationConfig,
	v *validation.Validator,
	ordering selection.Ordering,
	fieldset selection.Fieldset,
) (listQuery, error) {
	q := r.URL.Query()

	params, err := pagination.ParseParams(q, cfg.MaxLimit, v)
	if err != nil {
		return listQuery{}, err
	}
	p, err := params.Paginator(pagination.WithDefaultLimit(cfg.DefaultLimit))
	if err != nil {
		return listQuery{}, pagination.AsValidationError(err)
	}

	return listQuery{
		paginator: p,
		ordering:  selection.Terms(ordering.Resolve(selection.ParseTerms(q.Get(OrderingParam)))),
		fields:    fieldset.Resolve(q.Get(FieldsParam)),
	}, nil
}
