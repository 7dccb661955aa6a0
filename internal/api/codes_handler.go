package api

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/miphreal/drf-tweaks/internal/codes"
	"github.com/miphreal/drf-tweaks/internal/config"
	"github.com/miphreal/drf-tweaks/internal/domain"
	"github.com/miphreal/drf-tweaks/internal/pagination"
	"github.com/miphreal/drf-tweaks/internal/render"
	"github.com/miphreal/drf-tweaks/internal/selection"
	"github.com/miphreal/drf-tweaks/internal/validation"
)

var codeOrdering = selection.Ordering{
	Fields:  []string{"value", "name"},
	Aliases: map[string]string{"code": "value"},
	Default: []string{"value"},
}

var codeFields = selection.Fieldset{
	Groups:  map[string][]string{"summary": {"value", "name"}},
	Aliases: map[string]string{"code": "value"},
}

// CodesHandler exposes the response code catalogue.
type CodesHandler struct {
	registry   *codes.Registry
	validator  *validation.Validator
	responder  *render.Responder
	pagination config.PaginationConfig
}

// NewCodesHandler creates a CodesHandler.
func NewCodesHandler(
	registry *codes.Registry,
	validator *validation.Validator,
	responder *render.Responder,
	cfg config.PaginationConfig,
) *CodesHandler {
	return &CodesHandler{
		registry:   registry,
		validator:  validator,
		responder:  responder,
		pagination: cfg,
	}
}

// List handles GET /codes. It supports offset/page/limit pagination,
// ordering by value or name and sparse fields.
func (h *CodesHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r, h.pagination, h.validator, codeOrdering, codeFields)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}

	list := h.registry.Codes()
	sortCodes(list, q.ordering)

	page := pagination.Paginate(list, q.paginator, true)
	rows := make([]map[string]any, 0, len(page.Items))
	for _, c := range page.Items {
		rows = append(rows, codeRow(c, q.fields))
	}

	h.responder.Respond(w, r, rows, render.WithMeta(page.Meta))
}

// Get handles GET /codes/{name}. The name may also be the numeric value.
func (h *CodesHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	c, ok := h.registry.ByName(name)
	if !ok {
		if value, err := strconv.Atoi(name); err == nil {
			c, ok = h.registry.ByValue(value)
		}
	}
	if !ok {
		h.responder.Error(w, r, domain.NewNotFound(""))
		return
	}

	h.responder.Respond(w, r, codeRow(c, codeFields.Resolve(r.URL.Query().Get(FieldsParam))))
}

func codeRow(c codes.Code, sel selection.Selection) map[string]any {
	row := map[string]any{
		"value": c.Value(),
		"name":  c.Name(),
	}
	if sel.IsFetchable("message") {
		if msg, ok := c.Message(); ok {
			row["message"] = msg
		} else {
			row["message"] = nil
		}
	}
	if c.HasData() && sel.IsFetchable("data") {
		row["data"] = sel.Under("data").Filter(c.Data())
	}
	if sub := c.Subcode(); sub != "" && sel.IsFetchable("subcode") {
		row["subcode"] = sub
	}
	if sel.External["code"] {
		row["code"] = c.Value()
	}
	return sel.Filter(row)
}

func sortCodes(list []codes.Code, terms []selection.Term) {
	sort.SliceStable(list, func(i, j int) bool {
		for _, t := range terms {
			cmp := compareCodes(list[i], list[j], t.Field)
			if cmp == 0 {
				continue
			}
			if t.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

func compareCodes(a, b codes.Code, field string) int {
	switch field {
	case "name":
		return strings.Compare(a.Name(), b.Name())
	default:
		return a.Value() - b.Value()
	}
}
