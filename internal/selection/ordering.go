// Package selection resolves client supplied sort terms and sparse
// fieldsets into internal field paths.
package selection

import "strings"

// PathSep separates nested field names internally.
const PathSep = "__"

// Ordering describes the sortable fields of a collection.
type Ordering struct {
	// Fields are the valid internal sort fields.
	Fields []string
	// Aliases map external names to internal sort fields.
	Aliases map[string]string
	// Default is used when no requested term survives.
	Default []string
}

// ParseTerms splits a comma separated ordering parameter.
func ParseTerms(raw string) []string {
	var terms []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// Resolve keeps valid terms, rewrites alias terms with their internal name
// (preserving a leading "-") and drops the rest. The default ordering is
// returned when nothing survives.
func (o Ordering) Resolve(terms []string) []string {
	valid := make(map[string]bool, len(o.Fields))
	for _, f := range o.Fields {
		valid[f] = true
	}

	var out []string
	for _, term := range terms {
		name := strings.TrimPrefix(term, "-")
		if valid[name] {
			out = append(out, term)
			continue
		}
		cleaned, _, _ := strings.Cut(strings.TrimLeft(term, "-"), PathSep)
		if internal, ok := o.Aliases[cleaned]; ok {
			sign := ""
			if strings.HasPrefix(term, "-") {
				sign = "-"
			}
			out = append(out, sign+internal)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), o.Default...)
	}
	return out
}

// Term is one resolved sort key.
type Term struct {
	Field string
	Desc  bool
}

// Terms converts resolved ordering strings into Terms.
func Terms(resolved []string) []Term {
	out := make([]Term, 0, len(resolved))
	for _, r := range resolved {
		name, desc := strings.CutPrefix(r, "-")
		out = append(out, Term{Field: name, Desc: desc})
	}
	return out
}
