package selection

import "strings"

// Fieldset configures sparse field selection for a resource.
type Fieldset struct {
	// Defaults are selected when the client does not send "fields".
	Defaults []string
	// Groups map a fieldset name to the fields it stands for.
	Groups map[string][]string
	// Aliases map external field names to internal ones.
	Aliases map[string]string
}

// Selection is the resolved set of requested fields. External keeps the
// client facing names; Internal additionally carries alias targets. Both are
// empty when nothing was requested, which selects everything.
type Selection struct {
	External map[string]bool
	Internal map[string]bool
}

// Resolve parses a comma separated "fields" parameter. Dotted paths are
// converted to PathSep paths and every path selects its ancestors too.
func (fs Fieldset) Resolve(raw string) Selection {
	raw = strings.ReplaceAll(raw, ".", PathSep)

	var requested []string
	if raw != "" {
		requested = strings.Split(raw, ",")
	} else {
		requested = fs.Defaults
	}

	selected := make(map[string]bool)
	for _, f := range requested {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		parts := strings.Split(f, PathSep)
		for i := len(parts); i > 0; i-- {
			selected[strings.Join(parts[:i], PathSep)] = true
		}
	}

	for name, members := range fs.Groups {
		if !selected[name] {
			continue
		}
		delete(selected, name)
		for _, m := range members {
			selected[m] = true
		}
	}

	external := make(map[string]bool, len(selected))
	for f := range selected {
		external[f] = true
	}
	for alias, internal := range fs.Aliases {
		if external[alias] {
			selected[internal] = true
		}
	}

	return Selection{External: external, Internal: selected}
}

// Empty reports whether nothing was selected.
func (s Selection) Empty() bool { return len(s.Internal) == 0 }

// IsFetchable reports whether the internal field should be loaded. An empty
// selection fetches everything.
func (s Selection) IsFetchable(field string) bool {
	return s.Empty() || s.Internal[field]
}

// Has reports whether the external field should be rendered. An empty
// selection renders everything.
func (s Selection) Has(field string) bool {
	return len(s.External) == 0 || s.External[field]
}

// Under narrows the external selection to the children of prefix, with the
// prefix stripped. An empty result means "everything below prefix".
func (s Selection) Under(prefix string) Selection {
	p := prefix + PathSep
	out := Selection{External: map[string]bool{}, Internal: map[string]bool{}}
	for f := range s.External {
		if rest, ok := strings.CutPrefix(f, p); ok {
			out.External[rest] = true
		}
	}
	for f := range s.Internal {
		if rest, ok := strings.CutPrefix(f, p); ok {
			out.Internal[rest] = true
		}
	}
	return out
}

// Filter keeps the keys of row that are selected.
func (s Selection) Filter(row map[string]any) map[string]any {
	if len(s.External) == 0 {
		return row
	}
	out := make(map[string]any, len(row))
	for k, v := range row {
		if s.External[k] {
			out[k] = v
		}
	}
	return out
}
