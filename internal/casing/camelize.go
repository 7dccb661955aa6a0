// Package casing converts field names between snake_case and camelCase.
package casing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"regexp"
	"slices"
)

var snakeJoint = regexp.MustCompile(`[a-z]_[a-z]`)

// CamelKey rewrites every "x_y" joint of key into "xY". Matches do not
// overlap, so "a_b_c" becomes "aB_c"; keys without a joint pass through.
func CamelKey(key string) string {
	return snakeJoint.ReplaceAllStringFunc(key, func(m string) string {
		return m[:1] + string(m[2]-'a'+'A')
	})
}

// Camelize rewrites map keys recursively through maps and slices. Values of
// other types, including structs, are returned unchanged; use CamelizeJSON
// for arbitrary values.
//
// When two keys camelize to the same name, a key that is already camel case
// wins; otherwise the key sorting last wins.
func Camelize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		keys := slices.Sorted(maps.Keys(x))
		for _, k := range keys {
			if ck := CamelKey(k); ck != k {
				out[ck] = Camelize(x[k])
			}
		}
		for _, k := range keys {
			if CamelKey(k) == k {
				out[k] = Camelize(x[k])
			}
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = Camelize(val)
		}
		return out
	case []map[string]any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = Camelize(val)
		}
		return out
	default:
		return v
	}
}

// CamelizeJSON marshals v into its generic JSON form and camelizes it.
// Numbers keep their exact textual representation.
func CamelizeJSON(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("camelize: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("camelize: %w", err)
	}
	return Camelize(generic), nil
}
