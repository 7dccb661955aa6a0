package casing

import (
	"regexp"
	"strings"
)

var (
	firstCap = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	allCap   = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// Underscore converts a camelCase name to snake_case:
// "userName" → "user_name", "HTTPServer" → "http_server".
func Underscore(name string) string {
	s := firstCap.ReplaceAllString(name, "${1}_${2}")
	s = allCap.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}

// Underscoreize rewrites map keys recursively through maps and slices.
func Underscoreize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[Underscore(k)] = Underscoreize(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = Underscoreize(val)
		}
		return out
	default:
		return v
	}
}
