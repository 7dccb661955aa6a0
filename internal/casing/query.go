package casing

import (
	"net/http"
	"net/url"
)

// ValueParams are the query parameters whose values name fields and are
// converted along with the keys.
var ValueParams = map[string]bool{
	"ordering": true,
	"fields":   true,
}

// UnderscoreQuery converts query keys to snake_case, and the values of
// ValueParams as well. Keys that collide after conversion share one entry.
func UnderscoreQuery(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for key, values := range q {
		name := Underscore(key)
		for _, v := range values {
			if ValueParams[name] {
				v = Underscore(v)
			}
			out[name] = append(out[name], v)
		}
	}
	return out
}

// QueryMiddleware rewrites the request query string to snake_case before
// handlers read it.
func QueryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			u := *r.URL
			u.RawQuery = UnderscoreQuery(r.URL.Query()).Encode()
			r2 := r.Clone(r.Context())
			r2.URL = &u
			r = r2
		}
		next.ServeHTTP(w, r)
	})
}
