package middleware

import (
	"net/http"

	"github.com/miphreal/drf-tweaks/internal/render"
	"github.com/miphreal/drf-tweaks/internal/versioning"
)

// Versioning resolves the API version of each request and stores it in the
// context. It must run inside the route that declares the {version} URL
// parameter. Unknown and deprecated versions are rendered as errors.
func Versioning(resolver *versioning.Resolver, responder *render.Responder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v, err := resolver.Determine(r)
			if err != nil {
				responder.Error(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(versioning.WithVersion(r.Context(), v)))
		})
	}
}
