// Package versioning resolves the API version of a request.
package versioning

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hashicorp/go-version"
	"github.com/miphreal/drf-tweaks/internal/config"
	"github.com/miphreal/drf-tweaks/internal/domain"
)

// Param is the name of both the URL parameter and the media type parameter.
const Param = "version"

// Policy lists the versions an API serves.
type Policy struct {
	Default    string
	Allowed    []string
	Deprecated []string
	// Pending maps versions scheduled for removal to the date they are
	// maintained until.
	Pending map[string]string
}

// PolicyFromConfig builds a Policy from the versioning configuration.
// Versions pending deprecation stay served.
func PolicyFromConfig(cfg config.VersioningConfig) Policy {
	p := Policy{
		Default:    cfg.DefaultVersion,
		Allowed:    cfg.AllowedVersions,
		Deprecated: cfg.DeprecatedVersions,
	}
	if len(cfg.PendingDeprecation) > 0 {
		p.Pending = make(map[string]string, len(cfg.PendingDeprecation))
		for _, pv := range cfg.PendingDeprecation {
			p.Pending[pv.Version] = pv.Until
		}
	}
	return p
}

// Resolver applies a Policy to incoming requests.
type Resolver struct {
	policy     Policy
	allowed    map[string]bool
	deprecated map[string]bool
}

// NewResolver validates every version in p.
func NewResolver(p Policy) (*Resolver, error) {
	if p.Default == "" {
		return nil, fmt.Errorf("default version is required")
	}
	all := append([]string{p.Default}, p.Allowed...)
	all = append(all, p.Deprecated...)
	for v := range p.Pending {
		all = append(all, v)
	}
	for _, v := range all {
		if _, err := version.NewVersion(v); err != nil {
			return nil, fmt.Errorf("invalid version %q: %w", v, err)
		}
	}

	r := &Resolver{
		policy:     p,
		allowed:    make(map[string]bool, len(p.Allowed)+1),
		deprecated: make(map[string]bool, len(p.Deprecated)),
	}
	r.allowed[p.Default] = true
	for _, v := range p.Allowed {
		r.allowed[v] = true
	}
	for v := range p.Pending {
		r.allowed[v] = true
	}
	for _, v := range p.Deprecated {
		r.deprecated[v] = true
	}
	return r, nil
}

// Determine returns the version requested by r. The URL parameter wins over
// the "version" parameter of the Accept media type; without either the
// default applies. Unknown versions fail with NotFound, deprecated ones with
// ApiDeprecated.
func (res *Resolver) Determine(r *http.Request) (string, error) {
	v := chi.URLParam(r, Param)
	if v == "" {
		v = acceptVersion(r.Header.Get("Accept"))
	}
	if v == "" {
		return res.policy.Default, nil
	}
	if res.allowed[v] {
		return v, nil
	}
	if res.deprecated[v] {
		return "", domain.NewApiDeprecated(fmt.Sprintf("%s version of %s API is DEPRECATED.", v, r.URL.Path))
	}
	return "", domain.NewNotFound(fmt.Sprintf("%s version of %s API is not found.", v, r.URL.Path))
}

// PendingWarning returns the Warning header value for versions pending
// deprecation.
func (res *Resolver) PendingWarning(v string) (string, bool) {
	until, ok := res.policy.Pending[v]
	if !ok {
		return "", false
	}
	return fmt.Sprintf(`299 - "Pending Deprecation: maintained until %s"`, until), true
}

// Default is the version used when a request names none.
func (res *Resolver) Default() string { return res.policy.Default }

func acceptVersion(accept string) string {
	for _, part := range strings.Split(accept, ",") {
		_, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if v := params[Param]; v != "" {
			return v
		}
	}
	return ""
}

// Check reports whether v satisfies constraint, e.g. ">= 1.1". Unparseable
// input never matches.
func Check(v, constraint string) bool {
	parsed, err := version.NewVersion(v)
	if err != nil {
		return false
	}
	c, err := version.NewConstraint(constraint)
	if err != nil {
		return false
	}
	return c.Check(parsed)
}

type contextKey struct{}

// WithVersion stores the resolved version in ctx.
func WithVersion(ctx context.Context, v string) context.Context {
	return context.WithValue(ctx, contextKey{}, v)
}

// FromContext returns the resolved version, or "" outside a versioned route.
func FromContext(ctx context.Context) string {
	v, _ := ctx.Value(contextKey{}).(string)
	return v
}

// FinallyDeprecatedOn logs a deprecation notice for code that is removed on
// the given day (YYYY-MM-DD). Before that day the notice is a pending
// deprecation logged at INFO; afterwards it is logged at WARN.
func FinallyDeprecatedOn(ctx context.Context, log *slog.Logger, when, message string, now time.Time) error {
	day, err := time.Parse(time.DateOnly, when)
	if err != nil {
		return fmt.Errorf("parse deprecation day: %w", err)
	}
	if day.After(now.UTC()) {
		log.InfoContext(ctx, message, slog.String("category", "PendingDeprecationWarning"), slog.String("until", when))
		return nil
	}
	log.WarnContext(ctx, message, slog.String("category", "DeprecationWarning"), slog.String("since", when))
	return nil
}
