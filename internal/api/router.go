package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/miphreal/drf-tweaks/internal/api/middleware"
	"github.com/miphreal/drf-tweaks/internal/casing"
	"github.com/miphreal/drf-tweaks/internal/codes"
	"github.com/miphreal/drf-tweaks/internal/config"
	"github.com/miphreal/drf-tweaks/internal/domain"
	"github.com/miphreal/drf-tweaks/internal/events"
	"github.com/miphreal/drf-tweaks/internal/render"
	"github.com/miphreal/drf-tweaks/internal/service/auth"
	"github.com/miphreal/drf-tweaks/internal/validation"
	"github.com/miphreal/drf-tweaks/internal/versioning"
)

// Authenticator opens sessions and resolves bearer tokens.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*auth.Session, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// Deps are the collaborators of the client API.
type Deps struct {
	Registry      *codes.Registry
	Validator     *validation.Validator
	Versions      *versioning.Resolver
	Responder     *render.Responder
	Authenticator Authenticator
	// Clients is optional; nil disables client version gating.
	Clients *middleware.ClientGate
	// Audit is optional; nil disables the auth audit trail.
	Audit      events.EventEmitter
	Pagination config.PaginationConfig
}

// Routes registers the API on a router, typically mounted at /api. Every
// endpoint is served both unversioned (default version) and under
// /{version}/.
func Routes(d Deps) func(chi.Router) {
	authMiddleware := middleware.NewAuthMiddleware(d.Authenticator, d.Responder)
	authHandler := NewAuthHandler(d.Authenticator, d.Validator, d.Responder, d.Audit)
	codesHandler := NewCodesHandler(d.Registry, d.Validator, d.Responder, d.Pagination)
	testHandler := NewTestHandler(d.Responder)

	endpoints := func(r chi.Router) {
		r.Use(middleware.Versioning(d.Versions, d.Responder))

		r.Method(http.MethodGet, "/test", testHandler)

		r.Get("/codes", codesHandler.List)
		r.Get("/codes/{name}", codesHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Identify)
			r.Get("/login", authHandler.Status)
			r.Post("/login", authHandler.Login)
			r.Get("/logout", authHandler.Logout)
			r.Post("/logout", authHandler.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/me", authHandler.Me)
		})
	}

	return func(r chi.Router) {
		r.Use(casing.QueryMiddleware)
		if d.Clients != nil {
			r.Use(d.Clients.Middleware)
		}

		r.Group(endpoints)
		r.Route("/{"+versioning.Param+":[0-9][0-9.]*}", endpoints)
	}
}
