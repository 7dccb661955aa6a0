package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/miphreal/drf-tweaks/internal/api"
	apiMiddleware "github.com/miphreal/drf-tweaks/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(app.responder.Recoverer)

	r.NotFound(app.responder.NotFound)
	r.MethodNotAllowed(app.responder.MethodNotAllowed)

	r.Route("/api", api.Routes(api.Deps{
		Registry:      app.registry,
		Validator:     app.validator,
		Versions:      app.versions,
		Responder:     app.responder,
		Authenticator: app.authenticator,
		Clients:       app.clients,
		Audit:         app.audit,
		Pagination:    app.config.Pagination,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
