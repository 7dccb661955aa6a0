package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/miphreal/drf-tweaks/internal/api/middleware"
	"github.com/miphreal/drf-tweaks/internal/codes"
	"github.com/miphreal/drf-tweaks/internal/config"
	"github.com/miphreal/drf-tweaks/internal/events"
	"github.com/miphreal/drf-tweaks/internal/render"
	"github.com/miphreal/drf-tweaks/internal/service/auth"
	"github.com/miphreal/drf-tweaks/internal/store"
	"github.com/miphreal/drf-tweaks/internal/validation"
	"github.com/miphreal/drf-tweaks/internal/versioning"
)

// application holds the shared dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger

	registry  *codes.Registry
	validator *validation.Validator
	versions  *versioning.Resolver
	responder *render.Responder

	userStore     store.UserStore
	jwtService    auth.JWTService
	authenticator *auth.Authenticator
	clients       *middleware.ClientGate
	audit         *events.InMemoryEventEmitter
}

// newApplication wires every component from cfg and seeds the user store.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config:    cfg,
		logger:    logger,
		validator: validation.New(),
	}

	var err error
	app.registry, err = newRegistry(codes.All())
	if err != nil {
		return nil, err
	}

	app.versions, err = versioning.NewResolver(versioning.PolicyFromConfig(cfg.Versioning))
	if err != nil {
		return nil, fmt.Errorf("failed to configure versioning: %w", err)
	}

	renderer := render.New(app.registry, render.WithDebug(cfg.Server.Debug))
	app.responder = render.NewResponder(renderer, app.versions)

	users := store.NewMemoryUserStore()
	if err := store.Seed(ctx, users, cfg.Auth.Users); err != nil {
		return nil, fmt.Errorf("failed to seed users: %w", err)
	}
	app.userStore = users
	logger.Info("user store seeded", "users", len(cfg.Auth.Users))

	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.authenticator = auth.NewAuthenticator(app.userStore, auth.NewBcryptVerifier(), app.jwtService, logger)

	app.audit = events.NewInMemoryEventEmitter(logger)
	app.audit.RegisterHandler(events.NewLogHandler(logger))

	app.clients, err = middleware.NewClientGate(cfg.Clients)
	if err != nil {
		return nil, fmt.Errorf("failed to configure client gate: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

// Run serves HTTP until ctx is canceled or a termination signal arrives.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources after shutdown.
func (app *application) cleanup() {
	app.logger.Info("application resources released")
}

// newRegistry builds the code registry, reporting every colliding code.
func newRegistry(list []codes.Code) (*codes.Registry, error) {
	registry, err := codes.NewRegistry(list, codes.ExceptionNames(), codes.ValidationAliases())
	if err != nil {
		return nil, fmt.Errorf("invalid code catalog: %w", err)
	}
	return registry, nil
}
