package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/twitchauth/internal/idp/http"
	"github.com/aussiebroadwan/twitchauth/internal/idp/service"
	"github.com/aussiebroadwan/twitchauth/internal/idp/store"
	"github.com/aussiebroadwan/twitchauth/internal/idp/store/drivers/sqlite"
	"github.com/aussiebroadwan/twitchauth/pkg/cryptox"
	"github.com/aussiebroadwan/twitchauth/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application is the development identity provider with all its
// dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	tokenService        *service.TokenService
	clientService       *service.ClientService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New opens the store, seeds the configured client and builds the server.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "twitch-idp",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()

	if err := app.seedClient(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to seed client: %w", err)
	}

	app.initHTTP()
	return app, nil
}

// Handler exposes the router, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("identity provider starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains requests, stops housekeeping and closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down identity provider...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("identity provider stopped")
	return nil
}

func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(app.cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initServices() {
	hasher := cryptox.SecretHasher{Pepper: app.cfg.Pepper}

	app.tokenService = &service.TokenService{
		Store:     app.db,
		Hasher:    hasher,
		AccessTTL: app.cfg.TokenTTL,
	}
	app.clientService = &service.ClientService{
		Store:  app.db,
		Hasher: hasher,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// seedClient ensures the configured client exists. Without one, a client is
// generated on first start and its credentials printed once.
func (app *Application) seedClient(ctx context.Context) error {
	ctx = slogx.WithContext(ctx, app.logger)
	seed := app.cfg.Seed

	if seed.ID != "" {
		return app.clientService.EnsureClient(ctx, seed.ID, seed.Name, seed.Secret, seed.Scopes)
	}

	existing, err := app.clientService.ListClients(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		app.logger.Info("using existing clients", "count", len(existing))
		return nil
	}

	id, secret, err := app.clientService.CreateClient(ctx, seed.Name, seed.Scopes)
	if err != nil {
		return err
	}

	out := app.cfg.Stdout
	if out == nil {
		out = os.Stdout
	}
	_, err = fmt.Fprintf(out, "TWITCH_CLIENT_ID=%s\nTWITCH_CLIENT_SECRET=%s\n", id, secret)
	return err
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.cfg.Limits, app.logger)
	router.TokenService = app.tokenService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
