// Naviguard - headless authentication and navigation runtime
//
// This binary wires the full client runtime together and walks it through a
// demonstration session against the embedded development API server: an
// unauthenticated navigation attempt, a login, role-gated route
// registration, a denied route falling through to the catch-all, and a
// logout.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/qszone/naviguard/migrations"

	"github.com/qszone/naviguard/internal/api"
	"github.com/qszone/naviguard/internal/devserver"
	"github.com/qszone/naviguard/internal/guard"
	"github.com/qszone/naviguard/internal/httpclient"
	"github.com/qszone/naviguard/internal/infrastructure/config"
	"github.com/qszone/naviguard/internal/infrastructure/database"
	"github.com/qszone/naviguard/internal/infrastructure/logging"
	"github.com/qszone/naviguard/internal/router"
	"github.com/qszone/naviguard/internal/routes"
	"github.com/qszone/naviguard/internal/session"
	"github.com/qszone/naviguard/internal/storage"
)

// Version information - set at build time via ldflags
var (
	version = "dev"
	commit  = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context) error {
	log := logging.Default()
	log.Info("starting naviguard", "version", version, "commit", commit)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)

	// Open the persistent storage medium
	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Storage.Path,
		WALMode:     cfg.Storage.WALMode,
		BusyTimeout: cfg.Storage.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("storage ready", "path", cfg.Storage.Path)

	// Start the embedded development API server
	srv, err := devserver.New(devserver.Deps{Config: cfg.Server, Logger: log})
	if err != nil {
		return fmt.Errorf("creating development server: %w", err)
	}
	if startErr := srv.Start(ctx); startErr != nil {
		return fmt.Errorf("starting development server: %w", startErr)
	}
	defer func() {
		if closeErr := srv.Close(); closeErr != nil {
			log.Error("error closing development server", "error", closeErr)
		}
	}()

	baseURL := cfg.HTTP.BaseURL
	if baseURL == "" {
		baseURL = srv.BaseURL()
	}

	// Assemble the client runtime: storage, session, pipeline, router, guards
	store := storage.New(storage.NewSQLiteMedium(db), cfg.Storage.Prefix)
	sess := session.New(session.NewTokenStore(store, cfg.Auth.TokenKey, cfg.TokenTTL()))
	table := routes.NewTable(routes.BasicRoutes, routes.AsyncRoutes)
	rt := router.New(routes.BasicRoutes, log)

	client, err := httpclient.New(httpclient.Options{
		BaseURL: baseURL,
		Timeout: cfg.RequestTimeout(),
		Tokens:  sess,
		Exempt:  []httpclient.Endpoint{api.LoginEndpoint},
		OnUnauthenticated: func() {
			// Runs on the caller's goroutine during Do; navigating here
			// directly would deadlock when the caller is itself a guard.
			log.Warn("request aborted: no credential", "login", cfg.App.LoginPath)
		},
		Logger: log,
	})
	if err != nil {
		return fmt.Errorf("creating HTTP client: %w", err)
	}

	authAPI := api.NewAuthAPI(client)
	userAPI := api.NewUserAPI(client)

	chrome := guard.NewLogChrome(log)
	guard.Setup(rt, guard.Deps{
		Session:   sess,
		Users:     userAPI,
		Table:     table,
		Indicator: chrome,
		Titles:    chrome,
		Notifier:  guard.NewLogNotifier(log),
		Logger:    log,
		BaseTitle: cfg.App.Title,
		Paths: guard.Paths{
			Login:     cfg.App.LoginPath,
			Home:      cfg.App.HomePath,
			Whitelist: cfg.App.Whitelist,
		},
	})

	return demo(ctx, log, rt, sess, authAPI, table)
}

// demo walks the assembled runtime through a representative session.
func demo(
	ctx context.Context,
	log *logging.Logger,
	rt *router.Router,
	sess *session.Session,
	authAPI *api.AuthAPI,
	table *routes.Table,
) error {
	// Unauthenticated: a protected target bounces to the login page.
	if err := rt.Push(ctx, "/page1"); err != nil {
		return fmt.Errorf("initial navigation: %w", err)
	}
	log.Info("before login", "current", rt.Current())

	// Log in as the admin fixture.
	login, res := authAPI.Login(ctx, "admin", "123456")
	if !res.OK() {
		return fmt.Errorf("login failed: %s", res.Message)
	}
	if err := sess.SetToken(login.Token); err != nil {
		return fmt.Errorf("storing credential: %w", err)
	}
	log.Info("logged in", "user", "admin")

	// The first protected navigation fetches the principal and registers
	// the role-gated routes, then lands on the original target.
	if err := rt.Push(ctx, "/page1"); err != nil {
		return fmt.Errorf("navigating after login: %w", err)
	}
	log.Info("after login", "current", rt.Current())

	for _, m := range table.Menus() {
		log.Info("menu entry", "name", m.Name, "path", m.Path, "title", m.Meta.Title)
	}

	// An editor-only route is unreachable for admin: the catch-all takes it.
	if err := rt.Push(ctx, "/page2"); err != nil {
		return fmt.Errorf("navigating to denied route: %w", err)
	}
	log.Info("denied route resolved", "current", rt.Current())

	// Log out: the session resets and protected targets bounce again.
	if err := sess.Reset(); err != nil {
		return fmt.Errorf("resetting session: %w", err)
	}
	table.Reset()
	if err := rt.Push(ctx, "/"); err != nil {
		return fmt.Errorf("navigating after logout: %w", err)
	}
	log.Info("after logout", "current", rt.Current())

	return nil
}

// getConfigPath returns the config file path from argv or the default.
func getConfigPath() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}
	return defaultConfigPath
}
