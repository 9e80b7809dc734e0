// Package server wires configuration, storage, services and transports into
// a runnable application and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/yukta/symposium/internal/dbx"
	"github.com/yukta/symposium/internal/logging"
	"github.com/yukta/symposium/internal/server/auth"
	"github.com/yukta/symposium/internal/server/catalog"
	"github.com/yukta/symposium/internal/server/config"
	"github.com/yukta/symposium/internal/server/httpapi"
	"github.com/yukta/symposium/internal/server/models"
	"github.com/yukta/symposium/internal/server/repositories/repomanager"
	"github.com/yukta/symposium/internal/server/services"

	gs "github.com/yukta/symposium/internal/server/grpc"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *httpapi.HTTPServer
	grpcServer *gs.HealthServer
}

// NewApp opens and migrates the database, loads the event catalog and builds
// both servers. Nothing is listening until Run is called.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(os.Stdout, c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	dialect, err := dbx.ParseDialect(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	policy, err := models.ParseRegistrationPolicy(c.RegistrationPolicy)
	if err != nil {
		return nil, err
	}

	codec, err := auth.NewCodec([]byte(c.SecretKey), c.SessionTTL)
	if err != nil {
		return nil, err
	}

	db, err := dbx.Open(ctx, dialect, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := build(ctx, c, logger, db, dialect, policy, codec)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return app, nil
}

func build(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB, dialect dbx.Dialect, policy models.RegistrationPolicy, codec *auth.Codec) (*App, error) {
	m := repomanager.NewRepositoryManager(dialect)
	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	var store catalog.ObjectStore
	if strings.HasPrefix(c.CatalogSource, "s3://") {
		s3store, err := catalog.NewS3Store(ctx, catalog.S3Options{
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
		store = s3store
	}

	cat, err := catalog.Load(ctx, c.CatalogSource, store)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "event catalog loaded", "events", cat.Len())

	hasher, err := auth.NewPasswordHasher(c.BcryptCost)
	if err != nil {
		return nil, err
	}

	as := services.NewAuthService(db, m, codec, hasher, logger)
	rs := services.NewRegistrationService(db, m, policy, logger)

	router := httpapi.NewRouter(httpapi.Options{
		Auth:          as,
		Registrations: rs,
		Catalog:       cat,
		DB:            db,
		Cookie: httpapi.CookieConfig{
			Name:     c.CookieName,
			Secure:   c.CookieSecure,
			SameSite: httpapi.ParseSameSite(c.CookieSameSite),
			Domain:   c.CookieDomain,
			TTL:      codec.TTL(),
		},
		CORSOrigins: c.CORSOrigins,
		Logger:      logger,
	})

	app := &App{
		config:     c,
		logger:     logger,
		db:         db,
		httpServer: httpapi.NewHTTPServer(c.HTTPAddr, router, c.ShutdownTimeout, logger).WithTLS(c.TLSCertFile, c.TLSKeyFile),
	}

	if c.GRPCHealthAddr != "" {
		app.grpcServer = gs.NewHealthServer(c.GRPCHealthAddr, db, c.HealthCheckInterval, logger)
	}

	return app, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Received signal", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.grpcServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or a server fails.
// The database is closed after both servers have stopped.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.grpcServer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "closing database", "error", err)
	}

	app.logger.Info(context.Background(), "App stopped")
}
