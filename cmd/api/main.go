package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"petrescue/internal/adapters/auth/jwtauth"
	"petrescue/internal/adapters/storage"
	mem "petrescue/internal/adapters/storage/memory"
	"petrescue/internal/adapters/storage/mongodb"
	pg "petrescue/internal/adapters/storage/postgres"
	"petrescue/internal/domain/users"
	"petrescue/internal/middleware"
	"petrescue/internal/platform/config"
	"petrescue/internal/platform/logger"
	"petrescue/internal/platform/metrics"
	"petrescue/internal/ports/auth"
	"petrescue/internal/router"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.mongodb.org/mongo-driver/mongo"
)

// @title PetRescue API
// @version 1.0
// @description Adopción de mascotas: listados, reportes, solicitudes, reviews y notificaciones.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.App.LogLevel),
		Format: logger.ParseFormat(cfg.App.LogFormat),
		App:    cfg.App.Name,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", map[string]any{"err": err})
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	stores, closeStores, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStores()

	if b := cfg.Bootstrap; b.AdminEmail != "" {
		u, created, err := users.NewService(stores.Users).EnsureAdmin(ctx, b.AdminEmail, b.AdminPassword, b.AdminName)
		if err != nil {
			return err
		}
		log.Info("bootstrap admin ready", map[string]any{"user_id": u.ID, "created": created})
	}

	var (
		verifier auth.AuthVerifier
		tokens   auth.TokenIssuer
	)
	if cfg.JWT.Enabled() {
		m, err := jwtauth.NewManager(jwtauth.Config{
			Secret:     cfg.JWT.Secret,
			Issuer:     cfg.JWT.Issuer,
			AccessTTL:  cfg.JWT.AccessTTL,
			RefreshTTL: cfg.JWT.RefreshTTL,
		})
		if err != nil {
			return err
		}
		verifier, tokens = m, m
	} else {
		log.Warn("JWT secret not set: dev mode, identity via X-Debug-User-ID", nil)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
		CleanupInterval:   cfg.RateLimit.CleanupInterval,
	}, log)
	defer limiter.Stop()

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Tokens:       tokens,
		Stores:       stores,
		Logger:       log,
		Metrics:      metrics.NewCollector(reg),
		Gatherer:     reg,
		RateLimiter:  limiter,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "storage": cfg.Storage.Driver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStores elige el backend según PETRESCUE_STORAGE_DRIVER.
func openStores(ctx context.Context, cfg *config.Config, log logger.Logger) (*storage.Set, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := pg.Open(ctx, cfg.Postgres.DSN, pg.PoolOptions{
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxIdleTime: cfg.Postgres.ConnMaxIdleTime,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		})
		if err != nil {
			return nil, nil, err
		}
		if cfg.Postgres.AutoMigrate {
			if err := pg.Migrate(db); err != nil {
				_ = db.Close()
				return nil, nil, err
			}
			log.Info("postgres migrations applied", nil)
		}
		return pg.NewStores(db), closeDB(db, log), nil

	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Timeout)
		if err != nil {
			return nil, nil, err
		}
		db := client.Database(cfg.Mongo.Database)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		return mongodb.NewStores(db), disconnect(client, log), nil

	default:
		log.Warn("using in-memory storage: data is lost on restart", nil)
		return mem.NewStores(), func() {}, nil
	}
}

func closeDB(db *sql.DB, log logger.Logger) func() {
	return func() {
		if err := db.Close(); err != nil {
			log.Warn("closing postgres", map[string]any{"err": err})
		}
	}
}

func disconnect(client *mongo.Client, log logger.Logger) func() {
	return func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn("closing mongo", map[string]any{"err": err})
		}
	}
}
