// internal/app/app.go
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"libranexus/internal/availability"
	"libranexus/internal/clients"
	"libranexus/internal/config"
	"libranexus/internal/ilscache"
)

// Run loads configuration, wires the availability service and serves HTTP
// until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting availability service",
		slog.String("addr", cfg.Server.Addr()),
		slog.String("ils", cfg.ILS.BaseURL),
		slog.Bool("cache", cfg.Cache.Enabled),
	)

	shutdownTracing, err := SetupTracing(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("tracing shutdown", slog.String("error", err.Error()))
		}
	}()

	handler, cleanup, err := Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

// Build wires the ILS client, payload cache, availability service and router.
// The returned cleanup releases the cache database.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (http.Handler, func(), error) {
	var fetcher clients.Fetcher = clients.NewILSClient(clients.ILSClientConfig{
		BaseURL:   cfg.ILS.BaseURL,
		Timeout:   cfg.ILS.Timeout,
		RateLimit: cfg.ILS.RateLimit,
		Burst:     cfg.ILS.Burst,
	}, logger)

	cleanup := func() {}
	if cfg.Cache.Enabled {
		store, closeStore, err := openCache(ctx, cfg.Cache, logger)
		if err != nil {
			return nil, nil, err
		}
		cleanup = closeStore
		go ilscache.RunPurger(ctx, store, cfg.Cache.PurgeInterval, cfg.Cache.TTL, logger)
		fetcher = ilscache.NewCachingFetcher(fetcher, store, cfg.Cache.TTL, logger)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc := availability.NewService(
		fetcher,
		availability.LaterLibraryTable(cfg.Display.LaterLibraries),
		availability.NewMetrics(registry),
		logger,
	)

	return NewRouter(logger, registry, availability.NewHandler(svc, logger)), cleanup, nil
}

func openCache(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (ilscache.Store, func(), error) {
	if cfg.DSN == "" {
		logger.Info("ils cache in memory", slog.Duration("ttl", cfg.TTL))
		return ilscache.NewMemoryStore(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open cache database: %w", err)
	}
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping cache database: %w", err)
	}

	store := ilscache.NewPostgresStore(db)
	if err := store.Migrate(pctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	logger.Info("ils cache in postgres", slog.Duration("ttl", cfg.TTL))
	return store, func() { db.Close() }, nil
}

func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", srv.Addr))
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

	logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
