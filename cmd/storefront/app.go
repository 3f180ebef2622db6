package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/fjod/go_cart/storefront/internal/cache"
	"github.com/fjod/go_cart/storefront/internal/catalog"
	"github.com/fjod/go_cart/storefront/internal/config"
	"github.com/fjod/go_cart/storefront/internal/events"
	storefrontgrpc "github.com/fjod/go_cart/storefront/internal/grpc"
	h "github.com/fjod/go_cart/storefront/internal/http"
	"github.com/fjod/go_cart/storefront/internal/persistence"
	"github.com/fjod/go_cart/storefront/internal/repository"
	"github.com/fjod/go_cart/storefront/internal/service"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type app struct {
	cfg    *config.Config
	logger *zap.Logger

	httpServer   *http.Server
	httpListener net.Listener
	health       *storefrontgrpc.HealthServer
	grpcListener net.Listener

	closers []func() error
}

// run wires the storefront, serves until ctx is cancelled and shuts down.
func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	a, err := newApp(ctx, cfg, lg)
	if err != nil {
		return err
	}
	return a.serve(ctx)
}

// newApp builds every component and binds both listeners, so nothing is
// reported healthy before it can accept connections.
func newApp(ctx context.Context, cfg *config.Config, lg *zap.Logger) (a *app, err error) {
	a = &app{cfg: cfg, logger: lg}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	repo, err := repository.Open(ctx, repository.Options{
		Driver:        cfg.StoreDriver,
		DSN:           cfg.DatabaseDSN,
		MongoURI:      cfg.MongoURI,
		MongoDatabase: cfg.MongoDatabase,
		AppName:       cfg.Namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s state store: %w", cfg.StoreDriver, err)
	}
	lg.Info("State store ready", zap.String("driver", cfg.StoreDriver))

	var blobCache cache.BlobCache
	if cfg.CacheEnabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		a.closers = append(a.closers, redisClient.Close)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			lg.Warn("Redis ping failed, running without cache", zap.Error(err))
		} else {
			lg.Info("Redis ping succeeded", zap.String("addr", cfg.RedisAddr))
			blobCache = cache.NewRedisCache(redisClient, cfg.CacheTTL)
		}
	}

	persister := persistence.NewPersister(repo, blobCache, cfg.Namespace, lg)
	a.closers = append(a.closers, persister.Close)

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.EventsEnabled() {
		publisher = events.NewKafkaPublisher(cfg.KafkaTopic, cfg.KafkaBrokers...)
		lg.Info("Publishing order events", zap.String("topic", cfg.KafkaTopic), zap.Strings("brokers", cfg.KafkaBrokers))
	}
	a.closers = append(a.closers, publisher.Close)

	dataset, err := catalog.Dataset()
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	svc := service.NewStorefrontService(ctx, dataset, persister, publisher, cfg.Namespace, lg)

	router := h.NewRouter(h.RouterConfig{
		RequestTimeout:     cfg.RequestTimeout,
		MaxRequestBodySize: cfg.MaxRequestBodySize,
	}, svc, lg)

	a.httpServer = &http.Server{
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.httpListener, err = net.Listen("tcp", ":"+cfg.HTTPPort)
	if err != nil {
		return nil, fmt.Errorf("listen http on %s: %w", cfg.HTTPPort, err)
	}
	a.closers = append(a.closers, a.closeHTTPListener)

	a.grpcListener, err = net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return nil, fmt.Errorf("listen grpc on %s: %w", cfg.GRPCPort, err)
	}
	a.health = storefrontgrpc.NewHealthServer(lg)

	return a, nil
}

// serve blocks until ctx is done or a server fails.
func (a *app) serve(ctx context.Context) error {
	defer a.close()

	errCh := make(chan error, 2)

	go func() {
		if err := a.health.Serve(a.grpcListener); err != nil {
			errCh <- err
		}
	}()

	go func() {
		a.logger.Info("Storefront starting", zap.String("addr", a.httpListener.Addr().String()))
		if err := a.httpServer.Serve(a.httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http serve: %w", err)
		}
	}()

	a.health.SetServing()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
		a.logger.Error("server error", zap.Error(serveErr))
	}

	a.logger.Info("shutting down storefront...")
	a.health.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server forced to shutdown", zap.Error(err))
		if serveErr == nil {
			serveErr = fmt.Errorf("http shutdown: %w", err)
		}
	}

	a.logger.Info("storefront exited")
	return serveErr
}

func (a *app) closeHTTPListener() error {
	err := a.httpListener.Close()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

// close releases resources in reverse order of acquisition.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", zap.Error(err))
		}
	}
	a.closers = nil
}
