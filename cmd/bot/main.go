package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"chatshop/internal/bot"
	"chatshop/internal/catalog"
	"chatshop/internal/config"
	"chatshop/internal/db"
	"chatshop/internal/httpserver"
	"chatshop/internal/importer"
	"chatshop/internal/keylock"
	"chatshop/internal/logging"
	"chatshop/internal/metrics"
	"chatshop/internal/migrate"
	"chatshop/internal/repository/session"
	"chatshop/internal/service/browse"
	cartsvc "chatshop/internal/service/cart"
	"chatshop/internal/service/checkout"
	"chatshop/internal/telegram"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.New("chatshop-bot", cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Error("bot stopped with error")
		os.Exit(1)
	}
	logger.Info("bot stopped")
}

func run(ctx context.Context, cfg config.Config, logger logrus.FieldLogger) error {
	products, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	logger.WithField("products", products.Count()).Info("catalog loaded")

	store, closeStore, err := openSessions(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	api, err := telegram.Connect(cfg.BotToken, cfg.BotDebug)
	if err != nil {
		return err
	}
	logger.WithField("username", api.Self.UserName).Info("authorized on telegram")

	locks := keylock.New()
	carts := cartsvc.New(store, products, locks, logger)
	botMetrics := metrics.New()
	orchestrator := bot.New(bot.Deps{
		Catalog:  products,
		Carts:    carts,
		Browse:   browse.New(store, products, locks),
		Checkout: checkout.New(store, carts, locks, logger),
		Images:   catalog.FileImages{},
		Metrics:  botMetrics,
	}, cfg.StoreName, logger)

	srv := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Store:   store,
		Metrics: botMetrics.Handler(),
	})
	gateway := telegram.New(api, orchestrator, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return gateway.Run(gctx)
	})
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("graceful shutdown failed")
		}
		return nil
	})
	return g.Wait()
}

func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogCSV == "" {
		return catalog.Default(cfg.ImageDir), nil
	}
	return importer.LoadCatalog(cfg.CatalogCSV, cfg.ImageDir)
}

func openSessions(ctx context.Context, cfg config.Config, logger logrus.FieldLogger) (session.Repository, func(), error) {
	log := logger.WithField("backend", cfg.SessionBackend)

	switch cfg.SessionBackend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		log.WithField("addr", cfg.RedisAddr).Info("session store ready")
		return session.NewRedis(client, cfg.SessionTTL, logger), func() { _ = client.Close() }, nil
	case config.BackendPostgres:
		pool, err := db.Connect(ctx, cfg.DBConnString, cfg.PoolOptions(), logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to db: %w", err)
		}
		version, err := migrate.Apply(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("apply migrations: %w", err)
		}
		log.WithField("schema_version", version).Info("session store ready")
		return session.NewPostgres(pool, logger), pool.Close, nil
	default:
		log.Warn("sessions are kept in memory and lost on restart")
		return session.NewMemory(), func() {}, nil
	}
}
