package main

import (
	"context"

	"chatshop/internal/config"
	"chatshop/internal/db"
	"chatshop/internal/logging"
	"chatshop/internal/migrate"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.New("chatshop-migrate", cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, cfg.PoolOptions(), logger)
	if err != nil {
		logger.WithError(err).Fatal("connect db")
	}
	defer pool.Close()

	version, err := migrate.Apply(ctx, pool)
	if err != nil {
		logger.WithError(err).Fatal("apply migrations")
	}

	logger.WithField("version", version).Info("migrations applied")
}
