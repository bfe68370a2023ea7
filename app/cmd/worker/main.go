package main

import (
	"backend/identity-platform/app/internal/config"
	"backend/identity-platform/app/internal/runtime"
	"backend/identity-platform/app/pkg/db"
	"backend/identity-platform/app/pkg/logging"
	"backend/identity-platform/app/pkg/redis"
	ctxutil "backend/identity-platform/app/pkg/util/context"
	httpClientUtil "backend/identity-platform/app/pkg/util/httpclient"
	server "backend/identity-platform/app/worker"
	"context"
	"time"

	"go.uber.org/zap"
)

func main() {
	env := ctxutil.GetAppModeFromEnv()
	ctx := ctxutil.SetAppMode(context.Background(), env)

	// Configure log
	logConfig := logging.NewLogConfig("[identity-platform]", env)
	logger, err := logConfig.NewLogging()
	if err != nil {
		panic(err)
	}
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)
	zap.ReplaceGlobals(logger)

	// Load ENV variables
	cfg, err := config.ReadApplicationConfig(env, logger)
	if err != nil {
		logger.Error("Failed to load APP configuration", zap.Error(err))
	}

	// Configure database
	database, err := db.NewDB(cfg, logger)
	if err != nil {
		panic(err)
	}
	defer func(database *db.DB) {
		err = database.Close()
		if err != nil {
			logger.Error("Failed to close Database connection", zap.Error(err))
		}
		logger.Info("Failed to closed Database connection")
	}(database)

	// Configure Redis
	rds, err := redis.NewUniversalRedisClient(cfg.RedisConfig, logger)
	if err != nil {
		panic(err)
	}
	defer func(rds redis.Redis) {
		if err := rds.Close(); err != nil {
			logger.Error("Failed to close Redis connection", zap.Error(err))
		} else {
			logger.Info("Failed to closed Redis connection")
		}
	}(rds)

	// Configure HttpClient
	httpClient := httpClientUtil.NewRestyClient(30*time.Second, logger)

	workerServer := server.Server{
		Config:     cfg,
		Logger:     logger,
		DB:         database,
		Redis:      rds,
		HttpClient: httpClient,
		Clients:    runtime.Clients{},
	}
	workerServer.Start(ctx)
}
