package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dsa-tracker/backend/cache"
	"dsa-tracker/backend/config"
	"dsa-tracker/backend/routes"
	"dsa-tracker/backend/utils"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(utils.LoggerConfig{Format: cfg.LogFormat})
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		logger.Fatal("Error initializing database", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore := openCatalogCache(ctx, cfg, logger)
	defer closeStore()

	app := routes.NewApp(cfg, logger)
	routes.SetupRoutes(app, db, cfg, routes.NewServices(db, cfg, store, logger), logger)

	go func() {
		if err := app.Listen(":" + cfg.ServerPort); err != nil {
			logger.Error("Server error", zap.Error(err))
			stop()
		}
	}()
	logger.Info("Server started", zap.String("port", cfg.ServerPort), zap.String("db_driver", cfg.DBDriver))

	<-ctx.Done()
	logger.Info("Shutting down server")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// openCatalogCache uses Redis when REDIS_ADDR is set and falls back to an
// in-process store swept by a background job.
func openCatalogCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (cache.Store, func()) {
	if cfg.RedisAddr != "" {
		rdb, err := cache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err == nil {
			logger.Info("Catalog cache backed by redis", zap.String("addr", cfg.RedisAddr))
			return cache.NewRedisStore(rdb, "dsa-tracker:"), func() { _ = rdb.Close() }
		}
		logger.Warn("Redis unavailable, using in-memory catalog cache", zap.Error(err))
	}

	store := cache.NewMemoryStore()
	sched, err := cache.StartSweeper(store, time.Minute, logger)
	if err != nil {
		logger.Warn("Cache sweeper not started", zap.Error(err))
		return store, func() {}
	}
	return store, func() { _ = sched.Shutdown() }
}
