package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-destinations-api/core/cache"
	"go-destinations-api/core/config"
	"go-destinations-api/core/constants"
	"go-destinations-api/core/database"
	"go-destinations-api/core/logger"
	coreMiddleware "go-destinations-api/core/middleware"
	"go-destinations-api/core/worker"
	"go-destinations-api/modules/auth"
	"go-destinations-api/modules/destination"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// Run wires the whole application together and blocks until shutdown.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.Server.LogLevel)

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return err
	}

	cacheClient := cache.NewCache(cache.CacheConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := cacheClient.Ping(context.Background()); err != nil {
		logger.Warn("Redis not reachable, token revocation disabled", "error", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			logger.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
			)
			return nil
		},
	}))

	mw := coreMiddleware.NewMiddleware(cacheClient)

	// Modules
	auth.Init(e, db, cacheClient, mw)
	sweepRunner := destination.Init(e, db, mw)

	// Background worker: periodic status sweep through asynq.
	var w *worker.Worker
	if cfg.Jobs.WorkerEnabled {
		w = worker.New(worker.Config{
			RedisAddr:     cfg.Redis.Addr,
			RedisPassword: cfg.Redis.Password,
			RedisDB:       cfg.Redis.DB,
		})
		w.HandleJob(constants.TaskDestinationStatusSweep, sweepRunner)
		if err := w.RegisterPeriodic(cfg.Jobs.StatusSweepSpec, constants.TaskDestinationStatusSweep); err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
	}

	// Start HTTP server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server stopped", "error", err)
		}
	}()

	logger.Info("Server started", "port", cfg.Server.Port)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if w != nil {
		w.Shutdown()
	}
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
