package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mentormap/mentormap-backend/config"
	"github.com/mentormap/mentormap-backend/internal/auth"
	authmw "github.com/mentormap/mentormap-backend/internal/auth/middleware"
	"github.com/mentormap/mentormap-backend/internal/bootstrap"
	"github.com/mentormap/mentormap-backend/internal/db"
	"github.com/mentormap/mentormap-backend/internal/logging"
	"github.com/mentormap/mentormap-backend/internal/storage/postgres"
	"github.com/mentormap/mentormap-backend/internal/storage/redis"
)

const serviceName = "mentormap-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	pool, err := db.Open(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	sqlDB, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	logger.Info("connected to database",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Name),
	)

	var rdb *goredis.Client
	if cfg.Redis.Enabled() {
		rdb, err = redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			return err
		}
		defer rdb.Close()
		logger.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		logger.Warn("REDIS_ADDR not set: submit guard is per-process and live updates are disabled")
	}

	identity, err := identityMiddleware(ctx, cfg, logger)
	if err != nil {
		return err
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Config:      cfg,
		Logger:      logger,
		SQL:         sqlDB,
		Pool:        pool.Pool,
		Redis:       rdb,
		Identity:    identity,
	})

	// Cancelled on shutdown so open SSE streams return.
	baseCtx, cancelBase := context.WithCancel(ctx)
	defer cancelBase()

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	server.RegisterOnShutdown(cancelBase)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", server.Addr), zap.String("auth_mode", cfg.Auth.Mode))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
	return nil
}

func identityMiddleware(ctx context.Context, cfg *config.Config, logger *zap.Logger) (gin.HandlerFunc, error) {
	if cfg.Auth.Mode == config.AuthModeDev {
		logger.Warn("AUTH_MODE=dev: trusting X-User-* headers")
		return auth.HeaderIdentity(), nil
	}

	client, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
	if err != nil {
		return nil, err
	}
	return authmw.FirebaseAuthMiddleware(client, false), nil
}
