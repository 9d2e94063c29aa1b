package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"crm-admin.backend/internal/config"
	"crm-admin.backend/internal/domain/repositories"
	"crm-admin.backend/internal/infrastructure/blobstore"
	"crm-admin.backend/internal/infrastructure/datasources/postgres"
	"crm-admin.backend/internal/infrastructure/mail"
	"crm-admin.backend/pkg/logger"
	"crm-admin.backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openSQL    = postgres.NewConnection
	openGorm   = postgres.NewGorm
	migrate    = postgres.Migrate
	openMongo  = blobstore.Connect
	runServer  = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env, cfg.Server.LogLevel)
	defer logger.Sync()
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(redis.Config{
		URL:         cfg.Redis.URL,
		Password:    cfg.Redis.Password,
		PoolSize:    cfg.Redis.PoolSize,
		DialTimeout: cfg.Redis.DialTimeout,
	}); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer func() { _ = redis.Close() }()
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	sqlDB, err := openSQL(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer sqlDB.Close()

	db, err := openGorm(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to initialize gorm: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := migrate(db); err != nil {
			return err
		}
		logger.Info(ctx, "Database schema migrated")
	}

	mongoClient, err := openMongo(ctx, cfg.Mongo)
	if err != nil {
		return fmt.Errorf("failed to connect to blob store: %w", err)
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()
	blobs := blobstore.NewGridFSStore(mongoClient.Database(cfg.Mongo.Database))

	r, err := buildRouter(cfg, infra{
		db:     db,
		blobs:  blobs,
		mailer: mail.NewMailer(cfg.Mail),
		checks: map[string]healthCheck{
			"database":   sqlDB.PingContext,
			"redis":      redis.Ping,
			"blob_store": blobs.Ping,
		},
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(ctx, "Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(ctx, "Graceful shutdown failed", zap.Error(err))
		}
	}()

	logger.Info(ctx, "CRM admin backend starting", zap.String("port", cfg.Server.Port))
	if err := runServer(srv); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// infra carries the opened external resources into the router
type infra struct {
	db     *gorm.DB
	blobs  repositories.BlobStore
	mailer repositories.Mailer
	checks map[string]healthCheck
}
