package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/contactbook/engine/internal/api"
	"github.com/contactbook/engine/internal/api/handlers"
	"github.com/contactbook/engine/internal/auth"
	"github.com/contactbook/engine/internal/repository"
	"github.com/contactbook/engine/internal/services"
	"github.com/contactbook/engine/internal/storage"
	"github.com/contactbook/engine/pkg/config"
	"github.com/contactbook/engine/pkg/database"
	"github.com/contactbook/engine/pkg/logger"
)

// @title           Contact Book API
// @version         1.0
// @description     Multi-user contact book with categories, bulk import and export.

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

const devJWTSecret = "change-me-in-production-please"

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("starting contact book engine",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL, cfg.AppEnv)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to access database handle", zap.Error(err))
	}
	defer sqlDB.Close()
	log.Info("database connected")

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, sqlDB); err != nil {
			log.Fatal("migration failed", zap.Error(err))
		}
		log.Info("migrations applied")
	}

	jwtSecret := []byte(cfg.JWTSecret)
	if len(jwtSecret) == 0 {
		if cfg.AppEnv == "production" {
			log.Fatal("JWT_SECRET must be set in production")
		}
		log.Warn("JWT_SECRET not set, using development default")
		jwtSecret = []byte(devJWTSecret)
	}

	var pictures storage.PictureStore = storage.NewDataURIStore()
	if cfg.S3Enabled() {
		s3Store, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			log.Fatal("failed to configure object storage", zap.Error(err))
		}
		pictures = s3Store
		log.Info("profile pictures stored in s3", zap.String("bucket", cfg.S3Bucket))
	}

	repos := repository.NewManager(db)
	tokens := auth.NewJWTIssuer(jwtSecret, cfg.JWTTTL)
	hasher := auth.NewBcryptHasher(0)
	now := services.SystemClock

	router := api.NewRouter(api.Dependencies{
		Tokens:            tokens,
		RateLimitRPS:      cfg.RateLimitRPS,
		RateLimitBurst:    cfg.RateLimitBurst,
		CORSOrigins:       cfg.CORSOrigins,
		HealthHandler:     handlers.NewHealthHandler(sqlDB, nil),
		AuthHandler:       handlers.NewAuthHandler(services.NewAuthService(repos, hasher, tokens, now)),
		ContactsHandler:   handlers.NewContactsHandler(services.NewContactService(repos.Contacts(), now)),
		CategoriesHandler: handlers.NewCategoriesHandler(services.NewCategoryService(repos.Categories(), now)),
		TransferHandler:   handlers.NewTransferHandler(services.NewTransferService(repos, now)),
		UploadHandler:     handlers.NewUploadHandler(services.NewPictureService(pictures, cfg.UploadMaxBytes), cfg.UploadMaxBytes),
		StatsHandler:      handlers.NewStatsHandler(services.NewStatsService(repos.Contacts())),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}
