package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sikhmentors/directory-api/config"
	"github.com/sikhmentors/directory-api/internal/repository"
	"github.com/sikhmentors/directory-api/internal/router"
	"github.com/sikhmentors/directory-api/internal/services"
	"github.com/sikhmentors/directory-api/pkg/db"
	"github.com/sikhmentors/directory-api/pkg/jwt"
	"github.com/sikhmentors/directory-api/pkg/logger"
	"github.com/sikhmentors/directory-api/pkg/mailer"
	"github.com/sikhmentors/directory-api/pkg/metrics"
	"github.com/sikhmentors/directory-api/pkg/password"
	"github.com/sikhmentors/directory-api/pkg/profiling"
	"github.com/sikhmentors/directory-api/pkg/storage"
	"github.com/sikhmentors/directory-api/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Mentor Directory API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	tracerShutdown, err := tracing.InitTracer(tracing.Config{
		ServiceName:       cfg.Observability.ServiceName,
		ServiceNamespace:  cfg.Observability.ServiceNamespace,
		ServiceVersion:    cfg.Observability.ServiceVersion,
		ServiceInstanceID: cfg.Observability.ServiceInstanceID,
		Environment:       cfg.Server.AppEnv,
		Endpoint:          cfg.Observability.ExporterEndpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	stopProfiler, err := profiling.Start(profiling.Config{
		Enabled:               cfg.Profiling.Enabled,
		Endpoint:              cfg.Profiling.Endpoint,
		AppName:               cfg.Profiling.AppName,
		SampleTypes:           cfg.Profiling.SampleTypes,
		UploadIntervalSeconds: cfg.Profiling.UploadIntervalSeconds,
	}, cfg.Server.AppEnv, cfg.Observability.ServiceVersion)
	if err != nil {
		logger.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer stopProfiler()

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.RecordInfrastructureMetrics(rootCtx.Done())

	// NOTE: migrations run separately: ./migrate up
	pool, err := db.NewPool(rootCtx, db.PoolConfig{
		URL:        cfg.Database.URL,
		MaxConns:   cfg.Database.MaxConns,
		MinConns:   cfg.Database.MinConns,
		CACertPath: cfg.Database.CACertPath,
	})
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	defer db.Close(pool)

	hasher, err := password.New(cfg.Auth.PasswordScheme, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("Failed to configure password hasher", zap.Error(err))
	}
	tokenManager := jwt.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.SessionTTL())

	mentorRepo := repository.NewMentorRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)

	authService, err := services.NewAuthService(adminRepo, hasher, tokenManager)
	if err != nil {
		logger.Fatal("Failed to initialize auth service", zap.Error(err))
	}

	uploadService := services.NewUploadService(newAssetHost(cfg), cfg.Upload.MaxBytes, cfg.UploadTimeout())
	contactService := services.NewContactService(mentorRepo, newMailer(cfg), mailer.Address{
		Name:  cfg.Mail.FromName,
		Email: cfg.Mail.FromAddress,
	}, cfg.MailTimeout())

	gin.SetMode(cfg.Server.GinMode)
	engine := router.New(rootCtx, router.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		ServiceName:    cfg.Observability.ServiceName,
		UploadMaxBytes: cfg.Upload.MaxBytes,
		Development:    cfg.IsDevelopment(),
	}, router.Dependencies{
		Auth:         authService,
		Mentors:      services.NewMentorService(mentorRepo),
		Uploads:      uploadService,
		Contact:      contactService,
		TokenManager: tokenManager,
		DB:           pool,
	})

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		// uploads may take the full asset host timeout before the response is written
		WriteTimeout:   cfg.UploadTimeout() + 15*time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-rootCtx.Done()
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// newAssetHost returns nil when no provider is configured; uploads then
// answer 503.
func newAssetHost(cfg *config.Config) storage.AssetHost {
	host, err := storage.NewAssetHost(cfg.Upload.AssetHost, storage.S3Config{
		Bucket:          cfg.S3.Bucket,
		Region:          cfg.S3.Region,
		Endpoint:        cfg.S3.Endpoint,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
		PublicBaseURL:   cfg.S3.PublicBaseURL,
		UsePathStyle:    cfg.S3.UsePathStyle,
	}, storage.CloudinaryConfig{
		URL:       cfg.Cloudinary.URL,
		CloudName: cfg.Cloudinary.CloudName,
		APIKey:    cfg.Cloudinary.APIKey,
		APISecret: cfg.Cloudinary.APISecret,
	})
	if err != nil {
		logger.Fatal("Failed to initialize asset host", zap.Error(err))
	}
	if host == nil {
		logger.Warn("Image uploads disabled: ASSET_HOST not set")
		return nil
	}

	logger.Info("Asset host configured", zap.String("provider", host.Name()))
	return host
}

// newMailer picks SendGrid when a key is set, the log mailer in development,
// and otherwise nil so the contact relay answers 503.
func newMailer(cfg *config.Config) mailer.Mailer {
	switch {
	case cfg.Mail.SendGridAPIKey != "":
		return mailer.NewSendGridMailer(cfg.Mail.SendGridAPIKey, "")
	case cfg.IsDevelopment():
		logger.Warn("SENDGRID_API_KEY not set: contact messages are logged, not sent")
		return mailer.LogMailer{}
	default:
		logger.Warn("Contact relay disabled: SENDGRID_API_KEY not set")
		return nil
	}
}
