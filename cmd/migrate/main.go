package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/sikhmentors/directory-api/config"
	"github.com/sikhmentors/directory-api/pkg/db"
	"github.com/sikhmentors/directory-api/pkg/logger"
	"go.uber.org/zap"
)

const migrationsPath = "file://migrations"

func main() {
	direction := db.Up
	if len(os.Args) > 1 {
		direction = db.Direction(os.Args[1])
	}
	if direction != db.Up && direction != db.Down {
		fmt.Fprintf(os.Stderr, "usage: %s [up|down]\n", os.Args[0])
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: "directory-migrate",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting database migrations",
		zap.String("direction", string(direction)),
		zap.String("database", maskDatabaseURL(cfg.Database.URL)))

	if err := db.RunMigrations(cfg.Database.URL, cfg.Database.CACertPath, migrationsPath, direction); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Database migrations completed successfully")
}

// maskDatabaseURL hides the password in a database URL for logging
func maskDatabaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "***"
	}
	return u.Redacted()
}
