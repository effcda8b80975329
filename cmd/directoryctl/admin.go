package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sikhmentors/directory-api/config"
	"github.com/sikhmentors/directory-api/internal/repository"
	"github.com/sikhmentors/directory-api/pkg/db"
	"github.com/sikhmentors/directory-api/pkg/password"
)

var (
	adminEmail    string
	adminPassword string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage admin accounts",
}

// adminCreateCmd talks to the database directly; there is no signup route
var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an admin account (uses DATABASE_URL and AUTH_PASSWORD_SCHEME)",
	RunE:  runAdminCreate,
}

func init() {
	adminCreateCmd.Flags().StringVar(&adminEmail, "email", "", "Admin email")
	adminCreateCmd.Flags().StringVar(&adminPassword, "password", "", "Admin password")
	_ = adminCreateCmd.MarkFlagRequired("email")
	_ = adminCreateCmd.MarkFlagRequired("password")

	adminCmd.AddCommand(adminCreateCmd)
}

func runAdminCreate(cmd *cobra.Command, args []string) error {
	if len(adminPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	hasher, err := password.New(cfg.Auth.PasswordScheme, cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}
	hash, err := hasher.Hash(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	pool, err := db.NewPool(ctx, db.PoolConfig{
		URL:        cfg.Database.URL,
		MaxConns:   1,
		MinConns:   0,
		CACertPath: cfg.Database.CACertPath,
	})
	if err != nil {
		return err
	}
	defer db.Close(pool)

	admin, err := repository.NewAdminRepository(pool).Create(ctx, adminEmail, hash)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created admin %d <%s> (%s)\n", admin.ID, admin.Email, hasher.Scheme())
	return nil
}
