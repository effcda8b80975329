package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

// loginCmd prints a session token for use with --token / DIRECTORY_TOKEN
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in as an admin and print the session token",
	RunE:  runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Admin email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Admin password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	resp, err := newClient().Login(ctx, loginEmail, loginPassword)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), resp.Token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", resp.ExpiresAt.Local().Format(time.RFC1123))
	return nil
}
