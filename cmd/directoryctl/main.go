// Command directoryctl administers the mentor directory: it provisions admin
// accounts directly in the database and drives the HTTP API for everything else.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sikhmentors/directory-api/pkg/client"
)

var (
	apiURL  string
	token   string
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "directoryctl",
	Short:         "Administer the mentor directory",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", envOr("DIRECTORY_API_URL", "http://localhost:8080"), "Directory API base URL (or set DIRECTORY_API_URL)")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("DIRECTORY_TOKEN"), "Admin session token (or set DIRECTORY_TOKEN)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(mentorsCmd)
	rootCmd.AddCommand(loginCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newClient() *client.Client {
	var opts []client.Option
	if token != "" {
		opts = append(opts, client.WithToken(token))
	}
	return client.New(apiURL, opts...)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
