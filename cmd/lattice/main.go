// Package main is the entry point for the lattice CLI.
//
//	@title						Lattice API
//	@version					1.0
//	@description				Full-text search over a content workspace of objects and tags
//	@host						localhost:8080
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/latticehq/lattice/internal/config"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lattice",
		Short: "Lattice content search server",
		Long:  `Lattice is a content workspace backend that indexes objects and tags into a full-text search table and serves ranked, permission-filtered queries.`,
	}

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(reindexCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
