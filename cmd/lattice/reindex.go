package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/latticehq/lattice"
	"github.com/latticehq/lattice/internal/log"
)

func reindexCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the search index for all objects and tags",
		Long: `Rebuild the search index for all objects and tags.

The searchables table is derived data; this command recomputes every row
from the primary tables. Safe to run while the server is up: rows are
replaced one entity at a time.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReindex(cmd.Context(), envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")

	return cmd
}

func runReindex(ctx context.Context, envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	logger := log.Configure(cfg)
	slogger := logger.Slog()

	client, err := lattice.NewFromConfig(ctx, cfg, slogger)
	if err != nil {
		return fmt.Errorf("create lattice client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			slogger.Error("failed to close lattice client", "error", err)
		}
	}()

	return client.Index.ReindexAll(ctx)
}
