package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/latticehq/lattice"
	"github.com/latticehq/lattice/domain/identity"
	"github.com/latticehq/lattice/infrastructure/api"
	apimiddleware "github.com/latticehq/lattice/infrastructure/api/middleware"
	v1 "github.com/latticehq/lattice/infrastructure/api/v1"
	"github.com/latticehq/lattice/internal/config"
	"github.com/latticehq/lattice/internal/log"
)

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST           Server host to bind to (default: 0.0.0.0)
  PORT           Server port to listen on (default: 8080)
  DB_URL         Database URL: sqlite:///path or postgres://... (default: sqlite:///lattice.db)
  LOG_LEVEL      Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT     Log format: pretty, json (default: pretty)
  SEARCH_LOCALE  Postgres tsearch locale for the search index (default: russian)
  SEARCH_LIMIT   Default search page size (default: 10)
  WORKER_COUNT   Reindex worker count (default: 4)
  API_TOKENS     Comma-separated list of admin bearer tokens`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envFile, host, port)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(envFile, host string, port int) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	cfg = applyServeOverrides(cfg, host, port)

	// Configure installs the logger as the slog default too, so library
	// code that logs via slog.Default (the GORM adapter) uses the same
	// handler and level.
	logger := log.Configure(cfg)
	slogger := logger.Slog()

	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	slogger.LogAttrs(context.Background(), slog.LevelInfo, "starting lattice", attrs...)

	client, err := lattice.NewFromConfig(context.Background(), cfg, slogger)
	if err != nil {
		return fmt.Errorf("create lattice client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			slogger.Error("failed to close lattice client", slog.Any("error", err))
		}
	}()

	server := api.NewServer(cfg.Addr(), slogger)
	router := server.Router()

	router.Use(apimiddleware.Logging(slogger))
	router.Use(apimiddleware.Authenticate(tokenResolver(cfg), slogger))

	searchRouter := v1.NewSearchRouter(client.Search, slogger)
	router.Mount("/api/v1/search", searchRouter.Routes())

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, `{"name":"lattice","version":"%s"}`, version)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		slogger.Info("shutting down server")
		cancel()
		if err := server.Shutdown(ctx); err != nil {
			slogger.Error("shutdown error", slog.Any("error", err))
		}
	}()

	if err := server.Start(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// tokenResolver maps the configured API tokens to admin identities.
func tokenResolver(cfg config.AppConfig) apimiddleware.StaticTokenResolver {
	tokens := make(map[string]identity.Identity)
	for _, t := range cfg.APITokens() {
		tokens[t] = identity.New(0, identity.LevelAdmin)
	}
	return apimiddleware.NewStaticTokenResolver(tokens)
}

// applyServeOverrides applies command line flag overrides to the config.
func applyServeOverrides(cfg config.AppConfig, host string, port int) config.AppConfig {
	var opts []config.AppConfigOption

	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}

	return cfg.Apply(opts...)
}
