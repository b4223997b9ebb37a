package lattice

import (
	"fmt"
	"log/slog"

	"github.com/latticehq/lattice/internal/config"
)

// clientConfig holds configuration for Client construction.
// Use newClientConfig() to create with defaults from internal/config.
type clientConfig struct {
	dbURL       string
	locale      string
	searchLimit int
	workerCount int
	logger      *slog.Logger
}

// newClientConfig creates a clientConfig with defaults from internal/config.
func newClientConfig() *clientConfig {
	return &clientConfig{
		locale:      config.DefaultSearchLocale,
		searchLimit: config.DefaultSearchLimit,
		workerCount: config.DefaultWorkerCount,
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite configures SQLite as the database. Search uses FTS5.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.dbURL = fmt.Sprintf("sqlite:///%s", path)
	}
}

// WithPostgres configures PostgreSQL as the database. Search uses tsvector.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.dbURL = dsn
	}
}

// WithDatabaseURL sets the database URL directly (sqlite:/// or
// postgres://).
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) {
		c.dbURL = url
	}
}

// WithSearchLocale sets the tsearch locale used for the Postgres search
// index. Ignored on SQLite.
func WithSearchLocale(locale string) Option {
	return func(c *clientConfig) {
		c.locale = locale
	}
}

// WithSearchLimit sets the page size used when a search query leaves
// items_per_page unset.
func WithSearchLimit(limit int) Option {
	return func(c *clientConfig) {
		c.searchLimit = limit
	}
}

// WithWorkerCount bounds reindex concurrency.
func WithWorkerCount(n int) Option {
	return func(c *clientConfig) {
		c.workerCount = n
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}
