// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// Default configuration values.
const (
	DefaultHost         = "0.0.0.0"
	DefaultPort         = 8080
	DefaultLogLevel     = "INFO"
	DefaultSearchLocale = "russian"
	DefaultSearchLimit  = 10
	DefaultWorkerCount  = 4
	DefaultDBURL        = "sqlite:///lattice.db"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// AppConfig is the resolved application configuration. Values come from
// defaults, a .env file, environment variables, and flags, in that order.
type AppConfig struct {
	host         string
	port         int
	dbURL        string
	logLevel     string
	logFormat    LogFormat
	searchLocale string
	searchLimit  int
	workerCount  int
	apiTokens    []string
}

// NewAppConfig creates an AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		host:         DefaultHost,
		port:         DefaultPort,
		dbURL:        DefaultDBURL,
		logLevel:     DefaultLogLevel,
		logFormat:    LogFormatPretty,
		searchLocale: DefaultSearchLocale,
		searchLimit:  DefaultSearchLimit,
		workerCount:  DefaultWorkerCount,
	}
}

// Host returns the server host.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port.
func (c AppConfig) Port() int { return c.port }

// Addr returns the host:port listen address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log verbosity level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// SearchLocale returns the stemming locale for the search index.
func (c AppConfig) SearchLocale() string { return c.searchLocale }

// SearchLimit returns the default page size for searches.
func (c AppConfig) SearchLimit() int { return c.searchLimit }

// WorkerCount returns the parallelism used by bulk reindexing.
func (c AppConfig) WorkerCount() int { return c.workerCount }

// APITokens returns the accepted API tokens.
func (c AppConfig) APITokens() []string {
	result := make([]string, len(c.apiTokens))
	copy(result, c.apiTokens)
	return result
}

// AppConfigOption mutates an AppConfig during construction.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithSearchLocale sets the stemming locale.
func WithSearchLocale(locale string) AppConfigOption {
	return func(c *AppConfig) { c.searchLocale = locale }
}

// WithSearchLimit sets the default search page size.
func WithSearchLimit(limit int) AppConfigOption {
	return func(c *AppConfig) { c.searchLimit = limit }
}

// WithWorkerCount sets the reindex parallelism.
func WithWorkerCount(n int) AppConfigOption {
	return func(c *AppConfig) { c.workerCount = n }
}

// WithAPITokens sets the accepted API tokens.
func WithAPITokens(tokens []string) AppConfigOption {
	return func(c *AppConfig) {
		c.apiTokens = make([]string, len(tokens))
		copy(c.apiTokens, tokens)
	}
}

// NewAppConfigWithOptions creates an AppConfig with defaults and applies
// the given options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a copy with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns the startup attributes logged by serve, with secrets
// masked.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("addr", c.Addr()),
		slog.String("db_url", c.maskedDBURL()),
		slog.String("log_level", c.logLevel),
		slog.String("log_format", string(c.logFormat)),
		slog.String("search_locale", c.searchLocale),
		slog.Int("worker_count", c.workerCount),
		slog.Int("api_tokens", len(c.apiTokens)),
	}
}

func (c AppConfig) maskedDBURL() string {
	parsed, err := url.Parse(c.dbURL)
	if err != nil || parsed.User == nil {
		return c.dbURL
	}
	parsed.User = url.User(parsed.User.Username())
	return strings.Replace(parsed.String(), "@", ":***@", 1)
}
