package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// DBURL is the database connection URL.
	// Env: DB_URL (default: sqlite:///lattice.db)
	DBURL string `envconfig:"DB_URL"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// SearchLocale is the stemming locale of the search index.
	// Env: SEARCH_LOCALE (default: russian)
	SearchLocale string `envconfig:"SEARCH_LOCALE" default:"russian"`

	// SearchLimit is the default search page size.
	// Env: SEARCH_LIMIT (default: 10)
	SearchLimit int `envconfig:"SEARCH_LIMIT" default:"10"`

	// WorkerCount is the parallelism used by bulk reindexing.
	// Env: WORKER_COUNT (default: 4)
	WorkerCount int `envconfig:"WORKER_COUNT" default:"4"`

	// APITokens is a comma-separated list of accepted API tokens.
	// Env: API_TOKENS
	APITokens string `envconfig:"API_TOKENS"`
}

// LoadFromEnv loads EnvConfig from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// Normalize trims whitespace and fills derived defaults.
func (e EnvConfig) Normalize() EnvConfig {
	e.Host = strings.TrimSpace(e.Host)
	e.DBURL = strings.TrimSpace(e.DBURL)
	if e.DBURL == "" {
		e.DBURL = DefaultDBURL
	}
	e.LogLevel = strings.ToUpper(strings.TrimSpace(e.LogLevel))
	e.LogFormat = strings.ToLower(strings.TrimSpace(e.LogFormat))
	e.SearchLocale = strings.ToLower(strings.TrimSpace(e.SearchLocale))
	if e.SearchLocale == "" {
		e.SearchLocale = DefaultSearchLocale
	}
	if e.SearchLimit < 1 {
		e.SearchLimit = DefaultSearchLimit
	}
	if e.WorkerCount < 1 {
		e.WorkerCount = DefaultWorkerCount
	}
	return e
}

// ToAppConfig converts the environment configuration to an AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	format := LogFormatPretty
	if e.LogFormat == string(LogFormatJSON) {
		format = LogFormatJSON
	}

	var tokens []string
	for _, token := range strings.Split(e.APITokens, ",") {
		if token = strings.TrimSpace(token); token != "" {
			tokens = append(tokens, token)
		}
	}

	return NewAppConfigWithOptions(
		WithHost(e.Host),
		WithPort(e.Port),
		WithDBURL(e.DBURL),
		WithLogLevel(e.LogLevel),
		WithLogFormat(format),
		WithSearchLocale(e.SearchLocale),
		WithSearchLimit(e.SearchLimit),
		WithWorkerCount(e.WorkerCount),
		WithAPITokens(tokens),
	)
}
