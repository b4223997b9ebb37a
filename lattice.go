// Package lattice provides full-text search over a content workspace of
// objects and tags.
//
// Objects carry a typed payload (link, markdown, to-do list, composite)
// that is flattened into weighted plain-text tiers and kept in a derived
// searchables table. Queries return ranked, permission-filtered pages.
//
// Basic usage:
//
//	client, err := lattice.New(ctx,
//	    lattice.WithSQLite("lattice.db"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	obj, _ := object.New(object.TypeMarkdown, "Notes", "", ownerID, true)
//	obj, _ = client.Objects.Save(ctx, obj, object.NewMarkdown("# Hello"))
//	_ = client.Index.IndexObject(ctx, obj.ID(), obj.ModifiedAt())
//
//	result, _ := client.Search.Query(ctx, identity.Anonymous(), "hello", 1, 10)
package lattice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/latticehq/lattice/application/service"
	"github.com/latticehq/lattice/domain/object"
	"github.com/latticehq/lattice/domain/tag"
	"github.com/latticehq/lattice/infrastructure/extract"
	"github.com/latticehq/lattice/infrastructure/persistence"
	searchstore "github.com/latticehq/lattice/infrastructure/search"
	"github.com/latticehq/lattice/internal/config"
	"github.com/latticehq/lattice/internal/database"
	"github.com/latticehq/lattice/internal/markdown"
)

// ErrNoDatabase is returned by New when no database option was given.
var ErrNoDatabase = errors.New("lattice: no database configured, use WithSQLite, WithPostgres, or WithDatabaseURL")

// Client is the main entry point for the lattice library.
//
// Access resources via struct fields:
//
//	client.Objects.Get(ctx, id)
//	client.Index.IndexObject(ctx, id, modifiedAt)
//	client.Search.Query(ctx, caller, "text", 1, 10)
type Client struct {
	Objects object.Store
	Tags    tag.Store
	Search  *service.Search
	Index   *service.Indexer

	db     database.Database
	logger *slog.Logger
	closed atomic.Bool
}

// New creates a new Client with the given options and migrates the schema.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.dbURL == "" {
		return nil, ErrNoDatabase
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	db, err := database.NewDatabase(ctx, cfg.dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := persistence.AutoMigrate(ctx, db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(err, errClose)
	}

	objects := persistence.NewObjectStore(db, logger)
	tags := persistence.NewTagStore(db, logger)
	searchables := searchstore.NewSearchableStore(db, cfg.locale, logger)

	extractor := extract.NewExtractor(markdown.NewFlattener(), logger)

	return &Client{
		Objects: objects,
		Tags:    tags,
		Search:  service.NewSearch(searchables, cfg.searchLimit, logger),
		Index:   service.NewIndexer(objects, tags, extractor, searchables, logger, cfg.workerCount),
		db:      db,
		logger:  logger,
	}, nil
}

// NewFromConfig creates a Client from an AppConfig, as loaded by
// config.LoadConfig.
func NewFromConfig(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) (*Client, error) {
	return New(ctx,
		WithDatabaseURL(cfg.DBURL()),
		WithSearchLocale(cfg.SearchLocale()),
		WithSearchLimit(cfg.SearchLimit()),
		WithWorkerCount(cfg.WorkerCount()),
		WithLogger(logger),
	)
}

// Logger returns the client logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// Database returns the underlying database handle.
func (c *Client) Database() database.Database {
	return c.db
}

// Close releases the database connection. Safe to call more than once.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.db.Close()
}
