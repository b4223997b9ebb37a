package search

import (
	"log/slog"

	"github.com/latticehq/lattice/domain/search"
	"github.com/latticehq/lattice/internal/database"
)

// NewSearchableStore returns the searchable store for the database dialect:
// tsvector on Postgres, FTS5 on SQLite.
func NewSearchableStore(db database.Database, locale string, logger *slog.Logger) search.SearchableStore {
	if db.IsPostgres() {
		return NewPostgresSearchableStore(db, locale, logger)
	}
	return NewSqliteSearchableStore(db, logger)
}
