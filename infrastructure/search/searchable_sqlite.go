package search

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/latticehq/lattice/domain/identity"
	"github.com/latticehq/lattice/domain/search"
	"github.com/latticehq/lattice/internal/database"
)

// Per-tier bm25 weights, matching the A/B/C setweight ordering of the
// Postgres store. The two leading zeros cover the unindexed id columns.
const sqliteRankExpr = "-bm25(searchables_fts, 0.0, 0.0, 4.0, 2.0, 1.0)"

// SqliteSearchableStore implements search.SearchableStore on SQLite using
// an FTS5 shadow table alongside the plain searchables table. The shadow
// table is created by persistence.AutoMigrate. Ranking uses bm25 with
// per-tier weights; the tsearch locale does not apply here, the unicode61
// tokenizer handles all scripts.
type SqliteSearchableStore struct {
	db     database.Database
	logger *slog.Logger
}

// NewSqliteSearchableStore creates a SqliteSearchableStore.
func NewSqliteSearchableStore(db database.Database, logger *slog.Logger) *SqliteSearchableStore {
	return &SqliteSearchableStore{db: db, logger: logger}
}

// Upsert replaces the index row for the entity in both the searchables
// table and its FTS5 shadow, inside one transaction.
func (s *SqliteSearchableStore) Upsert(ctx context.Context, row search.Searchable) error {
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := deleteRef(tx, row.Ref()); err != nil {
			return err
		}
		if err := deleteFTSRef(tx, row.Ref()); err != nil {
			return err
		}
		if err := insertSearchable(tx, row); err != nil {
			return err
		}
		return insertFTS(tx, row)
	})
	if err != nil {
		return err
	}
	s.logger.Debug("searchable indexed",
		"object", row.Ref().IsObject(),
		"id", row.Ref().ID(),
	)
	return nil
}

// Delete removes the index row for the entity, if present.
func (s *SqliteSearchableStore) Delete(ctx context.Context, ref search.Ref) error {
	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := deleteRef(tx, ref); err != nil {
			return err
		}
		return deleteFTSRef(tx, ref)
	})
}

// Search runs the ranked query and the total count with identical
// predicates inside one transaction.
func (s *SqliteSearchableStore) Search(ctx context.Context, query search.Query, caller identity.Identity) (search.Result, error) {
	match := translateQuery(query.QueryText())
	if match == "" {
		return search.NewResult(query, nil, 0), nil
	}

	type hit struct {
		ObjectID *int64 `gorm:"column:object_id"`
		TagID    *int64 `gorm:"column:tag_id"`
	}

	return database.WithReadTransaction(ctx, s.db, func(tx *gorm.DB) (search.Result, error) {
		matching := func() *gorm.DB {
			db := tx.Table("searchables_fts").Where("searchables_fts MATCH ?", match)
			return applyVisibility(db, caller)
		}

		var hits []hit
		err := matching().
			Select(fmt.Sprintf("object_id, tag_id, %s AS score", sqliteRankExpr)).
			Order("score DESC").
			Order("object_id ASC NULLS LAST").
			Order("tag_id ASC").
			Limit(query.ItemsPerPage()).
			Offset(query.Offset()).
			Scan(&hits).Error
		if err != nil {
			return search.Result{}, fmt.Errorf("search searchables: %w", err)
		}

		var total int64
		if err := matching().Count(&total).Error; err != nil {
			return search.Result{}, fmt.Errorf("count searchables: %w", err)
		}

		items := make([]search.Item, len(hits))
		for i, h := range hits {
			items[i] = itemFromIDs(h.ObjectID, h.TagID)
		}
		return search.NewResult(query, items, total), nil
	})
}

func deleteFTSRef(tx *gorm.DB, ref search.Ref) error {
	column := "tag_id"
	if ref.IsObject() {
		column = "object_id"
	}
	err := tx.Exec(fmt.Sprintf("DELETE FROM searchables_fts WHERE %s = ?", column), ref.ID()).Error
	if err != nil {
		return fmt.Errorf("delete searchable fts row: %w", err)
	}
	return nil
}

func insertFTS(tx *gorm.DB, row search.Searchable) error {
	var objectID, tagID *int64
	id := row.Ref().ID()
	if row.Ref().IsObject() {
		objectID = &id
	} else {
		tagID = &id
	}
	err := tx.Exec(
		`INSERT INTO searchables_fts (object_id, tag_id, text_a, text_b, text_c)
		 VALUES (?, ?, ?, ?, ?)`,
		objectID, tagID, row.Tiers().A(), row.Tiers().B(), row.Tiers().C(),
	).Error
	if err != nil {
		return fmt.Errorf("insert searchable fts row: %w", err)
	}
	return nil
}
