package search

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/latticehq/lattice/domain/identity"
	"github.com/latticehq/lattice/domain/search"
	"github.com/latticehq/lattice/internal/database"
	"github.com/latticehq/lattice/internal/domain"
)

// rankNormalization is passed to ts_rank: divide by document length (2) and
// by 1 + unique-word count (32), so long documents do not dominate.
const rankNormalization = 2 | 32

// localePattern limits locale names to what a tsearch config name can be,
// since the locale is interpolated into DDL identifiers.
var localePattern = regexp.MustCompile(`^[a-z][a-z_]*$`)

// PostgresSearchableStore implements search.SearchableStore on Postgres.
//
// The weighted vector lives in a generated tsvector column named after the
// locale, so the vector is always a pure function of the three text tiers.
// The column and its GIN index are created lazily on first use.
type PostgresSearchableStore struct {
	db     database.Database
	logger *slog.Logger
	locale string

	initMu      sync.Mutex
	initialized bool
}

// NewPostgresSearchableStore creates a PostgresSearchableStore for the given
// tsearch locale (e.g. "russian", "english", "simple").
func NewPostgresSearchableStore(db database.Database, locale string, logger *slog.Logger) *PostgresSearchableStore {
	return &PostgresSearchableStore{db: db, logger: logger, locale: locale}
}

func (s *PostgresSearchableStore) tsvColumn() string {
	return "searchable_tsv_" + s.locale
}

// initialize creates the locale's generated tsvector column and GIN index
// if they do not exist yet. Safe to call concurrently.
func (s *PostgresSearchableStore) initialize(ctx context.Context) error {
	s.initMu.Lock()
	defer s.initMu.Unlock()
	if s.initialized {
		return nil
	}
	if !localePattern.MatchString(s.locale) {
		return fmt.Errorf("%w: invalid search locale %q", domain.ErrValidation, s.locale)
	}

	session := s.db.Session(ctx)
	addColumn := fmt.Sprintf(`
		ALTER TABLE searchables ADD COLUMN IF NOT EXISTS %s tsvector
		GENERATED ALWAYS AS (
			setweight(to_tsvector('%s'::regconfig, coalesce(text_a, '')), 'A') ||
			setweight(to_tsvector('%s'::regconfig, coalesce(text_b, '')), 'B') ||
			setweight(to_tsvector('%s'::regconfig, coalesce(text_c, '')), 'C')
		) STORED`,
		s.tsvColumn(), s.locale, s.locale, s.locale)
	if err := session.Exec(addColumn).Error; err != nil {
		return fmt.Errorf("create tsvector column: %w", err)
	}

	addIndex := fmt.Sprintf(
		`CREATE INDEX IF NOT EXISTS idx_%s ON searchables USING GIN (%s)`,
		s.tsvColumn(), s.tsvColumn())
	if err := session.Exec(addIndex).Error; err != nil {
		return fmt.Errorf("create tsvector index: %w", err)
	}

	s.logger.Debug("search index initialized", "locale", s.locale, "column", s.tsvColumn())
	s.initialized = true
	return nil
}

// Upsert replaces the index row for the entity. Delete-then-insert inside
// one transaction keeps the operation idempotent without relying on
// ON CONFLICT against partial unique indexes.
func (s *PostgresSearchableStore) Upsert(ctx context.Context, row search.Searchable) error {
	if err := s.initialize(ctx); err != nil {
		return err
	}
	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := deleteRef(tx, row.Ref()); err != nil {
			return err
		}
		return insertSearchable(tx, row)
	})
}

// Delete removes the index row for the entity, if present.
func (s *PostgresSearchableStore) Delete(ctx context.Context, ref search.Ref) error {
	if err := s.initialize(ctx); err != nil {
		return err
	}
	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		return deleteRef(tx, ref)
	})
}

// Search runs the ranked query and the total count with identical
// predicates inside one read-only transaction.
func (s *PostgresSearchableStore) Search(ctx context.Context, query search.Query, caller identity.Identity) (search.Result, error) {
	if err := s.initialize(ctx); err != nil {
		return search.Result{}, err
	}

	type hit struct {
		ObjectID *int64 `gorm:"column:object_id"`
		TagID    *int64 `gorm:"column:tag_id"`
	}

	return database.WithReadTransaction(ctx, s.db, func(tx *gorm.DB) (search.Result, error) {
		matching := func() *gorm.DB {
			db := tx.Table("searchables").Where(
				fmt.Sprintf("%s @@ websearch_to_tsquery(?::regconfig, ?)", s.tsvColumn()),
				s.locale, query.QueryText(),
			)
			return applyVisibility(db, caller)
		}

		var hits []hit
		err := matching().
			Select(
				fmt.Sprintf("object_id, tag_id, ts_rank(%s, websearch_to_tsquery(?::regconfig, ?), %d) AS score",
					s.tsvColumn(), rankNormalization),
				s.locale, query.QueryText(),
			).
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

func itemFromIDs(objectID, tagID *int64) search.Item {
	if objectID != nil {
		return search.NewItem(*objectID, search.ItemTypeObject)
	}
	if tagID != nil {
		return search.NewItem(*tagID, search.ItemTypeTag)
	}
	return search.Item{}
}

func deleteRef(tx *gorm.DB, ref search.Ref) error {
	column := "tag_id"
	if ref.IsObject() {
		column = "object_id"
	}
	err := tx.Exec(fmt.Sprintf("DELETE FROM searchables WHERE %s = ?", column), ref.ID()).Error
	if err != nil {
		return fmt.Errorf("delete searchable: %w", err)
	}
	return nil
}

func insertSearchable(tx *gorm.DB, row search.Searchable) error {
	var objectID, tagID *int64
	id := row.Ref().ID()
	if row.Ref().IsObject() {
		objectID = &id
	} else {
		tagID = &id
	}
	err := tx.Exec(
		`INSERT INTO searchables (object_id, tag_id, modified_at, text_a, text_b, text_c)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		objectID, tagID, row.ModifiedAt().UTC().Truncate(time.Microsecond),
		row.Tiers().A(), row.Tiers().B(), row.Tiers().C(),
	).Error
	if err != nil {
		return fmt.Errorf("insert searchable: %w", err)
	}
	return nil
}
