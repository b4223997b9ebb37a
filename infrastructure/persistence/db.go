package persistence

import (
	"context"
	"fmt"

	"github.com/latticehq/lattice/internal/database"
)

// AutoMigrate creates or updates all primary tables and the searchables
// index table, then applies the constraints GORM cannot express. On SQLite
// it also creates the FTS5 shadow table the search store and the entity
// delete paths both write to.
func AutoMigrate(ctx context.Context, db database.Database) error {
	err := db.GORM().WithContext(ctx).AutoMigrate(
		&ObjectModel{},
		&TagModel{},
		&ObjectTagModel{},
		&LinkModel{},
		&MarkdownModel{},
		&ToDoListModel{},
		&ToDoListItemModel{},
		&CompositePropertiesModel{},
		&CompositeCellModel{},
		&SearchableModel{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return postMigrate(ctx, db)
}

// postMigrate applies partial unique indexes and check constraints.
//
// A searchable row points at exactly one entity. The partial unique indexes
// give at-most-one-row-per-entity on both dialects; the XOR check needs
// ALTER TABLE ADD CONSTRAINT, which SQLite does not support, so there it is
// enforced by the stores alone.
func postMigrate(ctx context.Context, db database.Database) error {
	session := db.Session(ctx)

	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_searchables_object_id
			ON searchables (object_id) WHERE object_id IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_searchables_tag_id
			ON searchables (tag_id) WHERE tag_id IS NOT NULL`,
	}
	if db.IsSQLite() {
		// Tokenizer and weights must stay in step with the SQLite
		// searchable store.
		statements = append(statements, `CREATE VIRTUAL TABLE IF NOT EXISTS searchables_fts USING fts5(
			object_id UNINDEXED,
			tag_id UNINDEXED,
			text_a,
			text_b,
			text_c,
			tokenize='porter unicode61'
		)`)
	}
	if db.IsPostgres() {
		statements = append(statements, `DO $$
			BEGIN
				IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'searchables_kind_xor') THEN
					ALTER TABLE searchables
						ADD CONSTRAINT searchables_kind_xor
						CHECK ((object_id IS NULL) <> (tag_id IS NULL));
				END IF;
			END $$`)
	}

	for _, stmt := range statements {
		if err := session.Exec(stmt).Error; err != nil {
			return fmt.Errorf("post migrate: %w", err)
		}
	}
	return nil
}
