// Package search provides the dialect-specific implementations of the
// searchable index store: tsvector full-text search on Postgres and an FTS5
// twin on SQLite.
package search

import (
	"gorm.io/gorm"

	"github.com/latticehq/lattice/domain/identity"
)

// applyVisibility narrows a searchables query to rows the caller may see.
// The fragments are the SQL form of identity.CanSeeObject and
// identity.CanSeeTag; the store tests cross-check the two. The filters run
// as subqueries against the primary tables, so visibility is always
// evaluated against current publication state rather than whatever was true
// at index time.
func applyVisibility(db *gorm.DB, caller identity.Identity) *gorm.DB {
	if caller.IsAdmin() {
		return db
	}
	if caller.IsAnonymous() {
		db = db.Where(
			"(object_id IS NULL OR object_id IN (SELECT object_id FROM objects WHERE is_published = ?))",
			true,
		)
	} else {
		db = db.Where(
			"(object_id IS NULL OR object_id IN (SELECT object_id FROM objects WHERE is_published = ? OR owner_id = ?))",
			true, caller.UserID(),
		)
	}
	return db.Where(
		"(tag_id IS NULL OR tag_id IN (SELECT tag_id FROM tags WHERE is_published = ?))",
		true,
	)
}
