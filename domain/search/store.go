package search

import (
	"context"

	"github.com/latticehq/lattice/domain/identity"
)

// SearchableStore is the contract the dialect-specific index stores
// implement.
//
// Search runs the ranked query and the total count with identical
// predicates inside one read transaction, so the count always agrees with
// the returned page under concurrent writes.
type SearchableStore interface {
	// Upsert inserts or replaces the index row for the given entity.
	// Idempotent: unchanged inputs produce an identical row.
	Upsert(ctx context.Context, row Searchable) error

	// Delete removes the index row for the given entity, if present.
	Delete(ctx context.Context, ref Ref) error

	// Search returns the ranked page of items visible to the caller plus
	// the unpaged total.
	Search(ctx context.Context, query Query, caller identity.Identity) (Result, error)
}
