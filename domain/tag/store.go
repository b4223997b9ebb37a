package tag

import (
	"context"

	"github.com/latticehq/lattice/domain/store"
)

// Store is the persistence contract for tags.
type Store interface {
	Get(ctx context.Context, id int64) (Tag, error)
	Find(ctx context.Context, options ...store.Option) ([]Tag, error)
	Save(ctx context.Context, t Tag) (Tag, error)
	Delete(ctx context.Context, id int64) error
}

// WithPublished filters by the "is_published" column.
func WithPublished(published bool) store.Option {
	return store.WithCondition("is_published", published)
}
