package object

import (
	"context"

	"github.com/latticehq/lattice/domain/store"
)

// Store is the persistence contract for objects and their payloads.
type Store interface {
	Get(ctx context.Context, id int64) (Object, error)
	Find(ctx context.Context, options ...store.Option) ([]Object, error)
	// Payload loads the variant side table row for the given object.
	Payload(ctx context.Context, obj Object) (Payload, error)
	// Save persists the object header and payload in one transaction and
	// returns the object with its assigned id.
	Save(ctx context.Context, obj Object, payload Payload) (Object, error)
	Delete(ctx context.Context, id int64) error
	// TagIDs returns the ids of tags attached to the object.
	TagIDs(ctx context.Context, objectID int64) ([]int64, error)
	// Attach links a tag to the object; Detach removes the link.
	Attach(ctx context.Context, objectID, tagID int64) error
	Detach(ctx context.Context, objectID, tagID int64) error
}

// WithOwner filters by the "owner_id" column.
func WithOwner(ownerID int64) store.Option {
	return store.WithCondition("owner_id", ownerID)
}

// WithType filters by the "object_type" column.
func WithType(t Type) store.Option {
	return store.WithCondition("object_type", string(t))
}

// WithPublished filters by the "is_published" column.
func WithPublished(published bool) store.Option {
	return store.WithCondition("is_published", published)
}
