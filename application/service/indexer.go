// Package service provides the application services: indexing searchable
// rows and answering search queries.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/latticehq/lattice/domain/object"
	"github.com/latticehq/lattice/domain/search"
	"github.com/latticehq/lattice/domain/tag"
)

// TierExtractor turns domain entities into weighted text tiers. Extraction
// must not fail: unreadable content degrades to whatever tiers can still be
// built.
type TierExtractor interface {
	ObjectTiers(obj object.Object, payload object.Payload) search.TextTiers
	TagTiers(t tag.Tag) search.TextTiers
}

// Indexer maintains the searchable index rows for objects and tags.
type Indexer struct {
	objects     object.Store
	tags        tag.Store
	extractor   TierExtractor
	searchables search.SearchableStore
	logger      *slog.Logger
	workers     int
}

// NewIndexer creates an Indexer. workers bounds ReindexAll concurrency.
func NewIndexer(
	objects object.Store,
	tags tag.Store,
	extractor TierExtractor,
	searchables search.SearchableStore,
	logger *slog.Logger,
	workers int,
) *Indexer {
	if workers < 1 {
		workers = 1
	}
	return &Indexer{
		objects:     objects,
		tags:        tags,
		extractor:   extractor,
		searchables: searchables,
		logger:      logger,
		workers:     workers,
	}
}

// IndexObject rebuilds the searchable row for the given object. The row's
// modified_at is set to the given timestamp, normally the object's own
// modification time. A missing payload degrades to header-only tiers rather
// than failing the index.
func (ix *Indexer) IndexObject(ctx context.Context, objectID int64, at time.Time) error {
	obj, err := ix.objects.Get(ctx, objectID)
	if err != nil {
		return fmt.Errorf("index object %d: %w", objectID, err)
	}

	payload, err := ix.objects.Payload(ctx, obj)
	if err != nil {
		ix.logger.Warn("payload unavailable, indexing header only",
			"object_id", objectID, "error", err)
		payload = nil
	}

	tiers := ix.extractor.ObjectTiers(obj, payload)
	row := search.NewSearchable(search.ObjectRef(objectID), at.UTC(), tiers)
	if err := ix.searchables.Upsert(ctx, row); err != nil {
		return fmt.Errorf("index object %d: %w", objectID, err)
	}
	return nil
}

// IndexTag rebuilds the searchable row for the given tag.
func (ix *Indexer) IndexTag(ctx context.Context, tagID int64, at time.Time) error {
	t, err := ix.tags.Get(ctx, tagID)
	if err != nil {
		return fmt.Errorf("index tag %d: %w", tagID, err)
	}

	row := search.NewSearchable(search.TagRef(tagID), at.UTC(), ix.extractor.TagTiers(t))
	if err := ix.searchables.Upsert(ctx, row); err != nil {
		return fmt.Errorf("index tag %d: %w", tagID, err)
	}
	return nil
}

// RemoveObject drops the object's searchable row, if present.
func (ix *Indexer) RemoveObject(ctx context.Context, objectID int64) error {
	if err := ix.searchables.Delete(ctx, search.ObjectRef(objectID)); err != nil {
		return fmt.Errorf("remove object %d from index: %w", objectID, err)
	}
	return nil
}

// RemoveTag drops the tag's searchable row, if present.
func (ix *Indexer) RemoveTag(ctx context.Context, tagID int64) error {
	if err := ix.searchables.Delete(ctx, search.TagRef(tagID)); err != nil {
		return fmt.Errorf("remove tag %d from index: %w", tagID, err)
	}
	return nil
}

// ReindexAll rebuilds searchable rows for every object and tag, using the
// entity's own modification time for each row. Work is fanned out across
// the configured number of workers; the first failure cancels the rest.
func (ix *Indexer) ReindexAll(ctx context.Context) error {
	objects, err := ix.objects.Find(ctx)
	if err != nil {
		return fmt.Errorf("reindex: list objects: %w", err)
	}
	tags, err := ix.tags.Find(ctx)
	if err != nil {
		return fmt.Errorf("reindex: list tags: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.workers)

	for _, obj := range objects {
		obj := obj
		g.Go(func() error {
			return ix.IndexObject(gctx, obj.ID(), obj.ModifiedAt())
		})
	}
	for _, t := range tags {
		t := t
		g.Go(func() error {
			return ix.IndexTag(gctx, t.ID(), t.ModifiedAt())
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("reindex: %w", err)
	}

	ix.logger.Info("reindex complete", "objects", len(objects), "tags", len(tags))
	return nil
}
