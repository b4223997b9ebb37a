package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/latticehq/lattice/domain/store"
	"github.com/latticehq/lattice/domain/tag"
	"github.com/latticehq/lattice/internal/database"
	"github.com/latticehq/lattice/internal/domain"
)

// TagStore persists tags.
type TagStore struct {
	repo   database.Repository[tag.Tag, TagModel]
	db     database.Database
	logger *slog.Logger
}

// NewTagStore creates a TagStore.
func NewTagStore(db database.Database, logger *slog.Logger) *TagStore {
	return &TagStore{
		repo:   database.NewRepository[tag.Tag, TagModel](db, TagMapper{}, "tag"),
		db:     db,
		logger: logger,
	}
}

// Get retrieves a tag by id.
func (s *TagStore) Get(ctx context.Context, id int64) (tag.Tag, error) {
	t, err := s.repo.FindOne(ctx, store.WithCondition("tag_id", id))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return tag.Tag{}, fmt.Errorf("%w: tag %d", domain.ErrNotFound, id)
		}
		return tag.Tag{}, err
	}
	return t, nil
}

// Find retrieves tags matching the given options.
func (s *TagStore) Find(ctx context.Context, options ...store.Option) ([]tag.Tag, error) {
	return s.repo.Find(ctx, options...)
}

// Save persists the tag and returns it with its assigned id.
func (s *TagStore) Save(ctx context.Context, t tag.Tag) (tag.Tag, error) {
	model := s.repo.Mapper().ToModel(t)
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if model.TagID == 0 {
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("create tag: %w", err)
			}
			return nil
		}
		if err := tx.Save(&model).Error; err != nil {
			return fmt.Errorf("update tag: %w", err)
		}
		return nil
	})
	if err != nil {
		return tag.Tag{}, err
	}
	return s.repo.Mapper().ToDomain(model), nil
}

// Delete removes the tag, its object links, and its search index row in one
// transaction.
func (s *TagStore) Delete(ctx context.Context, id int64) error {
	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&ObjectTagModel{}).Error; err != nil {
			return fmt.Errorf("delete tag object links: %w", err)
		}
		if err := tx.Where("tag_id = ?", id).Delete(&SearchableModel{}).Error; err != nil {
			return fmt.Errorf("delete tag searchable: %w", err)
		}
		if err := deleteFTSRow(tx, s.db, "tag_id", id); err != nil {
			return err
		}
		if err := tx.Where("tag_id = ?", id).Delete(&TagModel{}).Error; err != nil {
			return fmt.Errorf("delete tag: %w", err)
		}
		return nil
	})
}
