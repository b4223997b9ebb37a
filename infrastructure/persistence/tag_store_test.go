package persistence_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticehq/lattice/domain/tag"
	"github.com/latticehq/lattice/infrastructure/persistence"
	"github.com/latticehq/lattice/internal/domain"
	"github.com/latticehq/lattice/internal/testdb"
)

func TestTagStoreSaveAndGet(t *testing.T) {
	store := persistence.NewTagStore(testdb.New(t), slog.Default())
	ctx := context.Background()

	saved, err := store.Save(ctx, tag.New("golang", "Go posts", true))
	require.NoError(t, err)
	require.NotZero(t, saved.ID())

	loaded, err := store.Get(ctx, saved.ID())
	require.NoError(t, err)
	require.Equal(t, "golang", loaded.Name())
	require.Equal(t, "Go posts", loaded.Description())
	require.True(t, loaded.IsPublished())
}

func TestTagStoreGetMissing(t *testing.T) {
	store := persistence.NewTagStore(testdb.New(t), slog.Default())

	_, err := store.Get(context.Background(), 999)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTagStoreUpdate(t *testing.T) {
	store := persistence.NewTagStore(testdb.New(t), slog.Default())
	ctx := context.Background()

	saved, err := store.Save(ctx, tag.New("draft", "", false))
	require.NoError(t, err)

	updated := tag.Reconstruct(saved.ID(), "published", "now live", true, saved.CreatedAt(), saved.ModifiedAt())
	updated, err = store.Save(ctx, updated)
	require.NoError(t, err)
	require.Equal(t, saved.ID(), updated.ID())

	loaded, err := store.Get(ctx, saved.ID())
	require.NoError(t, err)
	require.Equal(t, "published", loaded.Name())
	require.True(t, loaded.IsPublished())
}

func TestTagStoreFindPublished(t *testing.T) {
	store := persistence.NewTagStore(testdb.New(t), slog.Default())
	ctx := context.Background()

	_, err := store.Save(ctx, tag.New("public", "", true))
	require.NoError(t, err)
	_, err = store.Save(ctx, tag.New("hidden", "", false))
	require.NoError(t, err)

	published, err := store.Find(ctx, tag.WithPublished(true))
	require.NoError(t, err)
	require.Len(t, published, 1)
	require.Equal(t, "public", published[0].Name())
}

func TestTagStoreDelete(t *testing.T) {
	store := persistence.NewTagStore(testdb.New(t), slog.Default())
	ctx := context.Background()

	saved, err := store.Save(ctx, tag.New("temp", "", true))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, saved.ID()))

	_, err = store.Get(ctx, saved.ID())
	require.ErrorIs(t, err, domain.ErrNotFound)
}
