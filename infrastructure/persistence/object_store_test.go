package persistence_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticehq/lattice/domain/object"
	"github.com/latticehq/lattice/domain/tag"
	"github.com/latticehq/lattice/infrastructure/persistence"
	"github.com/latticehq/lattice/internal/domain"
	"github.com/latticehq/lattice/internal/testdb"
)

func newObjectStore(t *testing.T) *persistence.ObjectStore {
	t.Helper()
	return persistence.NewObjectStore(testdb.New(t), slog.Default())
}

func mustObject(t *testing.T, objectType object.Type, name string) object.Object {
	t.Helper()
	obj, err := object.New(objectType, name, "desc", 1, true)
	require.NoError(t, err)
	return obj
}

func TestObjectStoreSaveAssignsID(t *testing.T) {
	store := newObjectStore(t)
	ctx := context.Background()

	obj, err := store.Save(ctx, mustObject(t, object.TypeLink, "Home"), object.NewLink("https://go.dev", false))
	require.NoError(t, err)
	require.NotZero(t, obj.ID())

	loaded, err := store.Get(ctx, obj.ID())
	require.NoError(t, err)
	require.Equal(t, "Home", loaded.Name())
	require.Equal(t, object.TypeLink, loaded.Type())
}

func TestObjectStoreGetMissing(t *testing.T) {
	store := newObjectStore(t)

	_, err := store.Get(context.Background(), 12345)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestObjectStorePayloadRoundTrips(t *testing.T) {
	store := newObjectStore(t)
	ctx := context.Background()

	t.Run("link", func(t *testing.T) {
		obj, err := store.Save(ctx, mustObject(t, object.TypeLink, "Link"), object.NewLink("https://example.com", true))
		require.NoError(t, err)

		payload, err := store.Payload(ctx, obj)
		require.NoError(t, err)
		link, ok := payload.(object.Link)
		require.True(t, ok)
		require.Equal(t, "https://example.com", link.URL())
		require.True(t, link.ShowDescriptionAsLink())
	})

	t.Run("markdown", func(t *testing.T) {
		obj, err := store.Save(ctx, mustObject(t, object.TypeMarkdown, "Doc"), object.NewMarkdown("# hi"))
		require.NoError(t, err)

		payload, err := store.Payload(ctx, obj)
		require.NoError(t, err)
		md, ok := payload.(object.Markdown)
		require.True(t, ok)
		require.Equal(t, "# hi", md.RawText())
	})

	t.Run("to-do list keeps item order", func(t *testing.T) {
		list := object.NewToDoList("manual", []object.ToDoItem{
			object.NewToDoItem(1, "open", "first", "", 0, true),
			object.NewToDoItem(2, "done", "second", "note", 1, false),
		})
		obj, err := store.Save(ctx, mustObject(t, object.TypeToDoList, "Chores"), list)
		require.NoError(t, err)

		payload, err := store.Payload(ctx, obj)
		require.NoError(t, err)
		loaded, ok := payload.(object.ToDoList)
		require.True(t, ok)
		require.Equal(t, "manual", loaded.SortType())
		items := loaded.Items()
		require.Len(t, items, 2)
		require.Equal(t, "first", items[0].Text())
		require.Equal(t, "second", items[1].Text())
		require.Equal(t, "note", items[1].Commentary())
	})

	t.Run("composite keeps cells", func(t *testing.T) {
		composite := object.NewComposite("grid", true, []object.CompositeCell{
			object.NewCompositeCell(10, 0, 0, 1, true, true, false),
			object.NewCompositeCell(11, 0, 1, 0, false, false, true),
		})
		obj, err := store.Save(ctx, mustObject(t, object.TypeComposite, "Board"), composite)
		require.NoError(t, err)

		payload, err := store.Payload(ctx, obj)
		require.NoError(t, err)
		loaded, ok := payload.(object.Composite)
		require.True(t, ok)
		require.Equal(t, "grid", loaded.DisplayMode())
		require.True(t, loaded.NumerateChapters())
		cells := loaded.Cells()
		require.Len(t, cells, 2)
		require.Equal(t, int64(10), cells[0].SubobjectID())
		require.Equal(t, int64(11), cells[1].SubobjectID())
	})
}

func TestObjectStoreSaveReplacesPayload(t *testing.T) {
	store := newObjectStore(t)
	ctx := context.Background()

	obj, err := store.Save(ctx, mustObject(t, object.TypeMarkdown, "Doc"), object.NewMarkdown("v1"))
	require.NoError(t, err)

	obj, err = store.Save(ctx, obj, object.NewMarkdown("v2"))
	require.NoError(t, err)

	payload, err := store.Payload(ctx, obj)
	require.NoError(t, err)
	require.Equal(t, "v2", payload.(object.Markdown).RawText())
}

func TestObjectStoreSaveRejectsMismatchedPayload(t *testing.T) {
	store := newObjectStore(t)

	_, err := store.Save(context.Background(), mustObject(t, object.TypeLink, "Link"), object.NewMarkdown("oops"))
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestObjectStoreDeleteCascades(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewObjectStore(db, slog.Default())
	tags := persistence.NewTagStore(db, slog.Default())
	ctx := context.Background()

	obj, err := store.Save(ctx, mustObject(t, object.TypeMarkdown, "Doc"), object.NewMarkdown("body"))
	require.NoError(t, err)

	saved, err := tags.Save(ctx, tag.New("t", "", true))
	require.NoError(t, err)
	require.NoError(t, store.Attach(ctx, obj.ID(), saved.ID()))

	require.NoError(t, store.Delete(ctx, obj.ID()))

	_, err = store.Get(ctx, obj.ID())
	require.ErrorIs(t, err, domain.ErrNotFound)

	var markdownRows, linkRows int64
	require.NoError(t, db.Session(ctx).Model(&persistence.MarkdownModel{}).Where("object_id = ?", obj.ID()).Count(&markdownRows).Error)
	require.NoError(t, db.Session(ctx).Model(&persistence.ObjectTagModel{}).Where("object_id = ?", obj.ID()).Count(&linkRows).Error)
	require.Zero(t, markdownRows)
	require.Zero(t, linkRows)
}

func TestObjectStoreFindFilters(t *testing.T) {
	store := newObjectStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, mustObject(t, object.TypeLink, "A"), object.NewLink("https://a", false))
	require.NoError(t, err)
	unpublished, err := object.New(object.TypeMarkdown, "B", "", 2, false)
	require.NoError(t, err)
	_, err = store.Save(ctx, unpublished, object.NewMarkdown(""))
	require.NoError(t, err)

	links, err := store.Find(ctx, object.WithType(object.TypeLink))
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, "A", links[0].Name())

	drafts, err := store.Find(ctx, object.WithPublished(false))
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	require.Equal(t, "B", drafts[0].Name())

	owned, err := store.Find(ctx, object.WithOwner(2))
	require.NoError(t, err)
	require.Len(t, owned, 1)
}

func TestObjectStoreTagAttachment(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewObjectStore(db, slog.Default())
	tags := persistence.NewTagStore(db, slog.Default())
	ctx := context.Background()

	obj, err := store.Save(ctx, mustObject(t, object.TypeMarkdown, "Doc"), object.NewMarkdown(""))
	require.NoError(t, err)
	tagA, err := tags.Save(ctx, tag.New("a", "", true))
	require.NoError(t, err)
	tagB, err := tags.Save(ctx, tag.New("b", "", true))
	require.NoError(t, err)

	require.NoError(t, store.Attach(ctx, obj.ID(), tagA.ID()))
	require.NoError(t, store.Attach(ctx, obj.ID(), tagB.ID()))
	// Attaching twice is a no-op.
	require.NoError(t, store.Attach(ctx, obj.ID(), tagA.ID()))

	ids, err := store.TagIDs(ctx, obj.ID())
	require.NoError(t, err)
	require.Equal(t, []int64{tagA.ID(), tagB.ID()}, ids)

	require.NoError(t, store.Detach(ctx, obj.ID(), tagA.ID()))
	ids, err = store.TagIDs(ctx, obj.ID())
	require.NoError(t, err)
	require.Equal(t, []int64{tagB.ID()}, ids)
}
