package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticehq/lattice/domain/object"
	"github.com/latticehq/lattice/domain/tag"
	"github.com/latticehq/lattice/internal/markdown"
)

type failingFlattener struct{}

func (failingFlattener) Flatten(string) (string, error) {
	return "", errors.New("boom")
}

func newTestObject(t *testing.T, objectType object.Type, name, description string) object.Object {
	t.Helper()
	obj, err := object.New(objectType, name, description, 1, true)
	require.NoError(t, err)
	return obj
}

func TestObjectTiersLink(t *testing.T) {
	e := NewExtractor(markdown.NewFlattener(), nil)
	obj := newTestObject(t, object.TypeLink, "Go homepage", "the Go site")

	tiers := e.ObjectTiers(obj, object.NewLink("https://go.dev", false))

	require.Equal(t, "Go homepage", tiers.A())
	require.Equal(t, "the Go site", tiers.B())
	require.Equal(t, "https://go.dev", tiers.C())
}

func TestObjectTiersMarkdown(t *testing.T) {
	e := NewExtractor(markdown.NewFlattener(), nil)
	obj := newTestObject(t, object.TypeMarkdown, "Notes", "scratch")

	tiers := e.ObjectTiers(obj, object.NewMarkdown("# Heading\n\nsome *body* text"))

	require.Equal(t, "Notes", tiers.A())
	require.Equal(t, "scratch", tiers.B())
	require.Equal(t, "Heading some body text", tiers.C())
}

func TestObjectTiersMarkdownFlattenFailureDegrades(t *testing.T) {
	e := NewExtractor(failingFlattener{}, nil)
	obj := newTestObject(t, object.TypeMarkdown, "Notes", "scratch")

	tiers := e.ObjectTiers(obj, object.NewMarkdown("anything"))

	require.Equal(t, "Notes", tiers.A())
	require.Equal(t, "scratch", tiers.B())
	require.Equal(t, "", tiers.C())
}

func TestObjectTiersToDoList(t *testing.T) {
	e := NewExtractor(markdown.NewFlattener(), nil)
	obj := newTestObject(t, object.TypeToDoList, "Chores", "")

	list := object.NewToDoList("manual", []object.ToDoItem{
		object.NewToDoItem(1, "open", "buy milk", "from the corner shop", 0, true),
		object.NewToDoItem(2, "done", "walk dog", "", 0, true),
		object.NewToDoItem(3, "open", "   ", "", 1, false),
	})

	tiers := e.ObjectTiers(obj, list)

	require.Equal(t, "Chores", tiers.A())
	require.Equal(t, "", tiers.B())
	require.Equal(t, "buy milk from the corner shop walk dog", tiers.C())
}

func TestObjectTiersComposite(t *testing.T) {
	e := NewExtractor(markdown.NewFlattener(), nil)
	obj := newTestObject(t, object.TypeComposite, "Dashboard", "landing page")

	composite := object.NewComposite("tabs", false, []object.CompositeCell{
		object.NewCompositeCell(42, 0, 0, 0, true, false, false),
	})

	tiers := e.ObjectTiers(obj, composite)

	require.Equal(t, "Dashboard", tiers.A())
	require.Equal(t, "landing page", tiers.B())
	require.Equal(t, "", tiers.C(), "sub-objects are indexed through their own rows")
}

func TestObjectTiersNilPayload(t *testing.T) {
	e := NewExtractor(markdown.NewFlattener(), nil)
	obj := newTestObject(t, object.TypeMarkdown, "Orphan", "no payload row")

	tiers := e.ObjectTiers(obj, nil)

	require.Equal(t, "Orphan", tiers.A())
	require.Equal(t, "no payload row", tiers.B())
	require.Equal(t, "", tiers.C())
}

func TestTagTiers(t *testing.T) {
	e := NewExtractor(markdown.NewFlattener(), nil)

	tiers := e.TagTiers(tag.New("golang", "posts about Go", true))

	require.Equal(t, "golang", tiers.A())
	require.Equal(t, "posts about Go", tiers.B())
	require.Equal(t, "", tiers.C())
}
