package object

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticehq/lattice/internal/domain"
)

func TestNewObject(t *testing.T) {
	obj, err := New(TypeMarkdown, "Notes", "my notes", 7, true)
	require.NoError(t, err)
	require.Zero(t, obj.ID())
	require.Equal(t, TypeMarkdown, obj.Type())
	require.Equal(t, "Notes", obj.Name())
	require.Equal(t, int64(7), obj.OwnerID())
	require.True(t, obj.IsPublished())
	require.False(t, obj.CreatedAt().IsZero())
}

func TestNewObjectNameValidation(t *testing.T) {
	_, err := New(TypeLink, "", "", 1, true)
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = New(TypeLink, strings.Repeat("n", MaxNameLength+1), "", 1, true)
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = New(TypeLink, strings.Repeat("n", MaxNameLength), "", 1, true)
	require.NoError(t, err)
}

func TestPayloadTypes(t *testing.T) {
	require.Equal(t, TypeLink, NewLink("u", false).PayloadType())
	require.Equal(t, TypeMarkdown, NewMarkdown("t").PayloadType())
	require.Equal(t, TypeToDoList, NewToDoList("manual", nil).PayloadType())
	require.Equal(t, TypeComposite, NewComposite("grid", false, nil).PayloadType())
}

func TestToDoListCopiesItems(t *testing.T) {
	items := []ToDoItem{NewToDoItem(1, "open", "a", "", 0, true)}
	list := NewToDoList("manual", items)

	items[0] = NewToDoItem(2, "done", "b", "", 0, false)
	require.Equal(t, "a", list.Items()[0].Text())
}
