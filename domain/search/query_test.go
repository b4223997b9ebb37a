package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticehq/lattice/internal/domain"
)

func TestNewQuery(t *testing.T) {
	q, err := NewQuery("hello world", 2, 25)
	require.NoError(t, err)
	require.Equal(t, "hello world", q.QueryText())
	require.Equal(t, 2, q.Page())
	require.Equal(t, 25, q.ItemsPerPage())
	require.Equal(t, 25, q.Offset())
}

func TestNewQueryRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		page    int
		perPage int
	}{
		{"empty text", "", 1, 10},
		{"whitespace text", " \t\n ", 1, 10},
		{"overlong text", strings.Repeat("x", MaxQueryLength+1), 1, 10},
		{"zero page", "q", 0, 10},
		{"negative page", "q", -3, 10},
		{"zero items per page", "q", 1, 0},
		{"negative items per page", "q", 1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewQuery(tt.text, tt.page, tt.perPage)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestQueryOffset(t *testing.T) {
	tests := []struct {
		page    int
		perPage int
		want    int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{3, 7, 14},
	}

	for _, tt := range tests {
		q, err := NewQuery("q", tt.page, tt.perPage)
		require.NoError(t, err)
		require.Equal(t, tt.want, q.Offset())
	}
}

func TestMaxLengthQueryAccepted(t *testing.T) {
	_, err := NewQuery(strings.Repeat("y", MaxQueryLength), 1, 10)
	require.NoError(t, err)
}

func TestQueryLengthCountsCharactersNotBytes(t *testing.T) {
	// Every rune here is two bytes; the limit is on characters.
	_, err := NewQuery(strings.Repeat("м", MaxQueryLength), 1, 10)
	require.NoError(t, err)

	_, err = NewQuery(strings.Repeat("м", MaxQueryLength+1), 1, 10)
	require.ErrorIs(t, err, domain.ErrValidation)
}
