package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/latticehq/lattice/domain/identity"
	"github.com/latticehq/lattice/domain/search"
	"github.com/latticehq/lattice/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSearchQueryValidation(t *testing.T) {
	svc := NewSearch(newFakeSearchableStore(), DefaultPageSize, discardLogger())
	ctx := context.Background()
	caller := identity.Anonymous()

	tests := []struct {
		name    string
		text    string
		page    int
		perPage int
	}{
		{"empty text", "", 1, 10},
		{"blank text", "   ", 1, 10},
		{"overlong text", string(make([]byte, search.MaxQueryLength+1)), 1, 10},
		{"zero page", "ok", 0, 10},
		{"negative page", "ok", -1, 10},
		{"negative page size", "ok", 1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Query(ctx, caller, tt.text, tt.page, tt.perPage)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestSearchQueryReturnsStoreResult(t *testing.T) {
	searchables := newFakeSearchableStore()
	searchables.rows[search.ObjectRef(3)] = search.NewSearchable(
		search.ObjectRef(3), time.Now(), search.NewTextTiers("hit", "", ""))

	svc := NewSearch(searchables, DefaultPageSize, discardLogger())

	result, err := svc.Query(context.Background(), identity.Anonymous(), "hit", 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, result.TotalItems())
	require.Equal(t, "hit", result.Query().QueryText())
	require.Equal(t, int64(3), result.Items()[0].ItemID())
}

func TestSearchQueryDefaultsPageSize(t *testing.T) {
	svc := NewSearch(newFakeSearchableStore(), 25, discardLogger())

	result, err := svc.Query(context.Background(), identity.Anonymous(), "anything", 1, 0)
	require.NoError(t, err)
	require.Equal(t, 25, result.Query().ItemsPerPage())
}

func TestNewSearchRejectsBadDefaultPageSize(t *testing.T) {
	svc := NewSearch(newFakeSearchableStore(), 0, discardLogger())

	result, err := svc.Query(context.Background(), identity.Anonymous(), "anything", 1, 0)
	require.NoError(t, err)
	require.Equal(t, DefaultPageSize, result.Query().ItemsPerPage())
}
