package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/latticehq/lattice/application/service"
	"github.com/latticehq/lattice/domain/identity"
	"github.com/latticehq/lattice/domain/search"
	"github.com/latticehq/lattice/infrastructure/api/middleware"
	"github.com/latticehq/lattice/infrastructure/api/v1/dto"
)

// recordingStore returns canned items and records the caller identity.
type recordingStore struct {
	items      []search.Item
	lastCaller identity.Identity
}

func (s *recordingStore) Upsert(context.Context, search.Searchable) error { return nil }
func (s *recordingStore) Delete(context.Context, search.Ref) error        { return nil }

func (s *recordingStore) Search(_ context.Context, query search.Query, caller identity.Identity) (search.Result, error) {
	s.lastCaller = caller
	return search.NewResult(query, s.items, int64(len(s.items))), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(store search.SearchableStore, resolver middleware.TokenResolver) chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Authenticate(resolver, discardLogger()))
	searchRouter := NewSearchRouter(service.NewSearch(store, service.DefaultPageSize, discardLogger()), discardLogger())
	router.Mount("/api/v1/search", searchRouter.Routes())
	return router
}

func emptyResolver() middleware.StaticTokenResolver {
	return middleware.NewStaticTokenResolver(nil)
}

func postSearch(t *testing.T, router chi.Router, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSearchEndpointReturnsItems(t *testing.T) {
	store := &recordingStore{items: []search.Item{
		search.NewItem(4, search.ItemTypeObject),
		search.NewItem(9, search.ItemTypeTag),
	}}
	router := newTestRouter(store, emptyResolver())

	rec := postSearch(t, router, dto.SearchRequest{
		Query: dto.SearchQueryAttributes{QueryText: "otters", Page: 1, ItemsPerPage: 10},
	}, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "otters", resp.QueryText)
	require.EqualValues(t, 2, resp.TotalItems)
	require.Equal(t, []dto.SearchItem{
		{ItemID: 4, ItemType: "object"},
		{ItemID: 9, ItemType: "tag"},
	}, resp.Items)
}

func TestSearchEndpointValidation(t *testing.T) {
	store := &recordingStore{}
	router := newTestRouter(store, emptyResolver())

	tests := []struct {
		name  string
		query dto.SearchQueryAttributes
	}{
		{"empty query text", dto.SearchQueryAttributes{QueryText: "", Page: 1, ItemsPerPage: 10}},
		{"zero page", dto.SearchQueryAttributes{QueryText: "x", Page: 0, ItemsPerPage: 10}},
		{"negative page size", dto.SearchQueryAttributes{QueryText: "x", Page: 1, ItemsPerPage: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postSearch(t, router, dto.SearchRequest{Query: tt.query}, nil)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp middleware.JSONAPIErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.Len(t, resp.Errors, 1)
			require.Equal(t, "Validation Error", resp.Errors[0].Title)
		})
	}
}

func TestSearchEndpointDefaultsPageSize(t *testing.T) {
	store := &recordingStore{}
	router := newTestRouter(store, emptyResolver())

	rec := postSearch(t, router, dto.SearchRequest{
		Query: dto.SearchQueryAttributes{QueryText: "otters", Page: 1},
	}, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, service.DefaultPageSize, resp.ItemsPerPage)
}

func TestSearchEndpointMalformedJSON(t *testing.T) {
	router := newTestRouter(&recordingStore{}, emptyResolver())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchEndpointAuth(t *testing.T) {
	store := &recordingStore{}
	resolver := middleware.NewStaticTokenResolver(map[string]identity.Identity{
		"secret": identity.New(0, identity.LevelAdmin),
	})
	router := newTestRouter(store, resolver)

	body := dto.SearchRequest{
		Query: dto.SearchQueryAttributes{QueryText: "x", Page: 1, ItemsPerPage: 10},
	}

	t.Run("no token runs as anonymous", func(t *testing.T) {
		rec := postSearch(t, router, body, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, store.lastCaller.IsAnonymous())
	})

	t.Run("valid token resolves identity", func(t *testing.T) {
		rec := postSearch(t, router, body, map[string]string{"Authorization": "Bearer secret"})
		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, store.lastCaller.IsAdmin())
	})

	t.Run("unknown token is rejected", func(t *testing.T) {
		rec := postSearch(t, router, body, map[string]string{"Authorization": "Bearer wrong"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non bearer scheme is rejected", func(t *testing.T) {
		rec := postSearch(t, router, body, map[string]string{"Authorization": "Basic abc"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
