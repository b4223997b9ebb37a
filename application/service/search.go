package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/latticehq/lattice/domain/identity"
	"github.com/latticehq/lattice/domain/search"
)

// DefaultPageSize is used when the caller does not set a page size.
const DefaultPageSize = 10

// Search answers ranked full-text queries over the searchable index.
type Search struct {
	searchables search.SearchableStore
	pageSize    int
	logger      *slog.Logger
}

// NewSearch creates a Search service. pageSize is the page size applied
// when a query leaves it unset; non-positive values fall back to
// DefaultPageSize.
func NewSearch(searchables search.SearchableStore, pageSize int, logger *slog.Logger) *Search {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Search{searchables: searchables, pageSize: pageSize, logger: logger}
}

// Query validates the request and returns the caller's visible page of
// ranked matches plus the unpaged total. An itemsPerPage of zero means
// "unset" and takes the configured page size; negative values are rejected
// as validation errors.
func (s *Search) Query(ctx context.Context, caller identity.Identity, queryText string, page, itemsPerPage int) (search.Result, error) {
	if itemsPerPage == 0 {
		itemsPerPage = s.pageSize
	}
	q, err := search.NewQuery(queryText, page, itemsPerPage)
	if err != nil {
		return search.Result{}, err
	}

	result, err := s.searchables.Search(ctx, q, caller)
	if err != nil {
		return search.Result{}, fmt.Errorf("search: %w", err)
	}

	s.logger.Debug("search completed",
		"page", q.Page(),
		"items_per_page", q.ItemsPerPage(),
		"returned", len(result.Items()),
		"total", result.TotalItems(),
		"level", string(caller.Level()),
	)
	return result, nil
}
