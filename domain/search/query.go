// Package search provides the search domain types: queries, results, and
// the searchable index row together with its store contract.
package search

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/latticehq/lattice/internal/domain"
)

// MaxQueryLength is the upper bound on query text length, in characters.
const MaxQueryLength = 255

// Query is a validated search request.
type Query struct {
	queryText    string
	page         int
	itemsPerPage int
}

// NewQuery validates and creates a Query. Validation happens here, before
// any store work: empty or overlong text and non-positive paging are
// rejected with domain.ErrValidation.
func NewQuery(queryText string, page, itemsPerPage int) (Query, error) {
	if strings.TrimSpace(queryText) == "" {
		return Query{}, fmt.Errorf("%w: query text must not be empty", domain.ErrValidation)
	}
	// Characters, not bytes: most indexed content is non-ASCII.
	if utf8.RuneCountInString(queryText) > MaxQueryLength {
		return Query{}, fmt.Errorf("%w: query text must be at most %d characters", domain.ErrValidation, MaxQueryLength)
	}
	if page < 1 {
		return Query{}, fmt.Errorf("%w: page must be at least 1", domain.ErrValidation)
	}
	if itemsPerPage < 1 {
		return Query{}, fmt.Errorf("%w: items per page must be at least 1", domain.ErrValidation)
	}
	return Query{queryText: queryText, page: page, itemsPerPage: itemsPerPage}, nil
}

// QueryText returns the raw query text.
func (q Query) QueryText() string { return q.queryText }

// Page returns the requested page, starting at 1.
func (q Query) Page() int { return q.page }

// ItemsPerPage returns the page size.
func (q Query) ItemsPerPage() int { return q.itemsPerPage }

// Offset returns the row offset for the requested page.
func (q Query) Offset() int { return (q.page - 1) * q.itemsPerPage }
