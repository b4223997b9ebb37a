// Package dto defines the request and response bodies of the v1 API.
package dto

// SearchQueryAttributes is the client-supplied query. An omitted
// items_per_page takes the server's configured page size.
type SearchQueryAttributes struct {
	QueryText    string `json:"query_text"`
	Page         int    `json:"page"`
	ItemsPerPage int    `json:"items_per_page"`
}

// SearchRequest is the body of POST /api/v1/search.
type SearchRequest struct {
	Query SearchQueryAttributes `json:"query"`
}

// SearchItem is one ranked hit.
type SearchItem struct {
	ItemID   int64  `json:"item_id"`
	ItemType string `json:"item_type"`
}

// SearchResponse is the body returned by POST /api/v1/search. Items holds
// the requested page; TotalItems is the unpaged match count.
type SearchResponse struct {
	QueryText    string       `json:"query_text"`
	Page         int          `json:"page"`
	ItemsPerPage int          `json:"items_per_page"`
	Items        []SearchItem `json:"items"`
	TotalItems   int64        `json:"total_items"`
}
