// Package v1 implements the versioned HTTP API.
package v1

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/latticehq/lattice/application/service"
	"github.com/latticehq/lattice/domain/search"
	"github.com/latticehq/lattice/infrastructure/api/middleware"
	"github.com/latticehq/lattice/infrastructure/api/v1/dto"
	"github.com/latticehq/lattice/internal/domain"
)

// SearchRouter handles search API endpoints.
type SearchRouter struct {
	search *service.Search
	logger *slog.Logger
}

// NewSearchRouter creates a new SearchRouter.
func NewSearchRouter(search *service.Search, logger *slog.Logger) *SearchRouter {
	return &SearchRouter{search: search, logger: logger}
}

// Routes returns the chi router for search endpoints.
func (r *SearchRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", r.Search)

	return router
}

// Search handles POST /api/v1/search.
//
//	@Summary		Search objects and tags
//	@Description	Ranked full-text search over content visible to the caller
//	@Tags			search
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.SearchRequest	true	"Search request"
//	@Success		200		{object}	dto.SearchResponse
//	@Failure		400		{object}	middleware.JSONAPIErrorResponse
//	@Failure		401		{object}	middleware.JSONAPIErrorResponse
//	@Security		BearerAuth
//	@Router			/search [post]
func (r *SearchRouter) Search(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body dto.SearchRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: %s", domain.ErrValidation, err), r.logger)
		return
	}

	caller := middleware.IdentityFrom(ctx)
	result, err := r.search.Query(ctx, caller, body.Query.QueryText, body.Query.Page, body.Query.ItemsPerPage)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, buildSearchResponse(result))
}

func buildSearchResponse(result search.Result) dto.SearchResponse {
	items := result.Items()
	data := make([]dto.SearchItem, len(items))
	for i, item := range items {
		data[i] = dto.SearchItem{
			ItemID:   item.ItemID(),
			ItemType: string(item.ItemType()),
		}
	}
	return dto.SearchResponse{
		QueryText:    result.Query().QueryText(),
		Page:         result.Query().Page(),
		ItemsPerPage: result.Query().ItemsPerPage(),
		Items:        data,
		TotalItems:   result.TotalItems(),
	}
}
