package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/latticehq/lattice/internal/database"
	"github.com/latticehq/lattice/internal/domain"
)

// JSONAPIError represents a JSON:API error response.
type JSONAPIError struct {
	Status string `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
	ID     string `json:"id,omitempty"`
}

// JSONAPIErrorResponse represents a JSON:API error response wrapper.
type JSONAPIErrorResponse struct {
	Errors []JSONAPIError `json:"errors"`
}

// WriteError writes a JSON:API formatted error response, mapping domain
// sentinel errors to status codes.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status := http.StatusInternalServerError
	title := "Internal Server Error"
	detail := err.Error()

	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
		title = "Validation Error"
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
		title = "Unauthorized"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, database.ErrNotFound):
		status = http.StatusNotFound
		title = "Not Found"
	}

	// Internal details stay in the log, not the response body.
	if status == http.StatusInternalServerError {
		detail = ""
	}

	requestID := chimiddleware.GetReqID(r.Context())

	if logger != nil {
		logger.Error("request error",
			"request_id", requestID,
			"status", status,
			"error", err.Error(),
			"path", r.URL.Path,
		)
	}

	resp := JSONAPIErrorResponse{
		Errors: []JSONAPIError{
			{
				Status: http.StatusText(status),
				Title:  title,
				Detail: detail,
				ID:     requestID,
			},
		},
	}

	w.Header().Set("Content-Type", "application/vnd.api+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
