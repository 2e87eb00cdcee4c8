package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/skypiea-tech/heronfit-recommendation-service/internal/errors"
)

// writeJSON serializes v to the response with the given status code.
func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out; the most we can do is log.
		app.logger.LogAttrs(r.Context(), slog.LevelError, "encode response", errors.SlogError(err))
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// serverError logs an unexpected failure and responds with 500.
func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", errors.SlogError(err))
	app.writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

// serviceUnavailable responds with 503 for retryable infrastructure
// failures such as an unreachable data store.
func (app *application) serviceUnavailable(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "service unavailable", errors.SlogError(err))
	w.Header().Set("Retry-After", "5")
	app.writeJSON(w, r, http.StatusServiceUnavailable, errorResponse{Error: "service unavailable, retry later"})
}
