package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing useful can reach the client.
		return
	}
}

// writeError writes a model.ErrorResponse carrying the request's correlation id.
func writeError(w http.ResponseWriter, r *http.Request, status int, resp model.ErrorResponse, logger zerolog.Logger) {
	resp.CorrelationID = middleware.RequestIDFromContext(r.Context())

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.
		Str("code", resp.Error).
		Str("message", resp.Message).
		Int("status", status).
		Str("request_id", resp.CorrelationID).
		Msg("handler error")

	writeJSON(w, status, resp)
}

// writeServiceError maps a service error onto an HTTP status. Anything that is
// not a domain error is reported as a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var stockErr *model.InsufficientStockError
	if errors.As(err, &stockErr) {
		writeError(w, r, http.StatusConflict, model.ErrorResponse{
			Error:     model.ErrCodeInsufficientStock,
			Message:   stockErr.Error(),
			ProductID: stockErr.ProductID,
		}, logger)
		return
	}

	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		switch domainErr.Kind {
		case model.KindNotFound:
			status = http.StatusNotFound
		case model.KindConflict:
			status = http.StatusConflict
		}
		writeError(w, r, status, model.ErrorResponse{
			Error:   domainErr.Code,
			Message: domainErr.Message,
		}, logger)
		return
	}

	logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	writeError(w, r, http.StatusInternalServerError, model.ErrorResponse{
		Error:   model.ErrCodeInternalError,
		Message: "internal server error",
	}, logger)
}

// decodeJSON decodes a bounded request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

func writeInvalidJSON(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) {
	writeError(w, r, http.StatusBadRequest, model.ErrorResponse{
		Error:   model.ErrCodeInvalidJSON,
		Message: "invalid request body",
	}, logger)
}

// pathID parses the {id} URL parameter as a positive integer.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeInvalidID(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) {
	writeError(w, r, http.StatusBadRequest, model.ErrorResponse{
		Error:   model.ErrCodeInvalidID,
		Message: "id must be a positive integer",
	}, logger)
}

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health reports liveness and whether the store is reachable.
func Health(db Pinger, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			logger.Error().Err(err).Msg("health check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}
