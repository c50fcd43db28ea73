package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/touristtalks/backend/internal/infrastructure/observability"
	apperrors "github.com/touristtalks/backend/pkg/errors"
	"github.com/touristtalks/backend/pkg/validation"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithMessage(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"message": message,
	})
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError writes client errors as {"message"} and anything
// else as a logged 500 {"error"}
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		observability.LoggerFromContext(r.Context()).Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	appErr, _ := apperrors.As(err)
	respondWithMessage(w, status, appErr.Message)
}

// decodeJSON reads the request body into dst and validates it
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}
	if err := validation.ValidateStruct(dst); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

// pathInt64 parses a numeric path parameter
func pathInt64(r *http.Request, name string) (int64, error) {
	value, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError(name + " must be an integer")
	}
	return value, nil
}
