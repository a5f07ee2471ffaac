package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fabiofilipe/pizzaria-api/models"
	"github.com/fabiofilipe/pizzaria-api/pkg/logger"
)

// writeJSONResponse writes a JSON response with the given status code
func writeJSONResponse(log *logger.Logger, w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Error("Failed to encode JSON response", "error", err)
		}
	}
}

// writeErrorResponse writes an error payload with the given status code
func writeErrorResponse(log *logger.Logger, w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	resp := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error("Failed to encode error response", "error", err)
	}
}

// parseRequestBody parses a JSON request body into the target struct
func parseRequestBody(r *http.Request, target interface{}) error {
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

// errorStatus maps a service error to its HTTP status code via the error
// kind it wraps. Unknown errors are treated as internal.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrVariationNotFound),
		errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrIngredientNotFound),
		errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrCategoryNotFound),
		errors.Is(err, models.ErrAddressNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrUnavailable),
		errors.Is(err, models.ErrIngredientUnavailable),
		errors.Is(err, models.ErrObligatoryIngredient),
		errors.Is(err, models.ErrInvalidStatus),
		errors.Is(err, models.ErrAlreadyExists),
		errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrPermissionDenied),
		errors.Is(err, models.ErrUserInactive):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError maps a service error to HTTP and writes it. Internal
// errors are masked with a generic message so database details never leak.
func writeServiceError(log *logger.Logger, w http.ResponseWriter, reqCtx *logger.RequestContext, err error) {
	statusCode := errorStatus(err)

	message := err.Error()
	if statusCode == http.StatusInternalServerError {
		log.Error("Internal error handling request", "error", err, "path", reqCtx.Path)
		message = "erro interno do servidor"
	}

	writeErrorResponse(log, w, statusCode, message)
	reqCtx.StatusCode = statusCode
	log.LogResponse(reqCtx)
}
