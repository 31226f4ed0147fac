package transport

import (
	"errors"
	"net/http"

	"parakeet/internal/middleware"
	"parakeet/internal/repository"
	"parakeet/internal/service"

	"go.uber.org/zap"
)

// respondServiceError translates core errors into HTTP status codes:
// absence is 404, validation rejection 400, integrity violation 422,
// bad credentials 401, anything else a logged 500.
func respondServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrValidation):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrIntegrity):
		middleware.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		middleware.RespondWithError(w, http.StatusUnauthorized, "invalid credentials")
	default:
		logger.Error("Unhandled service error", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeBody decodes and validates a JSON request body, writing the error
// response itself. Returns false when the request was rejected.
func decodeBody(w http.ResponseWriter, r *http.Request, logger *zap.Logger, v any) bool {
	if err := middleware.DecodeAndValidate(r, v); err != nil {
		logger.Debug("Request validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return false
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
