package http

import (
	"errors"
	"log/slog"
	"net/http"

	mw "github.com/lorrc/user-management-api/internal/adapters/primary/http/middleware"
	apperrors "github.com/lorrc/user-management-api/internal/core/errors"
)

// ErrorResponse is the standard JSON error response format
type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

// ValidationErrorResponse includes field-level validation errors
type ValidationErrorResponse struct {
	Detail string              `json:"detail"`
	Code   string              `json:"code"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// ErrorHandler provides centralized error handling with logging
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler with the given logger
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle maps err onto exactly one response class: AppError, validation
// failure, not found, store failure, or an unexpected error.
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	var (
		appErr         *apperrors.AppError
		validationErrs *apperrors.ValidationErrors
		storeErr       *apperrors.StoreError
	)

	switch {
	case errors.As(err, &appErr):
		h.logError(r, appErr.StatusCode, err)
		WriteJSON(w, appErr.StatusCode, ErrorResponse{
			Detail: appErr.Message,
			Code:   appErr.Code,
		})

	case errors.As(err, &validationErrs):
		h.logError(r, http.StatusUnprocessableEntity, err)
		WriteJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
			Detail: "Validation failed",
			Code:   "VALIDATION_ERROR",
			Fields: validationErrs.Errors,
		})

	case errors.Is(err, apperrors.ErrUserNotFound):
		h.logError(r, http.StatusNotFound, err)
		WriteJSON(w, http.StatusNotFound, ErrorResponse{
			Detail: "User not found",
			Code:   "USER_NOT_FOUND",
		})

	case errors.As(err, &storeErr):
		h.logError(r, http.StatusInternalServerError, err)
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Detail: "The data store could not complete the request",
			Code:   "STORE_ERROR",
		})

	default:
		h.logError(r, http.StatusInternalServerError, err)
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Detail: "An unexpected error occurred",
			Code:   "INTERNAL_ERROR",
		})
	}
}

// logError logs the error with appropriate context
func (h *ErrorHandler) logError(r *http.Request, statusCode int, err error) {
	logAttrs := []any{
		"request_id", mw.GetRequestID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"status_code", statusCode,
		"error", err.Error(),
	}

	switch {
	case statusCode >= 500:
		h.logger.Error("server error", logAttrs...)
	case statusCode >= 400:
		h.logger.Warn("client error", logAttrs...)
	default:
		h.logger.Info("request error", logAttrs...)
	}
}

// HandleError Helper function to handle errors inline in handlers
// Usage: if HandleError(w, r, err, h.errorHandler) { return }
func HandleError(w http.ResponseWriter, r *http.Request, err error, handler *ErrorHandler) bool {
	if err != nil {
		handler.Handle(w, r, err)
		return true
	}
	return false
}
