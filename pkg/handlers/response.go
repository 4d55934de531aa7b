// Package handlers implements the HTTP/JSON surface of the portfolio
// engine.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/apperrors"
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/services"
)

// ApiResponse is the standard success envelope.
type ApiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse writes a JSON error response and returns any encoding
// error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// ErrorResponseWithIssues writes an error response carrying per-field
// issue messages.
func ErrorResponseWithIssues(w http.ResponseWriter, statusCode int, errorCode, message string, issues []string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorCode,
		"message": message,
		"issues":  issues,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// WriteServiceError maps service errors onto the HTTP error envelope:
// validation 400, activation blocks 403, missing entities 404, gate
// sequencing and lock conflicts 409, everything else 500.
func WriteServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var validation *services.ValidationError
	var blocked *services.ActivationBlockedError

	var writeErr error
	switch {
	case errors.As(err, &validation):
		writeErr = ErrorResponseWithIssues(w, http.StatusBadRequest, "validation_failed", "Request validation failed", validation.Issues)
	case errors.As(err, &blocked):
		writeErr = writeBlocked(w, blocked)
	case errors.Is(err, apperrors.ErrGateSequence):
		writeErr = ErrorResponse(w, http.StatusConflict, "gate_sequence_error", err.Error())
	case errors.Is(err, apperrors.ErrEngagementLocked):
		writeErr = ErrorResponse(w, http.StatusConflict, "engagement_locked", err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		writeErr = ErrorResponse(w, http.StatusNotFound, "not_found", "Entity not found")
	case errors.Is(err, apperrors.ErrValidation):
		writeErr = ErrorResponse(w, http.StatusBadRequest, "validation_failed", err.Error())
	default:
		logger.Error("Unexpected service error", zap.Error(err))
		writeErr = ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Internal server error")
	}
	if writeErr != nil {
		logger.Error("Failed to write error response", zap.Error(writeErr))
	}
}

func writeBlocked(w http.ResponseWriter, blocked *services.ActivationBlockedError) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	return json.NewEncoder(w).Encode(map[string]interface{}{
		"error":         "activation_blocked",
		"message":       blocked.Error(),
		"target_status": blocked.Check.TargetStatus,
		"missing_gates": blocked.Check.MissingGates,
	})
}
