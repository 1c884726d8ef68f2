// Package errors provides structured error handling for the application
// Following enterprise patterns for error management and observability
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents an error code
type ErrorCode string

// Common error codes following RESTful API conventions
const (
	// Client errors (4xx)
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Server errors (5xx)
	CodeInternal             ErrorCode = "INTERNAL_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Business logic errors
	CodeEmptyInput          ErrorCode = "EMPTY_INPUT"
	CodeMalformedResponse   ErrorCode = "MALFORMED_RESPONSE"
	CodeInvalidCartIndex    ErrorCode = "INVALID_CART_INDEX"
	CodeNoIngredientSelected ErrorCode = "NO_INGREDIENT_SELECTED"
	CodeNoOrder             ErrorCode = "NO_ORDER"
	CodeSessionNotFound     ErrorCode = "SESSION_NOT_FOUND"
	CodeQueryInFlight       ErrorCode = "QUERY_IN_FLIGHT"
)

// AppError represents an application error with structured information
type AppError struct {
	Code     ErrorCode              `json:"code"`
	Message  string                 `json:"message"`
	Details  string                 `json:"details,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Cause    error                  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the appropriate HTTP status code
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidationFailed, CodeEmptyInput, CodeInvalidCartIndex, CodeNoIngredientSelected:
		return http.StatusBadRequest
	case CodeNotFound, CodeNoOrder, CodeSessionNotFound:
		return http.StatusNotFound
	case CodeQueryInFlight:
		return http.StatusConflict
	case CodeExternalServiceError, CodeMalformedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause adds a cause error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message, details string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Predefined error constructors for common scenarios

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *AppError {
	return NewAppError(CodeBadRequest, message, "")
}

// NewValidationError creates a validation error
func NewValidationError(details string) *AppError {
	return NewAppError(CodeValidationFailed, "Validation failed", details)
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return NewAppError(CodeInternal, message, "")
}

// NewExternalServiceError creates an external service error
func NewExternalServiceError(service string, cause error) *AppError {
	return NewAppError(
		CodeExternalServiceError,
		"External service error",
		fmt.Sprintf("Failed to communicate with %s", service),
	).WithCause(cause)
}

// Business domain specific errors

// NewEmptyInputError creates an empty input error
func NewEmptyInputError() *AppError {
	return NewAppError(
		CodeEmptyInput,
		"Empty input",
		"Query text must not be empty or whitespace only",
	)
}

// NewMalformedResponseError creates a malformed response error
func NewMalformedResponseError(cause error) *AppError {
	return NewAppError(
		CodeMalformedResponse,
		"Malformed response",
		"The recipe service returned a payload that could not be decoded",
	).WithCause(cause)
}

// NewInvalidCartIndexError creates an invalid cart index error
func NewInvalidCartIndexError(index int) *AppError {
	return NewAppError(
		CodeInvalidCartIndex,
		"Invalid cart index",
		fmt.Sprintf("No cart line exists at position %d", index),
	).WithMetadata("index", index)
}

// NewNoIngredientSelectedError creates a no ingredient selected error
func NewNoIngredientSelectedError() *AppError {
	return NewAppError(
		CodeNoIngredientSelected,
		"No ingredient selected",
		"A brand can only be added after selecting an ingredient",
	)
}

// NewNoOrderError creates a no order error
func NewNoOrderError() *AppError {
	return NewAppError(
		CodeNoOrder,
		"No order recorded",
		"No checkout has been completed in this session",
	)
}

// NewSessionNotFoundError creates a session not found error
func NewSessionNotFoundError(sessionID string) *AppError {
	return NewAppError(
		CodeSessionNotFound,
		"Session not found",
		fmt.Sprintf("Session %s does not exist or has expired", sessionID),
	).WithMetadata("session_id", sessionID)
}

// Utility functions

// Wrap wraps an error as an internal error if it's not already an AppError
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := err.(*AppError); ok {
		return appErr
	}

	return NewInternalError(message).WithCause(err)
}

// Is checks if an error is of a specific error code
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternal
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails represents the error details in API responses
type ErrorDetails struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// ToErrorResponse converts an AppError to an API error response
func ToErrorResponse(err *AppError, requestID string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetails{
			Code:      err.Code,
			Message:   err.Message,
			Details:   err.Details,
			Metadata:  err.Metadata,
			RequestID: requestID,
		},
	}
}
