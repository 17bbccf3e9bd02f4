package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeReference    ErrorType = "reference"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeInternal     ErrorType = "internal"
	ErrorTypeDatabase     ErrorType = "database"
)

// APIError represents a structured API error
type APIError struct {
	Type        ErrorType `json:"type"`
	Code        string    `json:"code"`
	Message     string    `json:"message"`
	HTTPStatus  int       `json:"-"`
	InternalErr error     `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Unwrap returns the underlying error
func (e *APIError) Unwrap() error {
	return e.InternalErr
}

// NewAPIError creates a new API error
func NewAPIError(errorType ErrorType, code, message string, httpStatus int) *APIError {
	return &APIError{
		Type:       errorType,
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// ValidationError creates a validation error
func ValidationError(code, message string) *APIError {
	return NewAPIError(ErrorTypeValidation, code, message, http.StatusBadRequest)
}

// ReferenceError creates an error for an unresolvable entity reference
func ReferenceError(message string) *APIError {
	return NewAPIError(ErrorTypeReference, "UNRESOLVED_REFERENCE", message, http.StatusUnprocessableEntity)
}

// NotFoundError creates a not found error
func NotFoundError(resource string) *APIError {
	return NewAPIError(ErrorTypeNotFound, "RESOURCE_NOT_FOUND", fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// ConflictError creates a conflict error
func ConflictError(message string) *APIError {
	return NewAPIError(ErrorTypeConflict, "RESOURCE_CONFLICT", message, http.StatusConflict)
}

// UnauthorizedError creates an unauthorized error
func UnauthorizedError(message string) *APIError {
	return NewAPIError(ErrorTypeUnauthorized, "UNAUTHORIZED", message, http.StatusUnauthorized)
}

// ForbiddenError creates a forbidden error
func ForbiddenError(message string) *APIError {
	return NewAPIError(ErrorTypeForbidden, "FORBIDDEN", message, http.StatusForbidden)
}

// InternalError creates an internal server error
func InternalError(message string) *APIError {
	return NewAPIError(ErrorTypeInternal, "INTERNAL_ERROR", message, http.StatusInternalServerError)
}

// DatabaseError creates a database error wrapping the storage-layer cause.
// The cause is kept for logging and never serialized to clients.
func DatabaseError(operation string, cause error) *APIError {
	e := NewAPIError(ErrorTypeDatabase, "DATABASE_ERROR",
		fmt.Sprintf("Database operation failed: %s", operation),
		http.StatusInternalServerError)
	e.InternalErr = cause
	return e
}

// AsAPIError extracts an APIError from an error chain
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
