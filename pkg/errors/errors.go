// Package errors defines the application error model.
//
// Every engine and service failure is returned as an *AppError value that
// carries a machine-readable code and the HTTP status the transport layer
// should attach. None of these errors are transient: given the same input
// the same error is returned, so callers must never retry without changing
// the input.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies an error for logging and status mapping.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "VALIDATION"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeConflict   ErrorType = "CONFLICT"
	ErrorTypeInternal   ErrorType = "INTERNAL"
)

// Error codes for the vault domain.
const (
	CodeEmptyName       = "EMPTY_NAME"
	CodeDuplicateName   = "DUPLICATE_NAME"
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidCategory = "INVALID_CATEGORY"
	CodeLastCategory    = "LAST_CATEGORY"
	CodeMissingInput    = "MISSING_INPUT"
	CodeNoEffect        = "NO_EFFECT"
)

// AppError is the structured error returned across layer boundaries.
type AppError struct {
	Type       ErrorType              `json:"type"`
	Code       string                 `json:"code,omitempty"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	HTTPStatus int                    `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails attaches structured details to the error.
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithCause wraps an underlying error.
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// NewValidationError creates a generic validation error.
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewEmptyNameError reports a blank item name.
func NewEmptyNameError() *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       CodeEmptyName,
		Message:    "name must not be empty",
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewDuplicateNameError reports a name collision with an existing item.
func NewDuplicateNameError(name string) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       CodeDuplicateName,
		Message:    fmt.Sprintf("an item named %q already exists, choose a different name", name),
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewDuplicateFileError reports a file name collision with an existing file item.
func NewDuplicateFileError(fileName string) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       CodeDuplicateName,
		Message:    fmt.Sprintf("a file named %q already exists, rename it or choose another file", fileName),
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFoundError creates a not found error for a resource.
func NewNotFoundError(resource, id string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found: %s", resource, id),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewInvalidCategoryError reports a category that is not associated with the item.
func NewInvalidCategoryError(categoryID string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       CodeInvalidCategory,
		Message:    fmt.Sprintf("item is not associated with category %s", categoryID),
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewLastCategoryError reports a removal that would leave an item without categories.
func NewLastCategoryError() *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       CodeLastCategory,
		Message:    "an item needs at least one category, the last one cannot be removed",
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewMissingInputError reports a required id list that was absent or empty.
func NewMissingInputError(field string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       CodeMissingInput,
		Message:    fmt.Sprintf("missing %s", field),
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNoEffectError reports a batch operation that modified nothing.
func NewNoEffectError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       CodeNoEffect,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// IsAppError checks whether an error carries an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts an AppError from an error chain, or nil.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsCode checks whether an error carries the given domain code.
func IsCode(err error, code string) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

// HTTPStatusOf returns the HTTP status for an error, defaulting to 500.
func HTTPStatusOf(err error) int {
	if appErr := GetAppError(err); appErr != nil && appErr.HTTPStatus != 0 {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}
