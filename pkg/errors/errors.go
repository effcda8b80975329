package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Application error kinds. Callers wrap these with context and match with Is.

var (
	// ErrNotFound indicates a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a missing or malformed required field
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials is returned for both unknown emails and wrong passwords
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrMissingToken indicates the request carried no bearer token
	ErrMissingToken = errors.New("missing token")

	// ErrInvalidToken indicates a bearer token that failed verification or expired
	ErrInvalidToken = errors.New("invalid token")

	// ErrConflict indicates a uniqueness violation
	ErrConflict = errors.New("conflict")

	// ErrInvalidFileType indicates an upload that is not an accepted image
	ErrInvalidFileType = errors.New("invalid file type")

	// ErrPayloadTooLarge indicates an upload above the configured ceiling
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrUploadFailed indicates the asset host rejected or failed the upload
	ErrUploadFailed = errors.New("upload failed")

	// ErrUploadTimeout indicates the asset host did not answer in time
	ErrUploadTimeout = errors.New("upload timed out")

	// ErrDispatchFailed indicates the mail transport failed to send
	ErrDispatchFailed = errors.New("dispatch failed")

	// ErrDispatchTimeout indicates the mail transport did not answer in time
	ErrDispatchTimeout = errors.New("dispatch timed out")

	// ErrNotConfigured indicates an optional collaborator is not set up
	ErrNotConfigured = errors.New("not configured")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")
)

// FieldError describes a single invalid field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is an ErrInvalidInput carrying per-field details
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(parts, "; "))
}

// Unwrap lets errors.Is match ErrInvalidInput
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NotFoundError creates a not found error with context
func NotFoundError(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// InvalidInputError creates a validation error for a single field
func InvalidInputError(field, reason string) error {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: reason}}}
}

// ConflictError creates a conflict error with context
func ConflictError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrConflict)
}

// InternalError creates an internal error with context
func InternalError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInternal)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// FieldsOf returns the field details of a validation error, if any
func FieldsOf(err error) []FieldError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
