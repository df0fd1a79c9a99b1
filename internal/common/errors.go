package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Extraction error taxonomy. UnsupportedFormat and ExtractionTimeout abort a
// single document; a per-page OCR failure is recovered locally with a
// placeholder string and never surfaces here. A missing target section or an
// empty question list is not an error at all.
var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrExtractionTimeout = errors.New("extraction timed out")
	ErrExtractionFailed  = errors.New("extraction failed")
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInternal          = errors.New("internal error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
