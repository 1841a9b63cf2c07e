package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application
var (
	ErrNotFound         = new(ErrCodeNotFound, "resource not found")
	ErrValidation       = new(ErrCodeValidation, "validation error")
	ErrInvalidOperation = new(ErrCodeInvalidOperation, "invalid operation")
	ErrHTTPClient       = new(ErrCodeHTTPClient, "http client error")
	ErrSystem           = new(ErrCodeSystemError, "system error")

	// Render pipeline errors. Each maps to one failure stage of the
	// document generation flow so callers can tell why a render degraded.
	ErrTemplateFetchFailed = new(ErrCodeTemplateFetchFailed, "template fetch failed")
	ErrTemplateNotFound    = new(ErrCodeTemplateNotFound, "template not found")
	ErrImageLoadFailed     = new(ErrCodeImageLoadFailed, "image load failed")
	ErrRasterizationFailed = new(ErrCodeRasterizationFailed, "rasterization failed")
	ErrEncodingFailed      = new(ErrCodeEncodingFailed, "document encoding failed")
	ErrFallbackFailed      = new(ErrCodeFallbackFailed, "fallback document generation failed")

	// maps errors to http status codes
	statusCodeMap = map[error]int{
		ErrHTTPClient:          http.StatusInternalServerError,
		ErrNotFound:            http.StatusNotFound,
		ErrValidation:          http.StatusBadRequest,
		ErrInvalidOperation:    http.StatusBadRequest,
		ErrSystem:              http.StatusInternalServerError,
		ErrTemplateNotFound:    http.StatusNotFound,
		ErrTemplateFetchFailed: http.StatusBadGateway,
		ErrImageLoadFailed:     http.StatusBadGateway,
		ErrRasterizationFailed: http.StatusInternalServerError,
		ErrEncodingFailed:      http.StatusInternalServerError,
		ErrFallbackFailed:      http.StatusInternalServerError,
	}
)

const (
	ErrCodeHTTPClient       = "http_client_error"
	ErrCodeSystemError      = "system_error"
	ErrCodeNotFound         = "not_found"
	ErrCodeValidation       = "validation_error"
	ErrCodeInvalidOperation = "invalid_operation"

	ErrCodeTemplateFetchFailed = "template_fetch_failed"
	ErrCodeTemplateNotFound    = "template_not_found"
	ErrCodeImageLoadFailed     = "image_load_failed"
	ErrCodeRasterizationFailed = "rasterization_failed"
	ErrCodeEncodingFailed      = "encoding_failed"
	ErrCodeFallbackFailed      = "fallback_failed"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

// new creates a new InternalError
func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, reference error) bool {
	return errors.Is(err, reference)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsTemplateNotFound checks if an error is a template not found error
func IsTemplateNotFound(err error) bool {
	return errors.Is(err, ErrTemplateNotFound)
}

// IsHTTPClient checks if an error is an http client error
func IsHTTPClient(err error) bool {
	return errors.Is(err, ErrHTTPClient)
}

// Code returns the machine-readable code of the sentinel the error is
// marked with, or the generic system error code when unmarked.
func Code(err error) string {
	for _, sentinel := range []*InternalError{
		ErrTemplateFetchFailed,
		ErrTemplateNotFound,
		ErrImageLoadFailed,
		ErrRasterizationFailed,
		ErrEncodingFailed,
		ErrFallbackFailed,
		ErrNotFound,
		ErrValidation,
		ErrInvalidOperation,
		ErrHTTPClient,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Code
		}
	}
	return ErrCodeSystemError
}

func HTTPStatusFromErr(err error) int {
	for e, status := range statusCodeMap {
		if errors.Is(err, e) {
			return status
		}
	}
	return http.StatusInternalServerError
}
