// Package server provides the HTTP REST API for the job-search assistant.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/jobhunt/internal/extraction"
	"github.com/jonathan/jobhunt/internal/listings"
	"github.com/jonathan/jobhunt/internal/llm"
	"github.com/jonathan/jobhunt/internal/pipeline"
	"github.com/jonathan/jobhunt/internal/store"
	"github.com/jonathan/jobhunt/internal/tracker"
	"github.com/jonathan/jobhunt/internal/types"
)

// ErrInvalidUpload indicates a missing, oversized or non-PDF upload.
type ErrInvalidUpload struct {
	Message string
}

func (e *ErrInvalidUpload) Error() string {
	return "invalid upload: " + e.Message
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Message
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// validationError converts a Validate() failure into an ErrValidation,
// naming the first offending field when the validator reports one.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ErrValidation{Field: fe.Field(), Message: fmt.Sprintf("failed %q rule", fe.Tag())}
	}
	return &ErrValidation{Message: err.Error()}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	status, _ := classify(err)
	return status
}

// classify resolves the status code and machine-readable error code of err.
func classify(err error) (int, string) {
	var (
		invalidUpload *ErrInvalidUpload
		validation    *ErrValidation
		unreadable    *extraction.UnreadablePDFError
		noConverter   *extraction.ConverterUnavailableError
		invalidStatus *tracker.InvalidStatusError
		missingConfig *listings.ConfigurationMissingError
		providerErr   *listings.ProviderError
		callErr       *llm.CallError
		outputErr     *llm.OutputError
		maxBytesErr   *http.MaxBytesError
	)

	switch {
	case errors.As(err, &invalidUpload), errors.As(err, &maxBytesErr):
		return http.StatusBadRequest, "invalid_upload"
	case errors.As(err, &validation), errors.As(err, &invalidStatus),
		errors.Is(err, pipeline.ErrNoSkills), errors.Is(err, types.ErrNoSearchInput):
		return http.StatusBadRequest, "validation_failed"
	case errors.As(err, &noConverter):
		return http.StatusServiceUnavailable, "pdf_converter_unavailable"
	case errors.As(err, &unreadable):
		return http.StatusUnprocessableEntity, "unreadable_pdf"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, tracker.ErrAlreadySaved):
		return http.StatusConflict, "already_saved"
	case errors.As(err, &missingConfig):
		return http.StatusServiceUnavailable, "configuration_missing"
	case errors.Is(err, llm.ErrNotConfigured):
		return http.StatusServiceUnavailable, "llm_not_configured"
	case errors.Is(err, pipeline.ErrSessionsDisabled):
		return http.StatusServiceUnavailable, "sessions_disabled"
	case errors.As(err, &providerErr):
		if providerErr.RateLimited() {
			return http.StatusTooManyRequests, "provider_rate_limited"
		}
		return http.StatusBadGateway, "provider_error"
	case errors.As(err, &outputErr):
		return http.StatusBadGateway, "model_output_invalid"
	case errors.As(err, &callErr):
		return http.StatusBadGateway, "llm_call_failed"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
