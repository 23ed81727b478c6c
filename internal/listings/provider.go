// Package listings queries external job-listings providers and normalizes
// their results into JobListings.
package listings

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/jobhunt/internal/fetch"
	"github.com/jonathan/jobhunt/internal/types"
)

// Provider names, also used as JobListing.Source.
const (
	SourceJSearch = "jsearch"
	SourceAdzuna  = "adzuna"
)

// Query is one provider request. Text is the full search string; Location
// repeats the location already appended to Text so providers with a
// separate location parameter can use it.
type Query struct {
	Text           string
	Location       string
	Page           int
	RemoteOnly     bool
	EmploymentType string
	Experience     string
	DatePosted     string
}

// Result is one provider page. Raw counts the records the provider returned
// before any mapping or filtering.
type Result struct {
	Listings []types.JobListing
	Raw      int
}

// Provider is a job-listings search backend.
type Provider interface {
	Name() string
	Search(ctx context.Context, q Query) (*Result, error)
}

// ConfigurationMissingError reports absent provider credentials.
type ConfigurationMissingError struct {
	Provider string
	Missing  []string
}

func (e *ConfigurationMissingError) Error() string {
	return fmt.Sprintf("%s is not configured: set %s", e.Provider, strings.Join(e.Missing, ", "))
}

// ProviderError reports a failed provider call: an error status, a transport
// failure, a timeout or an undecodable body.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	RetryAfter time.Duration
	Timeout    bool
	Cause      error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("%s search failed", e.Provider)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// RateLimited reports whether the provider asked the caller to slow down.
func (e *ProviderError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// providerError converts a fetch failure into a ProviderError, preferring
// the provider's own message from an error body.
func providerError(provider string, err error) error {
	var fetchErr *fetch.Error
	if !errors.As(err, &fetchErr) {
		return &ProviderError{Provider: provider, Message: "request failed", Cause: err}
	}

	pe := &ProviderError{
		Provider:   provider,
		StatusCode: fetchErr.StatusCode,
		RetryAfter: fetchErr.RetryAfter,
		Timeout:    fetchErr.Timeout,
	}
	switch {
	case fetchErr.StatusCode != 0 && fetchErr.Cause == nil:
		pe.Message = upstreamMessage(fetchErr.Body)
		if pe.Message == "" {
			pe.Message = http.StatusText(fetchErr.StatusCode)
		}
	case fetchErr.Timeout:
		pe.Message = "request timed out"
		pe.Cause = fetchErr.Cause
	default:
		pe.Message = fetchErr.Message
		pe.Cause = fetchErr.Cause
	}
	return pe
}
