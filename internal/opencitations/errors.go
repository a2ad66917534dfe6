package opencitations

import (
	"errors"
	"fmt"
)

// Common errors returned by the COCI client.
var (
	// ErrNotFound indicates the index has no metadata for the DOI.
	ErrNotFound = errors.New("no metadata in COCI")

	// ErrAuthError indicates a missing or rejected access token.
	ErrAuthError = errors.New("COCI authentication error")

	// ErrRateLimited indicates the service throttled the request.
	ErrRateLimited = errors.New("COCI rate limit exceeded")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with COCI")

	// ErrInvalidResponse indicates an unexpected response body.
	ErrInvalidResponse = errors.New("invalid response from COCI")
)

// APIError represents a non-success HTTP status from the COCI API.
type APIError struct {
	StatusCode int
	DOI        string
}

func (e *APIError) Error() string {
	if e.DOI != "" {
		return fmt.Sprintf("COCI API error (status %d) for %s", e.StatusCode, e.DOI)
	}
	return fmt.Sprintf("COCI API error (status %d)", e.StatusCode)
}

// IsNotFound returns true if the error indicates missing metadata.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsAuthError returns true if the error indicates an authentication problem.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrAuthError) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}
