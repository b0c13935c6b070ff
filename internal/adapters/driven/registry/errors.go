package registry

import (
	"errors"
	"fmt"
)

// APIError represents a non-2xx response from the register.
type APIError struct {
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("registry: API error %d (URL: %s)", e.StatusCode, e.URL)
}

// IsRetryable reports whether the error is worth retrying: server-side
// failures and rate limiting, never client errors.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500 || apiErr.StatusCode == 429
	}
	return false
}
