package roads

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/roadsight/roadsync/pkg/route"
)

// APIError is a non-2xx response from the route selection API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

// AuthError is a failure to obtain an access token before any request was
// sent.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("failed to obtain access token: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Classify maps a CreateRoute error onto the submission failure taxonomy.
func Classify(err error) string {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return route.ReasonAuthFailure
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return route.ReasonRateLimited
		case apiErr.StatusCode == http.StatusUnauthorized,
			apiErr.StatusCode == http.StatusForbidden:
			return route.ReasonAuthFailure
		case apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
			return route.ReasonInvalidRequest
		default:
			return route.ReasonUnknown
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return route.ReasonTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return route.ReasonTimeout
	}

	return route.ReasonUnknown
}
