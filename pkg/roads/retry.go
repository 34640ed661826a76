package roads

import (
	"net/http"
	"time"
)

// HTTPDoer is the subset of http.Client the roads client depends on.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RetryDoer wraps an HTTPDoer with a fixed attempt budget. Retries apply to
// network errors, 429, and 5xx responses; retry policy lives here, at the
// HTTP client boundary, never in the submission pipeline itself.
type RetryDoer struct {
	base     HTTPDoer
	attempts int
	backoff  time.Duration
}

// NewRetryDoer returns a RetryDoer making up to attempts tries per request
// with linear backoff between tries. Attempts below 1 are treated as 1.
func NewRetryDoer(base HTTPDoer, attempts int) *RetryDoer {
	if attempts < 1 {
		attempts = 1
	}
	return &RetryDoer{
		base:     base,
		attempts: attempts,
		backoff:  500 * time.Millisecond,
	}
}

// Do executes the request, retrying retryable failures until the attempt
// budget is spent. The request body must be rewindable (GetBody set), which
// http.NewRequestWithContext provides for byte-backed bodies.
func (d *RetryDoer) Do(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error

	for attempt := 1; attempt <= d.attempts; attempt++ {
		if attempt > 1 {
			if req.GetBody != nil {
				body, bodyErr := req.GetBody()
				if bodyErr != nil {
					return resp, err
				}
				req.Body = body
			}

			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-time.After(d.backoff * time.Duration(attempt-1)):
			}
		}

		resp, err = d.base.Do(req)
		if err != nil {
			resp = nil
			continue
		}
		if !retryableStatus(resp.StatusCode) || attempt == d.attempts {
			return resp, nil
		}
		resp.Body.Close()
	}

	return resp, err
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}
