// ABOUTME: Retrying HTTP transport with timeout-aware exponential backoff
// ABOUTME: Wraps identity provider calls; idempotent requests retry on 5xx and transport errors

package standard

import (
	"fmt"
	"net/http"
	"time"
)

const (
	maxRetries = 3
	userAgent  = "ShoplistAPI/1.0"
)

// RetryTransport implements http.RoundTripper. GET and HEAD requests without
// a body are retried; everything else is sent once.
type RetryTransport struct {
	next http.RoundTripper
}

// NewRetryTransport wraps next, or http.DefaultTransport when it is nil
func NewRetryTransport(next http.RoundTripper) *RetryTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &RetryTransport{next: next}
}

// RoundTrip sends req, retrying transport failures and 5xx responses when req is idempotent
func (t *RetryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", userAgent)
	}

	if !retryable(req) {
		return t.next.RoundTrip(req)
	}

	ctx := req.Context()
	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 100ms, 200ms
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		var err error
		resp, err = t.next.RoundTrip(req)
		if err != nil {
			lastErr = err
			resp = nil
			continue
		}

		// Don't retry on success or 4xx errors
		if resp.StatusCode < 500 {
			break
		}

		// Keep the last 5xx response for the caller
		if attempt == maxRetries-1 {
			break
		}
		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
		resp.Body.Close()
		resp = nil
	}

	if resp == nil {
		return nil, lastErr
	}
	return resp, nil
}

func retryable(req *http.Request) bool {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		return false
	}
	return req.Body == nil || req.Body == http.NoBody
}
