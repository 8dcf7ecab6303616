package shared

import (
	"errors"
	"fmt"
	"net"
	"net/http"
)

// HTTPError represents an HTTP error with status code
type HTTPError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s - %s", e.StatusCode, e.Status, e.Message)
}

// ErrNotFound signals that a catalog explicitly reported no matching
// records. It is never retried; the resolver just moves on to the next
// candidate or strategy.
var ErrNotFound = errors.New("catalog: no matching records")

// IsTransient reports whether an error is worth retrying: connection
// failures, timeouts and overload/server-side HTTP statuses.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, ErrNotFound) {
		return false
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusTooManyRequests, // 429
			http.StatusInternalServerError, // 500
			http.StatusBadGateway,          // 502
			http.StatusServiceUnavailable,  // 503
			http.StatusGatewayTimeout:      // 504
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
