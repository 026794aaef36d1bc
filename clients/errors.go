package clients

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidArgument is returned for nil or empty input before any request is sent.
var ErrInvalidArgument = errors.New("invalid argument")

// StatusError is a non-success HTTP status the caller has to act on.
// Adapters only return it for statuses the retry layer understands (429);
// every other non-200 status becomes an absent result.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s API error %d: %s", e.Provider, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s API error %d", e.Provider, e.StatusCode)
}

// HTTPStatusCode returns the response status code.
func (e *StatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// TransportError wraps DNS, connection, timeout and body read failures.
type TransportError struct {
	Provider string
	Op       string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s transport error during %s: %v", e.Provider, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsRateLimited reports whether err carries an HTTP 429 from a translation service.
func IsRateLimited(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// IsTransport reports whether err is a network-level failure.
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
