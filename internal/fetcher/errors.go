package fetcher

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedStatus is wrapped by FetchError for any non-200 response.
	ErrUnexpectedStatus = errors.New("unexpected status code")
	// ErrBodyTooLarge is wrapped by FetchError when a response exceeds MaxBodySize.
	ErrBodyTooLarge = errors.New("response body too large")
)

// FetchError reports a failed GET. StatusCode is zero when no response was received.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements error.
func (e *FetchError) Error() string {
	if errors.Is(e.Err, ErrUnexpectedStatus) {
		return fmt.Sprintf("fetch %s: %v %d", e.URL, e.Err, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// StatusCodeOf extracts the HTTP status from a fetch error, or 0.
func StatusCodeOf(err error) int {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.StatusCode
	}
	return 0
}
