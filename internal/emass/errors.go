package emass

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoCaller means a catalog variant reached the invoker without a Go caller.
// LoadRegistry makes this unreachable for the embedded catalog.
var ErrNoCaller = errors.New("no caller registered for variant")

// TransportError is a failure below HTTP: DNS, TLS, connection refused, timeout,
// context cancellation.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to connect to eMASS API at %s (%s): %v", e.URL, e.Method, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is an HTTP error status returned by eMASS. Body holds the decoded
// JSON error document when the response was JSON, the raw text otherwise.
type APIError struct {
	Status int
	URL    string
	Body   any
}

func (e *APIError) Error() string {
	msg := errorMessage(e.Body)
	if msg == "" {
		return fmt.Sprintf("eMASS API request failed with status %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("eMASS API request failed with status %d %s: %s", e.Status, http.StatusText(e.Status), msg)
}

// StatusCode returns the HTTP status.
func (e *APIError) StatusCode() int { return e.Status }

// Payload returns the structured error body.
func (e *APIError) Payload() any { return e.Body }

// errorMessage extracts meta.errorMessage from an eMASS error document, or
// returns the body itself when it is plain text.
func errorMessage(body any) string {
	switch b := body.(type) {
	case string:
		return b
	case map[string]any:
		if meta, ok := b["meta"].(map[string]any); ok {
			if msg, ok := meta["errorMessage"].(string); ok {
				return msg
			}
		}
	}
	return ""
}
