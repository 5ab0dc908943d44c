package apiclient

import (
	"errors"
	"fmt"
)

// ErrSessionExpired is returned after any 401 response. The persisted session
// has already been cleared by the time callers see it; there is no opt-out.
var ErrSessionExpired = errors.New("session expired, please log in again")

// fallbackMessage is shown when neither the server nor the transport gives us
// anything better.
const fallbackMessage = "Something went wrong. Please try again."

// transportMessage is shown when no response was received at all.
const transportMessage = "Could not reach Voluntree. Check your connection and try again."

// APIError is a response the server answered but rejected. Message holds the
// server-provided text when the body carried one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error (status %d)", e.StatusCode)
}

// TransportError is a request that produced no HTTP response.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request %s %s failed: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err means no response was received.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// UserMessage picks the text to show a user for a failed operation, in
// preference order: server-provided message, generic network message, static
// fallback.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrSessionExpired) {
		return ErrSessionExpired.Error()
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if IsTransport(err) {
		return transportMessage
	}
	return fallbackMessage
}
