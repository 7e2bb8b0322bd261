package aarogyam

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors - Session
var (
	ErrEmptyToken       = errors.New("aarogyam: session token is empty")
	ErrNotAuthenticated = errors.New("aarogyam: not signed in")
	ErrSessionPersist   = errors.New("aarogyam: failed to persist session")
)

// Sentinel errors - Sign-in
var (
	// ErrMissingToken is returned when a sign-in response carries no
	// token field. A token-less response never becomes a session.
	ErrMissingToken = errors.New("aarogyam: sign-in response has no token")
)

// Error codes attached to normalized API errors.
const (
	// CodeConnection marks transport-level failures (DNS, refused, timeout).
	CodeConnection = "connection_failed"
	// CodeHTMLResponse marks a response body that is an HTML error page.
	CodeHTMLResponse = "html_response"
	// CodeInvalidResponse marks a body that could not be parsed as JSON.
	CodeInvalidResponse = "invalid_response"
)

// Error is the normalized API error. Every transport failure, non-2xx
// status and unparseable body surfaces as one of these, so callers branch
// on a single shape instead of mixing exceptions and sentinel objects.
type Error struct {
	// StatusCode is the HTTP status code, 0 for transport failures.
	StatusCode int `json:"-"`
	// Code is a stable machine-readable code.
	Code string `json:"code"`
	// Message is a human-readable description.
	Message string `json:"message"`
	// RawResponse holds a snippet of the offending body, if any.
	RawResponse string `json:"raw_response,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("aarogyam: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("aarogyam: %s: %s", e.Code, e.Message)
}

// IsUnauthorized reports whether the backend rejected the session token.
func (e *Error) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.Code == "unauthorized"
}

// IsForbidden reports whether the backend denied access for this role.
func (e *Error) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden || e.Code == "forbidden"
}

// IsNotFound reports whether the requested record does not exist.
func (e *Error) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound || e.Code == "not_found"
}

// IsInvalidResponse reports whether the failure was a malformed body
// (HTML error page or unparseable JSON) rather than an HTTP-level error.
func (e *Error) IsInvalidResponse() bool {
	return e.Code == CodeHTMLResponse || e.Code == CodeInvalidResponse
}

// AsAPIError checks whether err is a normalized API error.
func AsAPIError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// parseError normalizes a non-2xx response into an *Error. Structured
// JSON error bodies contribute their message; anything else falls back
// to the status text with the body kept as a snippet.
func parseError(statusCode int, body []byte) error {
	var structured struct {
		Error   string `json:"error"`
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &structured); err == nil {
		msg := structured.Message
		if msg == "" {
			msg = structured.Error
		}
		if msg != "" {
			code := structured.Code
			if code == "" {
				code = codeForStatus(statusCode)
			}
			return &Error{StatusCode: statusCode, Code: code, Message: msg}
		}
	}

	return &Error{
		StatusCode:  statusCode,
		Code:        codeForStatus(statusCode),
		Message:     fmt.Sprintf("server returned %d: %s", statusCode, http.StatusText(statusCode)),
		RawResponse: snippet(body),
	}
}

func codeForStatus(statusCode int) string {
	switch statusCode {
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusBadRequest:
		return "bad_request"
	default:
		return "server_error"
	}
}

// snippet truncates a response body for inclusion in error values.
func snippet(body []byte) string {
	const max = 150
	if len(body) <= max {
		return string(body)
	}
	return string(body[:max]) + "..."
}

// ValidationError is a local pre-flight failure: a required field is
// missing or a free-text payload is not valid JSON. No request has been
// issued when one of these is returned.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError with the given field and message.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// requireFields returns a ValidationError for the first empty value.
// Fields are (name, value) pairs.
func requireFields(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return NewValidationError(pairs[i], "is required")
		}
	}
	return nil
}
