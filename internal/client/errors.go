package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/slok/todoq/internal/model"
)

// FieldError is a field-level validation failure reported by the API.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ApplicationError means the request reached the server and the server
// rejected it (4xx). The message is safe to surface verbatim to the user.
type ApplicationError struct {
	StatusCode int
	Code       string
	Message    string
	Details    []FieldError
}

func (e *ApplicationError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, e.Message)
	}

	fields := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		fields = append(fields, fmt.Sprintf("%s: %s", d.Field, d.Message))
	}
	return fmt.Sprintf("%s (%d): %s (%s)", e.Code, e.StatusCode, e.Message, strings.Join(fields, ", "))
}

// Unwrap maps 404 responses to model.ErrNotFound so callers can reconcile
// "already gone" resources with errors.Is.
func (e *ApplicationError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return model.ErrNotFound
	}
	return nil
}

// NetworkError means the request could not be completed: connection or DNS
// failure, a 5xx response, or a payload that was not the expected format.
// 5xx is infra at fault, not the client's input, so it lands here.
type NetworkError struct {
	Err        error
	StatusCode int    // 0 when no response was received at all.
	RawBody    string // Unparsable payload, kept for diagnostics.
}

func (e *NetworkError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("network error: %v", e.Err)
	case e.RawBody != "":
		return fmt.Sprintf("network error: unexpected response (status %d): %s", e.StatusCode, e.RawBody)
	default:
		return fmt.Sprintf("network error: server failure (status %d)", e.StatusCode)
	}
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNetworkError returns whether the error chain contains a NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsApplicationError returns the ApplicationError in the chain, if any.
func IsApplicationError(err error) (*ApplicationError, bool) {
	var ae *ApplicationError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
