// ABOUTME: Protocol-level error types for the monday.com GraphQL transport.
// ABOUTME: A ProtocolError wraps HTTP status, GraphQL errors, and the raw response body.
package graphql

import (
	"fmt"
	"strings"
)

// ResponseError is a single error entry from the GraphQL response envelope.
type ResponseError struct {
	Message string `json:"message"`
	Code    string `json:"error_code,omitempty"`
}

func (e ResponseError) String() string {
	if e.Code != "" {
		return e.Code + ": " + e.Message
	}
	return e.Message
}

// ProtocolError indicates the remote call produced no usable data payload:
// a non-JSON body, a GraphQL error list, or a null "data" field.
type ProtocolError struct {
	Message    string
	StatusCode int
	Errors     []ResponseError
	Raw        []byte
	Cause      error
}

func (e *ProtocolError) Error() string {
	msg := e.Message
	if len(e.Errors) > 0 {
		parts := make([]string, len(e.Errors))
		for i, re := range e.Errors {
			parts[i] = re.String()
		}
		msg = fmt.Sprintf("%s: %s", msg, strings.Join(parts, "; "))
	}
	if e.Cause != nil {
		msg = msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *ProtocolError) Unwrap() error {
	return e.Cause
}

// IsRetryable reports whether the failure is worth retrying: rate limiting
// or a server-side fault. Everything else (bad query, bad auth) is not.
func (e *ProtocolError) IsRetryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
