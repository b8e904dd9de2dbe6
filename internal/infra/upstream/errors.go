package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for callers that branch on failure class.
var (
	// ErrInvalidArticleID is returned when an article is requested with an
	// empty ID.
	ErrInvalidArticleID = errors.New("invalid article id: id is required")

	// ErrUnauthorized is returned when the backend rejects the forwarded
	// session cookie.
	ErrUnauthorized = errors.New("invalid or expired session")
)

// APIError is a structured error reported by the backend. Its message and
// status are safe to relay to the browser as-is; that is the whole point of
// the proxy's error contract.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("upstream %d: %s", e.Status, e.Message)
}

// apiErrorFrom builds an APIError from an upstream response. It prefers the
// backend's structured {"error": ...} body; otherwise it falls back to the
// status text so nothing internal leaks through.
func apiErrorFrom(status int, body []byte) *APIError {
	var structured struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := ""
	if json.Unmarshal(body, &structured) == nil {
		if structured.Error != "" {
			msg = structured.Error
		} else if structured.Message != "" {
			msg = structured.Message
		}
	}
	if strings.TrimSpace(msg) == "" {
		msg = http.StatusText(status)
	}
	return &APIError{Status: status, Message: msg}
}

// AsAPIError extracts an *APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
