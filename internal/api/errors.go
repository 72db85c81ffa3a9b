package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx response from the API. Message carries the server's
// error field verbatim when the payload had one.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API request failed with status %d", e.StatusCode)
}

// newError builds an *Error from a failed response body.
func newError(statusCode int, body []byte) *Error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return &Error{StatusCode: statusCode, Message: payload.Error}
	}

	return &Error{StatusCode: statusCode}
}

// IsUnauthorized reports whether err is an API rejection of the credentials
// or token, as opposed to a transport failure or server fault.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}
