package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized marks any 401 from the storefront API. The error
	// handler reacts by clearing the admin session and redirecting to
	// the login page.
	ErrUnauthorized = errors.New("storefront api: unauthorized")

	ErrNotFound = errors.New("storefront api: not found")
)

// Error carries the status and whatever the backend put in its error
// body ({"message": ...} or {"error": ...}, raw text otherwise).
type Error struct {
	Status  int
	Message string
	Body    string
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = strings.TrimSpace(e.Body)
	}
	return fmt.Sprintf("api error: status=%d message=%s", e.Status, msg)
}

func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return nil
	}
}

func parseError(status int, body []byte) *Error {
	out := &Error{Status: status, Body: string(body)}

	var m map[string]any
	if json.Unmarshal(body, &m) == nil {
		if v, ok := m["message"].(string); ok && v != "" {
			out.Message = v
		} else if v, ok := m["error"].(string); ok {
			out.Message = v
		}
	}
	return out
}
