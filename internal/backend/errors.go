package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// GenericMessage is used when a failed response carries no readable message.
const GenericMessage = "La requête a échoué"

// Error is every failure of a backend call: either the request never
// completed (Transport) or the backend answered with a non-2xx status.
type Error struct {
	Method    string
	Path      string
	Status    int
	Message   string
	Generic   bool // Message is the fallback, not text from the backend
	Transport bool
	Err       error
}

func (e *Error) Error() string {
	if e.Transport {
		return fmt.Sprintf("%s %s: backend unreachable: %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Unauthorized reports a rejected or expired token.
func (e *Error) Unauthorized() bool { return e.Status == http.StatusUnauthorized }

// NotFound reports a missing resource.
func (e *Error) NotFound() bool { return e.Status == http.StatusNotFound }

// AsError extracts a *Error from err.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsTransport reports whether err is a network failure talking to the backend.
func IsTransport(err error) bool {
	e, ok := AsError(err)
	return ok && e.Transport
}

// IsUnauthorized reports whether the backend rejected the token.
func IsUnauthorized(err error) bool {
	e, ok := AsError(err)
	return ok && e.Unauthorized()
}

// Message returns the text to show for err.
func Message(err error) string {
	if e, ok := AsError(err); ok {
		return e.Message
	}
	if err == nil {
		return ""
	}
	return GenericMessage
}

func transportError(method, path string, err error) *Error {
	return &Error{Method: method, Path: path, Transport: true, Message: GenericMessage, Generic: true, Err: err}
}

func statusError(method, path string, status int, contentType string, body []byte) *Error {
	e := &Error{Method: method, Path: path, Status: status}
	if msg := extractMessage(contentType, body); msg != "" {
		e.Message = msg
	} else {
		e.Message = GenericMessage
		e.Generic = true
	}
	return e
}

var messageKeys = []string{"message", "error", "detail"}

// extractMessage reads "message", "error" or "detail" from a JSON body, or
// takes a short plain-text body as is.
func extractMessage(contentType string, body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return ""
	}
	var obj map[string]any
	if json.Unmarshal(body, &obj) == nil {
		for _, k := range messageKeys {
			if s, ok := obj[k].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
		return ""
	}
	if strings.Contains(strings.ToLower(contentType), "html") || strings.HasPrefix(text, "<") {
		return ""
	}
	if len(text) > 500 {
		text = strings.ToValidUTF8(text[:500], "")
	}
	return text
}
