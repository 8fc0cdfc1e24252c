package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed backend call so callers can branch on failure
// kind instead of string-matching messages.
type ErrorKind string

const (
	// KindTransport covers network failures and malformed response bodies.
	KindTransport ErrorKind = "transport"
	// KindBackend covers explicit backend rejections: a non-2xx status or a
	// payload reporting success:false. Message carries the backend's text.
	KindBackend ErrorKind = "backend"
	// KindUnauthorized is a 401 on a protected call, the session-expired
	// signal callers recover from by logging out.
	KindUnauthorized ErrorKind = "unauthorized"
)

// Error is the typed failure returned by every Client method.
type Error struct {
	Kind       ErrorKind
	StatusCode int    // HTTP status when the response was received, else 0
	Message    string // backend-provided message when present
	Cause      error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s error", e.Kind)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is match ErrUnauthorized regardless of message text.
func (e *Error) Is(target error) bool {
	if target == ErrUnauthorized {
		return e.Kind == KindUnauthorized
	}
	return false
}

// ErrUnauthorized is the sentinel for session expiry; compare with errors.Is.
var ErrUnauthorized = &Error{Kind: KindUnauthorized, StatusCode: http.StatusUnauthorized, Message: "session expired"}

// IsUnauthorized reports whether err is (or wraps) a 401 from the backend.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func transportErr(cause error) *Error {
	return &Error{Kind: KindTransport, Cause: cause}
}

func backendErr(status int, message, fallback string) *Error {
	if status == http.StatusUnauthorized {
		msg := message
		if msg == "" {
			msg = "session expired"
		}
		return &Error{Kind: KindUnauthorized, StatusCode: status, Message: msg}
	}
	if message == "" {
		message = fallback
	}
	return &Error{Kind: KindBackend, StatusCode: status, Message: message}
}
