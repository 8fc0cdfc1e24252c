package httpx

import (
	"context"

	domainauth "github.com/tillflow/admin-api/internal/domain/auth"
	"github.com/tillflow/admin-api/internal/session"
)

type contextKey string

const (
	sessionContextKey   contextKey = "tillflow.session"
	requestIDContextKey contextKey = "tillflow.request_id"
)

// SessionContext is what RequireAuth places in the request context: the
// resolved store plus the scope its cookie names.
type SessionContext struct {
	Store *session.Store
	Scope string
}

// User returns the authenticated identity; nil when anonymous.
func (c *SessionContext) User() *domainauth.User {
	if c == nil || c.Store == nil {
		return nil
	}
	return c.Store.User()
}

// Token returns the bearer credential for backend calls.
func (c *SessionContext) Token() string {
	if c == nil || c.Store == nil {
		return ""
	}
	return c.Store.Token()
}

// SetSessionInContext stores the session context for downstream handlers.
func SetSessionInContext(ctx context.Context, sc *SessionContext) context.Context {
	return context.WithValue(ctx, sessionContextKey, sc)
}

// SessionFromContext retrieves the session context, or nil when absent.
func SessionFromContext(ctx context.Context) *SessionContext {
	sc, _ := ctx.Value(sessionContextKey).(*SessionContext)
	return sc
}

// SetRequestID stores the request correlation ID.
func SetRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, id)
}

// RequestIDFromContext retrieves the request correlation ID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}
