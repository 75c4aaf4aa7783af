package http

import (
	"context"

	"github.com/example/hotel-console/internal/tokenstore"
)

type contextKey string

const (
	profileIDContextKey contextKey = "profile_id"
	backendContextKey   contextKey = "storage_backend"
)

// ContextWithProfile returns a derived context carrying the storage profile of the browser.
func ContextWithProfile(ctx context.Context, profileID string, backend tokenstore.Backend) context.Context {
	ctx = context.WithValue(ctx, profileIDContextKey, profileID)
	if backend != nil {
		ctx = context.WithValue(ctx, backendContextKey, backend)
	}
	return ctx
}

// ProfileIDFromContext extracts the storage profile identifier if available.
func ProfileIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(profileIDContextKey).(string)
	return id, ok && id != ""
}

// BackendFromContext returns the storage backend of the browser, or nil when
// the request has no usable storage.
func BackendFromContext(ctx context.Context) tokenstore.Backend {
	backend, _ := ctx.Value(backendContextKey).(tokenstore.Backend)
	return backend
}

// SessionFromContext reads the signed-in session from the browser storage.
func SessionFromContext(ctx context.Context) tokenstore.Session {
	return tokenstore.LoadSession(ctx, BackendFromContext(ctx))
}
