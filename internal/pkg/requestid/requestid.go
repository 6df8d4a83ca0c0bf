// Package requestid carries the inbound request id through to backend calls.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the header used both inbound and towards the backend.
const Header = "X-Request-ID"

type ctxKey struct{}

// With returns a context whose outgoing backend calls reuse id.
func With(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, id)
}

// From returns the id stored in ctx, or a fresh one.
func From(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}
