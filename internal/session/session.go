// Package session carries the authenticated caller through the request.
package session

import "context"

// Principal is the signed-in user plus the bearer token forwarded to collaborators.
type Principal struct {
	UserID string
	Token  string
}

type contextKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok && p.UserID != ""
}
