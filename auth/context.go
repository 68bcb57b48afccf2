package auth

import "context"

type ctxKey struct{}

// WithIdentity attaches identity to ctx.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, identity)
}

// FromContext returns the identity attached to ctx, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(ctxKey{}).(Identity)
	return identity, ok
}

// IsAdmin reports whether ctx carries an ADMIN identity.
func IsAdmin(ctx context.Context) bool {
	identity, ok := FromContext(ctx)
	return ok && identity.IsAdmin()
}
