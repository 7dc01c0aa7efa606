package share

import "context"

type contextKey string

const shareContextKey contextKey = "share_context"

// WithContext returns ctx carrying a validated share grant.
func WithContext(ctx context.Context, sc *Context) context.Context {
	return context.WithValue(ctx, shareContextKey, sc)
}

// FromContext retrieves the validated share grant, or nil if validation has
// not run. Portal handlers treat nil as a programming error and deny.
func FromContext(ctx context.Context) *Context {
	sc, _ := ctx.Value(shareContextKey).(*Context)
	return sc
}
