// Package tenant resolves the identity behind a request into an authoritative
// tenant-scoped context and gates the request pipeline on it.
package tenant

import (
	"context"

	"github.com/siteworkhq/sitework/internal/rbac"
)

type contextKey string

const tenantContextKey contextKey = "tenant_context"

// Context is the resolved identity of one request: who is calling, under
// which tenant, with which permissions. It is built fresh per request, never
// persisted, and either fully populated or not attached at all.
type Context struct {
	UserID       string
	TenantID     string
	Role         rbac.Role
	Permissions  rbac.PermissionSet
	IsSuperadmin bool
}

// Can reports whether the context grants action on resource. Superadmin
// contexts hold the universal set and always pass.
func (c *Context) Can(resource rbac.Resource, action rbac.Action) bool {
	if c.IsSuperadmin {
		return true
	}
	return c.Permissions.Has(resource, action)
}

// WithContext returns ctx carrying the resolved tenant context.
func WithContext(ctx context.Context, tc *Context) context.Context {
	return context.WithValue(ctx, tenantContextKey, tc)
}

// FromContext retrieves the resolved tenant context, or nil if the resolver
// has not run. Guards treat nil as a programming error and deny.
func FromContext(ctx context.Context) *Context {
	tc, _ := ctx.Value(tenantContextKey).(*Context)
	return tc
}
