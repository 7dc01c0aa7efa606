package tenant

import (
	"context"
	"errors"

	"github.com/siteworkhq/sitework/internal/apperr"
	"github.com/siteworkhq/sitework/internal/metrics"
	"github.com/siteworkhq/sitework/internal/rbac"
	"github.com/siteworkhq/sitework/internal/store"
)

// Demo identity returned by development-mode resolution. The IDs are fixed so
// local fixtures can reference them.
const (
	DemoUserID   = "00000000-0000-0000-0000-000000000001"
	DemoTenantID = "00000000-0000-0000-0000-0000000000aa"
)

// UserDirectory is the subset of the user store the resolver needs.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*store.User, error)
}

// MembershipLookup is the subset of the membership store the resolver needs.
type MembershipLookup interface {
	Get(ctx context.Context, tenantID, userID string) (*store.Membership, error)
}

// Resolver turns a verified user identifier and a claimed tenant identifier
// into an authoritative Context, or fails. It performs at most two store
// reads and has no side effects, so it is safe to run once per request.
type Resolver struct {
	users       UserDirectory
	memberships MembershipLookup
	devMode     bool
}

// NewResolver creates a Resolver. devMode must only ever be true when the
// process was started with env=development; it enables the demo identity
// shortcut for requests with no session.
func NewResolver(users UserDirectory, memberships MembershipLookup, devMode bool) *Resolver {
	return &Resolver{users: users, memberships: memberships, devMode: devMode}
}

// Resolve produces the tenant context for (userID, tenantID).
//
// Failure modes, all fail-closed:
//   - empty userID          -> Unauthenticated (or the demo context in dev mode)
//   - unknown userID        -> Unauthenticated (stale session)
//   - empty tenantID        -> Forbidden (tenant context required)
//   - no active membership  -> Forbidden
//   - store failure         -> Internal
//
// Platform superadmins resolve for any tenant, membership or not.
func (r *Resolver) Resolve(ctx context.Context, userID, tenantID string) (*Context, error) {
	if userID == "" {
		if r.devMode {
			metrics.ContextResolutionsTotal.WithLabelValues("demo").Inc()
			return demoContext(), nil
		}
		metrics.ContextResolutionsTotal.WithLabelValues("unauthenticated").Inc()
		return nil, apperr.Unauthenticated("authentication required")
	}

	user, err := r.users.GetByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		metrics.ContextResolutionsTotal.WithLabelValues("unauthenticated").Inc()
		return nil, apperr.Unauthenticated("authentication required")
	}
	if err != nil {
		metrics.ContextResolutionsTotal.WithLabelValues("error").Inc()
		return nil, apperr.Internal(err)
	}

	if user.IsSuperadmin {
		metrics.ContextResolutionsTotal.WithLabelValues("superadmin").Inc()
		return &Context{
			UserID:       user.ID,
			TenantID:     tenantID,
			Role:         rbac.RoleSuperadmin,
			Permissions:  rbac.PermissionsFor(rbac.RoleSuperadmin),
			IsSuperadmin: true,
		}, nil
	}

	if tenantID == "" {
		metrics.ContextResolutionsTotal.WithLabelValues("forbidden").Inc()
		return nil, apperr.Forbidden("tenant context required")
	}

	m, err := r.memberships.Get(ctx, tenantID, userID)
	if errors.Is(err, store.ErrNotFound) {
		metrics.ContextResolutionsTotal.WithLabelValues("forbidden").Inc()
		return nil, apperr.Forbidden("no access to this tenant")
	}
	if err != nil {
		metrics.ContextResolutionsTotal.WithLabelValues("error").Inc()
		return nil, apperr.Internal(err)
	}
	if m.Status != store.MembershipActive {
		metrics.ContextResolutionsTotal.WithLabelValues("forbidden").Inc()
		return nil, apperr.Forbidden("no access to this tenant")
	}

	metrics.ContextResolutionsTotal.WithLabelValues("ok").Inc()
	return &Context{
		UserID:      user.ID,
		TenantID:    tenantID,
		Role:        rbac.Role(m.Role),
		Permissions: rbac.PermissionsFor(rbac.Role(m.Role)),
	}, nil
}

// demoContext is a tenant-scoped admin of the fixed demo tenant. It carries
// no platform-level power; admin routes still require a real superadmin.
func demoContext() *Context {
	return &Context{
		UserID:      DemoUserID,
		TenantID:    DemoTenantID,
		Role:        rbac.RoleAdmin,
		Permissions: rbac.PermissionsFor(rbac.RoleAdmin),
	}
}
