package tenant

import (
	"encoding/json"
	"net/http"
	"slices"

	"github.com/alexedwards/scs/v2"

	"github.com/siteworkhq/sitework/internal/apperr"
	"github.com/siteworkhq/sitework/internal/auth"
	"github.com/siteworkhq/sitework/internal/metrics"
	"github.com/siteworkhq/sitework/internal/rbac"
)

// TenantHeader carries the tenant the caller claims to act under. The claim
// is verified against the membership store on every request.
const TenantHeader = "X-Tenant-ID"

// Middleware provides the context-resolution middleware and the guards that
// consume it. Guards must be mounted after ResolveContext.
type Middleware struct {
	sessions *scs.SessionManager
	resolver *Resolver
}

func NewMiddleware(sm *scs.SessionManager, r *Resolver) *Middleware {
	return &Middleware{sessions: sm, resolver: r}
}

// ResolveContext extracts the session identity and the claimed tenant, runs
// the resolver, and attaches the resulting context. Any resolution failure
// ends the request; downstream handlers never see a partial context.
func (m *Middleware) ResolveContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := m.sessions.GetString(r.Context(), auth.SessionUserIDKey)
		tenantID := r.Header.Get(TenantHeader)

		tc, err := m.resolver.Resolve(r.Context(), userID, tenantID)
		if err != nil {
			writeDenied(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), tc)))
	})
}

// RequirePermission allows the request iff the resolved context grants
// (resource, action). A missing context is a programming error (the resolver
// did not run) and denies.
func RequirePermission(resource rbac.Resource, action rbac.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tc := FromContext(r.Context())
			if tc == nil || !tc.Can(resource, action) {
				metrics.AuthzDenialsTotal.WithLabelValues("permission").Inc()
				writeDenied(w, apperr.Forbidden("permission denied"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole locks a route group to the given roles. Superadmin contexts
// always pass. A missing context denies.
func RequireRole(roles ...rbac.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tc := FromContext(r.Context())
			if tc == nil || (!tc.IsSuperadmin && !slices.Contains(roles, tc.Role)) {
				metrics.AuthzDenialsTotal.WithLabelValues("role").Inc()
				writeDenied(w, apperr.Forbidden("permission denied"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeDenied renders an operational error as JSON. It lives here rather than
// in the api package so the guards have no dependency on handler code.
func writeDenied(w http.ResponseWriter, err error) {
	e := apperr.From(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.HTTPStatus())
	json.NewEncoder(w).Encode(map[string]string{"error": e.Message, "code": e.Code})
}
