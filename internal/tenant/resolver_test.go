package tenant_test

import (
	"context"
	"errors"
	"testing"

	"github.com/siteworkhq/sitework/internal/apperr"
	"github.com/siteworkhq/sitework/internal/rbac"
	"github.com/siteworkhq/sitework/internal/store"
	"github.com/siteworkhq/sitework/internal/tenant"
)

type fakeUsers map[string]*store.User

func (f fakeUsers) GetByID(_ context.Context, id string) (*store.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

type fakeMemberships map[string]*store.Membership

func (f fakeMemberships) Get(_ context.Context, tenantID, userID string) (*store.Membership, error) {
	if m, ok := f[tenantID+"/"+userID]; ok {
		return m, nil
	}
	return nil, store.ErrNotFound
}

func kind(t *testing.T, err error) apperr.Kind {
	t.Helper()
	var e *apperr.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *apperr.Error, got %T: %v", err, err)
	}
	return e.Kind
}

func TestResolve_NoSessionFailsClosed(t *testing.T) {
	r := tenant.NewResolver(fakeUsers{}, fakeMemberships{}, false)

	_, err := r.Resolve(context.Background(), "", "t1")
	if err == nil {
		t.Fatal("expected error for empty user ID")
	}
	if kind(t, err) != apperr.KindUnauthenticated {
		t.Errorf("kind = %v, want unauthenticated", kind(t, err))
	}
}

func TestResolve_DevModeDemoContext(t *testing.T) {
	r := tenant.NewResolver(fakeUsers{}, fakeMemberships{}, true)

	tc, err := r.Resolve(context.Background(), "", "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if tc.UserID != tenant.DemoUserID || tc.TenantID != tenant.DemoTenantID {
		t.Errorf("demo context = (%s, %s), want fixed demo IDs", tc.UserID, tc.TenantID)
	}
	if tc.Role != rbac.RoleAdmin {
		t.Errorf("demo role = %s, want admin", tc.Role)
	}
	if tc.IsSuperadmin {
		t.Error("demo context must not carry platform-level power")
	}

	// Dev mode only applies to sessionless requests; a real session still
	// resolves normally.
	_, err = r.Resolve(context.Background(), "u-unknown", "t1")
	if kind(t, err) != apperr.KindUnauthenticated {
		t.Errorf("stale session in dev mode: kind = %v, want unauthenticated", kind(t, err))
	}
}

func TestResolve_StaleSession(t *testing.T) {
	r := tenant.NewResolver(fakeUsers{}, fakeMemberships{}, false)

	_, err := r.Resolve(context.Background(), "u-gone", "t1")
	if kind(t, err) != apperr.KindUnauthenticated {
		t.Errorf("kind = %v, want unauthenticated", kind(t, err))
	}
}

func TestResolve_TenantRequired(t *testing.T) {
	users := fakeUsers{"u1": {ID: "u1"}}
	r := tenant.NewResolver(users, fakeMemberships{}, false)

	_, err := r.Resolve(context.Background(), "u1", "")
	if kind(t, err) != apperr.KindForbidden {
		t.Errorf("kind = %v, want forbidden", kind(t, err))
	}
}

func TestResolve_NonMemberDenied(t *testing.T) {
	users := fakeUsers{"u1": {ID: "u1"}}
	memberships := fakeMemberships{
		"t-other/u1": {TenantID: "t-other", UserID: "u1", Role: "admin", Status: store.MembershipActive},
	}
	r := tenant.NewResolver(users, memberships, false)

	_, err := r.Resolve(context.Background(), "u1", "t1")
	if kind(t, err) != apperr.KindForbidden {
		t.Errorf("kind = %v, want forbidden", kind(t, err))
	}
}

func TestResolve_InactiveMembershipDenied(t *testing.T) {
	users := fakeUsers{"u1": {ID: "u1"}}
	for _, status := range []string{store.MembershipInvited, store.MembershipDisabled} {
		memberships := fakeMemberships{
			"t1/u1": {TenantID: "t1", UserID: "u1", Role: "admin", Status: status},
		}
		r := tenant.NewResolver(users, memberships, false)

		_, err := r.Resolve(context.Background(), "u1", "t1")
		if err == nil {
			t.Fatalf("status %s: expected denial", status)
		}
		if kind(t, err) != apperr.KindForbidden {
			t.Errorf("status %s: kind = %v, want forbidden", status, kind(t, err))
		}
	}
}

func TestResolve_ActiveMember(t *testing.T) {
	users := fakeUsers{"u1": {ID: "u1"}}
	memberships := fakeMemberships{
		"t1/u1": {TenantID: "t1", UserID: "u1", Role: "project_manager", Status: store.MembershipActive},
	}
	r := tenant.NewResolver(users, memberships, false)

	tc, err := r.Resolve(context.Background(), "u1", "t1")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if tc.Role != rbac.RoleProjectManager {
		t.Errorf("role = %s, want project_manager", tc.Role)
	}
	if !tc.Can(rbac.ResourceProjects, rbac.ActionUpdate) {
		t.Error("project manager should be able to update projects")
	}
	if tc.Can(rbac.ResourceProjects, rbac.ActionDelete) {
		t.Error("project manager must not delete projects")
	}
}

func TestResolve_Superadmin(t *testing.T) {
	users := fakeUsers{"root": {ID: "root", IsSuperadmin: true}}
	r := tenant.NewResolver(users, fakeMemberships{}, false)

	// Superadmins resolve for any tenant without a membership row.
	tc, err := r.Resolve(context.Background(), "root", "t-any")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !tc.IsSuperadmin {
		t.Error("IsSuperadmin should be set")
	}
	if !tc.Can(rbac.ResourceTenants, rbac.ActionCreate) {
		t.Error("superadmin should hold the universal permission set")
	}

	// And for platform routes with no tenant at all.
	tc, err = r.Resolve(context.Background(), "root", "")
	if err != nil {
		t.Fatalf("resolve with empty tenant: %v", err)
	}
	if tc.TenantID != "" {
		t.Errorf("tenant ID = %q, want empty", tc.TenantID)
	}
}
