package rbac_test

import (
	"testing"

	"github.com/siteworkhq/sitework/internal/rbac"
)

func TestPermissionsFor_RoleTable(t *testing.T) {
	tests := []struct {
		name     string
		role     rbac.Role
		resource rbac.Resource
		action   rbac.Action
		want     bool
	}{
		{"owner deletes projects", rbac.RoleOwner, rbac.ResourceProjects, rbac.ActionDelete, true},
		{"owner updates tenant", rbac.RoleOwner, rbac.ResourceTenants, rbac.ActionUpdate, true},
		{"admin deletes projects", rbac.RoleAdmin, rbac.ResourceProjects, rbac.ActionDelete, true},
		{"admin cannot update tenant", rbac.RoleAdmin, rbac.ResourceTenants, rbac.ActionUpdate, false},
		{"pm updates projects", rbac.RoleProjectManager, rbac.ResourceProjects, rbac.ActionUpdate, true},
		{"pm cannot delete projects", rbac.RoleProjectManager, rbac.ResourceProjects, rbac.ActionDelete, false},
		{"pm cannot manage members", rbac.RoleProjectManager, rbac.ResourceMembers, rbac.ActionCreate, false},
		{"pm reads members", rbac.RoleProjectManager, rbac.ResourceMembers, rbac.ActionRead, true},
		{"member reads projects", rbac.RoleMember, rbac.ResourceProjects, rbac.ActionRead, true},
		{"member cannot create projects", rbac.RoleMember, rbac.ResourceProjects, rbac.ActionCreate, false},
		{"member cannot create documents", rbac.RoleMember, rbac.ResourceDocuments, rbac.ActionCreate, false},
		{"superadmin passes everything", rbac.RoleSuperadmin, rbac.ResourceTenants, rbac.ActionDelete, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rbac.PermissionsFor(tt.role).Has(tt.resource, tt.action)
			if got != tt.want {
				t.Errorf("PermissionsFor(%s).Has(%s, %s) = %v, want %v", tt.role, tt.resource, tt.action, got, tt.want)
			}
		})
	}
}

func TestPermissionsFor_UnknownRoleGrantsNothing(t *testing.T) {
	set := rbac.PermissionsFor(rbac.Role("bogus"))
	if set.Has(rbac.ResourceProjects, rbac.ActionRead) {
		t.Error("unknown role must not grant any permission")
	}
	if len(set) != 0 {
		t.Errorf("unknown role set has %d entries, want 0", len(set))
	}
}

func TestHas_WildcardMatching(t *testing.T) {
	// Resource wildcard covers every action on that resource.
	admin := rbac.PermissionsFor(rbac.RoleAdmin)
	for _, a := range []rbac.Action{rbac.ActionCreate, rbac.ActionRead, rbac.ActionUpdate, rbac.ActionDelete} {
		if !admin.Has(rbac.ResourceProjects, a) {
			t.Errorf("admin should have projects:%s via wildcard", a)
		}
	}

	// Universal wildcard covers unknown resources too.
	super := rbac.PermissionsFor(rbac.RoleSuperadmin)
	if !super.Has(rbac.Resource("anything"), rbac.ActionDelete) {
		t.Error("superadmin universal wildcard should cover unknown resources")
	}
}

func TestValid(t *testing.T) {
	for _, r := range []rbac.Role{rbac.RoleOwner, rbac.RoleAdmin, rbac.RoleProjectManager, rbac.RoleMember} {
		if !rbac.Valid(r) {
			t.Errorf("Valid(%s) = false, want true", r)
		}
	}
	if rbac.Valid(rbac.RoleSuperadmin) {
		t.Error("superadmin must not be assignable")
	}
	if rbac.Valid(rbac.Role("viewer")) {
		t.Error("unknown role must not be assignable")
	}
}
