// Package rbac holds the static role-to-permission table. The table is built
// once at init and never mutated, so lookups need no synchronization.
package rbac

// Role is an assignable membership role. The set of roles and their
// permissions is fixed at compile time; roles are assignable, not editable.
type Role string

const (
	RoleOwner          Role = "owner"
	RoleAdmin          Role = "admin"
	RoleProjectManager Role = "project_manager"
	RoleMember         Role = "member"

	// RoleSuperadmin is platform-level and never stored on a membership row;
	// it is derived from the user record at context resolution.
	RoleSuperadmin Role = "superadmin"
)

// Resource is a category of guarded resources.
type Resource string

const (
	ResourceProjects  Resource = "projects"
	ResourceDocuments Resource = "documents"
	ResourcePhotos    Resource = "photos"
	ResourceMembers   Resource = "members"
	ResourceTenants   Resource = "tenants"

	// ResourceAny paired with ActionAny denotes the superadmin universal set.
	ResourceAny Resource = "*"
)

// Action is an operation on a resource.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionAny    Action = "*"
)

// Permission is a (resource, action) capability.
type Permission struct {
	Resource Resource
	Action   Action
}

// PermissionSet is an immutable set of capabilities. Callers must treat the
// set as read-only; the registry hands out shared instances.
type PermissionSet map[Permission]struct{}

// Has reports whether the set grants action on resource, either via the exact
// pair, a wildcard action on the resource, or the universal wildcard.
func (s PermissionSet) Has(resource Resource, action Action) bool {
	if _, ok := s[Permission{Resource: ResourceAny, Action: ActionAny}]; ok {
		return true
	}
	if _, ok := s[Permission{Resource: resource, Action: ActionAny}]; ok {
		return true
	}
	_, ok := s[Permission{Resource: resource, Action: action}]
	return ok
}

var rolePermissions = map[Role]PermissionSet{
	RoleOwner: permissionSet(
		Permission{ResourceProjects, ActionAny},
		Permission{ResourceDocuments, ActionAny},
		Permission{ResourcePhotos, ActionAny},
		Permission{ResourceMembers, ActionAny},
		Permission{ResourceTenants, ActionUpdate},
	),
	RoleAdmin: permissionSet(
		Permission{ResourceProjects, ActionAny},
		Permission{ResourceDocuments, ActionAny},
		Permission{ResourcePhotos, ActionAny},
		Permission{ResourceMembers, ActionAny},
	),
	RoleProjectManager: permissionSet(
		Permission{ResourceProjects, ActionRead},
		Permission{ResourceProjects, ActionUpdate},
		Permission{ResourceDocuments, ActionAny},
		Permission{ResourcePhotos, ActionAny},
		Permission{ResourceMembers, ActionRead},
	),
	RoleMember: permissionSet(
		Permission{ResourceProjects, ActionRead},
		Permission{ResourceDocuments, ActionRead},
		Permission{ResourcePhotos, ActionRead},
	),
	RoleSuperadmin: permissionSet(
		Permission{ResourceAny, ActionAny},
	),
}

var emptySet = PermissionSet{}

func permissionSet(perms ...Permission) PermissionSet {
	s := make(PermissionSet, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

// PermissionsFor returns the permission set for role. Unknown roles map to
// the empty set; an unrecognized role must never grant access.
func PermissionsFor(role Role) PermissionSet {
	if s, ok := rolePermissions[role]; ok {
		return s
	}
	return emptySet
}

// Valid reports whether role is one of the assignable membership roles.
// RoleSuperadmin is intentionally excluded: it cannot be assigned.
func Valid(role Role) bool {
	switch role {
	case RoleOwner, RoleAdmin, RoleProjectManager, RoleMember:
		return true
	}
	return false
}
