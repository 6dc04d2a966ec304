package gate

import (
	"context"
	"sort"
	"strings"
)

// Profile is the set of permissions a subject holds.
type Profile interface {
	Name() string
	HasPermission(permission Permission) bool
	Permissions() []Permission
}

// ProfileResolver resolves a subject to its profile.
type ProfileResolver[U any] interface {
	Resolve(ctx context.Context, user U) (Profile, error)
}

// RoleProfile is the union of the permissions granted to a list of roles.
type RoleProfile struct {
	roles       []string
	permissions map[Permission]bool
}

// NewRoleProfile builds a profile from role names and their permissions.
func NewRoleProfile(roles []string, permissions ...Permission) *RoleProfile {
	p := &RoleProfile{roles: roles, permissions: make(map[Permission]bool, len(permissions))}
	for _, perm := range permissions {
		p.permissions[perm] = true
	}
	return p
}

// Name is the comma-separated list of roles.
func (p *RoleProfile) Name() string { return strings.Join(p.roles, ",") }

// Permissions returns the granted permissions, sorted.
func (p *RoleProfile) Permissions() []Permission {
	perms := make([]Permission, 0, len(p.permissions))
	for perm := range p.permissions {
		perms = append(perms, perm)
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i] < perms[j] })
	return perms
}

// HasPermission reports whether any granted permission matches requested.
func (p *RoleProfile) HasPermission(requested Permission) bool {
	for perm := range p.permissions {
		if perm.Matches(requested) {
			return true
		}
	}
	return false
}

// Grants maps a role name to the permissions it carries.
type Grants map[string][]Permission

// RoleResolver builds a RoleProfile from the roles of a subject.
// Role names are compared case-insensitively.
type RoleResolver[U any] struct {
	roles  func(U) []string
	grants map[string][]Permission
}

// NewRoleResolver uses roles to read a subject's roles.
func NewRoleResolver[U any](grants Grants, roles func(U) []string) *RoleResolver[U] {
	norm := make(map[string][]Permission, len(grants))
	for role, perms := range grants {
		key := NormalizeRole(role)
		norm[key] = append(norm[key], perms...)
	}
	return &RoleResolver[U]{roles: roles, grants: norm}
}

// Resolve never fails; a subject without known roles gets an empty profile.
func (r *RoleResolver[U]) Resolve(_ context.Context, user U) (Profile, error) {
	roles := r.roles(user)
	var perms []Permission
	for _, role := range roles {
		perms = append(perms, r.grants[NormalizeRole(role)]...)
	}
	return NewRoleProfile(roles, perms...), nil
}

// NormalizeRole upper-cases a role and drops a "ROLE_" prefix.
func NormalizeRole(role string) string {
	role = strings.ToUpper(strings.TrimSpace(role))
	return strings.TrimPrefix(role, "ROLE_")
}
