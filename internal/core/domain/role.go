package domain

import "fmt"

// Role is the authorisation tier attached to a user account.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleStaff      Role = "staff"
	RoleMitra      Role = "mitra"
	RoleCustomer   Role = "customer"
	RoleDevice     Role = "device"
)

// DefaultRole is assigned to accounts created without an explicit role.
const DefaultRole = RoleCustomer

// allRoles is ordered from most to least privileged.
var allRoles = []Role{RoleSuperadmin, RoleAdmin, RoleStaff, RoleMitra, RoleCustomer, RoleDevice}

// AdminRoles may use the admin login and the admin-only routes.
var AdminRoles = NewRoleSet(RoleSuperadmin, RoleAdmin)

// ParseRole converts a raw string into a Role, rejecting anything outside the
// fixed enumeration.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range allRoles {
		if r == known {
			return true
		}
	}
	return false
}

func (r Role) String() string { return string(r) }

// IsAdmin reports whether r is admin or superadmin.
func (r Role) IsAdmin() bool { return AdminRoles.Contains(r) }

func (r Role) IsSuperadmin() bool { return r == RoleSuperadmin }

// IsPartner reports whether r is the partner-owner role.
func (r Role) IsPartner() bool { return r == RoleMitra }

// RoleSet is an unordered set of roles used for membership checks.
type RoleSet map[Role]struct{}

// NewRoleSet builds a set from the given roles. Unknown roles are ignored so a
// typo can never widen access.
func NewRoleSet(roles ...Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		if r.Valid() {
			s[r] = struct{}{}
		}
	}
	return s
}

// Contains reports whether r is a member of the set.
func (s RoleSet) Contains(r Role) bool {
	_, ok := s[r]
	return ok
}

// Roles returns the members in privilege order.
func (s RoleSet) Roles() []Role {
	out := make([]Role, 0, len(s))
	for _, r := range allRoles {
		if s.Contains(r) {
			out = append(out, r)
		}
	}
	return out
}
