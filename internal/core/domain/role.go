package domain

import "strings"

// Role is the closed set of roles the console knows about.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleLibrarian Role = "librarian"
	RoleMember    Role = "member"
)

// ParseRole normalizes a backend role string. Matching is case-insensitive and
// ignores surrounding whitespace; a "ROLE_" prefix is tolerated.
func ParseRole(s string) (Role, error) {
	r := strings.ToLower(strings.TrimSpace(s))
	r = strings.TrimPrefix(r, "role_")
	switch Role(r) {
	case RoleAdmin, RoleLibrarian, RoleMember:
		return Role(r), nil
	}
	return "", ErrUnknownRole
}

// LandingRoute returns the dashboard path for the role.
func (r Role) LandingRoute() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleLibrarian:
		return "/librarian/dashboard"
	case RoleMember:
		return "/member/dashboard"
	}
	return "/login"
}

func (r Role) String() string { return string(r) }

// Is reports whether r is one of roles.
func (r Role) Is(roles ...Role) bool {
	for _, other := range roles {
		if r == other {
			return true
		}
	}
	return false
}
