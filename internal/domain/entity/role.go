package entity

// Role labels the access level a route demands from the authenticated account.
type Role string

const (
	// RoleGuest marks routes that accept unauthenticated requests.
	RoleGuest Role = "GUEST"
	// RoleMember marks routes that require a signed-in, active account.
	RoleMember Role = "MEMBER"
)

// Roles is a set of roles accepted by a route.
type Roles []Role

// Contains reports whether the set includes the given role.
func (rs Roles) Contains(role Role) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}

	return false
}
