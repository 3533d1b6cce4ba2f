package entity

// Role is the authorization class of a user.
type Role string

const (
	RoleNormal Role = "normal"
	RoleStore  Role = "store"
	RoleAdmin  Role = "admin"
)

// Roles lists every recognized role.
func Roles() []Role {
	return []Role{RoleNormal, RoleStore, RoleAdmin}
}

// RoleNames returns Roles as plain strings.
func RoleNames() []string {
	roles := Roles()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return names
}

// ParseRole matches s exactly against the recognized roles.
// Case and whitespace variants such as "ADMIN" or " store" are not recognized.
func ParseRole(s string) (Role, bool) {
	if r := Role(s); r.Valid() {
		return r, true
	}
	return "", false
}

// ResolveRole returns the role named by s, or RoleNormal when s is empty or unrecognized.
// Registration never fails because of the role field.
func ResolveRole(s string) Role {
	if r, ok := ParseRole(s); ok {
		return r
	}
	return RoleNormal
}

// Valid reports whether r is one of the recognized roles.
func (r Role) Valid() bool {
	switch r {
	case RoleNormal, RoleStore, RoleAdmin:
		return true
	}
	return false
}

// String returns the role name as stored and sent in tokens.
func (r Role) String() string { return string(r) }
