package models

// Principal is the authenticated caller resolved from a bearer token.
type Principal struct {
	ID   uint
	Name string
	Role string
}

// HasRole reports whether the principal holds one of roles.
func (p Principal) HasRole(roles ...string) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}
