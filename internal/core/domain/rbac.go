package domain

import "fmt"

// Role is the closed set of access levels a user can hold. Specialized admin
// roles unlock exactly one resource area; RoleAdmin satisfies every check.
type Role string

const (
	RoleUser         Role = "user"
	RoleAdmin        Role = "admin"
	RoleAdminTyres   Role = "admin_tyres"
	RoleAdminBattery Role = "admin_battery"
	RoleAdminParking Role = "admin_parking"
)

// ParseRole converts a stored string into a Role, rejecting unknown values so
// a corrupted or hand-edited record cannot smuggle in a made-up role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin, RoleAdminTyres, RoleAdminBattery, RoleAdminParking:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Allowed reports whether a role may enter a route group with the given
// allowed set. RoleAdmin passes every check regardless of the set; an empty
// set means any authenticated user. This is set membership, not a hierarchy.
func Allowed(role Role, allowed []Role) bool {
	if role == RoleAdmin {
		return true
	}
	if len(allowed) == 0 {
		return true
	}
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

// GroupRoles is the fixed route-group access table. Keys are the route group
// prefixes registered by the router; values are the roles admitted in
// addition to the implicit admin override. An empty slice admits any
// authenticated user.
var GroupRoles = map[string][]Role{
	"/admin":       {RoleAdmin},
	"/trucks":      {RoleAdminParking},
	"/taxis":       {RoleAdminParking},
	"/coasters":    {RoleAdminParking},
	"/cars":        {RoleAdminParking},
	"/bodas":       {RoleAdminParking},
	"/tyre_clinic": {RoleAdminTyres},
	"/battery":     {RoleAdminBattery},
	"/user":        {},
}
