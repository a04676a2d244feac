package domain

// Role identifies which dashboard and operations a session may use
type Role uint8

const (
	RoleNone   Role = iota // Anonymous session
	RoleAdmin              // Administrator
	RoleVendor             // Vendor
	RoleUser               // Customer
)

// roleNames maps a Role to its wire name
var roleNames = [...]string{
	RoleNone:   "",
	RoleAdmin:  "admin",
	RoleVendor: "vendor",
	RoleUser:   "user",
}

// roleHomes maps a Role to its dashboard route
var roleHomes = [...]string{
	RoleNone:   "/",
	RoleAdmin:  "/admin/dashboard",
	RoleVendor: "/vendor/dashboard",
	RoleUser:   "/user/dashboard",
}

// String returns the wire name of the role
func (r Role) String() string {
	if int(r) >= len(roleNames) {
		return ""
	}
	return roleNames[r]
}

// Home returns the dashboard route of the role, or the landing page for
// anonymous and unknown roles
func (r Role) Home() string {
	if int(r) >= len(roleHomes) {
		return roleHomes[RoleNone]
	}
	return roleHomes[r]
}

// ParseRole converts a wire name back to a Role; unknown names become RoleNone
func ParseRole(s string) Role {
	for i, name := range roleNames {
		if name != "" && name == s {
			return Role(i)
		}
	}
	return RoleNone
}
