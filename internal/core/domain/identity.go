package domain

// Role is the closed set of roles the portal understands. Anything outside
// this set is carried verbatim but never grants privileges.
type Role string

const (
	RoleEmployee       Role = "employee"
	RoleTeamLead       Role = "team_lead"
	RoleManager        Role = "manager"
	RoleDepartmentHead Role = "department_head"
	RoleAdmin          Role = "admin"
)

// ParseRole converts a raw role string into a Role, reporting whether it
// belongs to the closed set.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Known()
}

// Known reports whether the role is one of the predefined roles.
func (r Role) Known() bool {
	switch r {
	case RoleEmployee, RoleTeamLead, RoleManager, RoleDepartmentHead, RoleAdmin:
		return true
	default:
		return false
	}
}

// Elevated reports whether the role may see administrative surfaces.
// The switch is exhaustive over the closed set; unknown roles are never
// elevated.
func (r Role) Elevated() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleDepartmentHead:
		return true
	case RoleEmployee, RoleTeamLead:
		return false
	default:
		return false
	}
}

// Registrable lists the roles a user may pick at registration time, in the
// order the form presents them. Admin accounts are provisioned server-side.
func Registrable() []Role {
	return []Role{RoleEmployee, RoleTeamLead, RoleManager, RoleDepartmentHead}
}

// Identity is the authenticated user's profile as the UI needs it.
type Identity struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Role       Role   `json:"role"`
	Department string `json:"department,omitempty"`
	Team       string `json:"team,omitempty"`
	Points     int    `json:"points"`
	Level      int    `json:"level"`
}

// Registration is the payload for creating a new account. Department and
// Team are optional; the empty string means "not selected".
type Registration struct {
	FullName   string `json:"full_name"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       Role   `json:"role"`
	Department string `json:"department,omitempty"`
	Team       string `json:"team,omitempty"`
}
