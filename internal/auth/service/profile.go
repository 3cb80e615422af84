package service

import "time"

// Profile represents user information that can be shared with other domains.
type Profile struct {
	ID        string
	Email     string
	FullName  string
	Role      string
	Stations  []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Roles assignable to users. Admins implicitly have access to every station;
// technicians and viewers are limited to their station grants.
const (
	RoleAdmin      = "admin"
	RoleTechnician = "technician"
	RoleViewer     = "viewer"
)

// ValidRole reports whether the given role is one of the assignable roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTechnician, RoleViewer:
		return true
	}
	return false
}
