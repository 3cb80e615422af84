// Package auth provides authentication and user management.
// This file defines the public API of the auth bounded context.
// Only types defined here should be imported by other domains.
package auth

import "evmaint_backend/internal/auth/service"

// Profile represents user information that can be shared with other domains.
type Profile = service.Profile

// Roles assignable to users.
const (
	RoleAdmin      = service.RoleAdmin
	RoleTechnician = service.RoleTechnician
	RoleViewer     = service.RoleViewer
)
