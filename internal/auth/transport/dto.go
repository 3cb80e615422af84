package transport

import "time"

// SignInRequest contains credentials for token issuance.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RefreshRequest carries a refresh token for rotation.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// TokenResponse contains an issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// CreateUserRequest contains data for provisioning a user (admin only).
type CreateUserRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	FullName string   `json:"fullName" validate:"omitempty,max=200"`
	Role     string   `json:"role" validate:"required,oneof=admin technician viewer"`
	Stations []string `json:"stations" validate:"omitempty,dive,required"`
}

// UpdateMeRequest contains self-service profile updates.
type UpdateMeRequest struct {
	FullName *string `json:"fullName,omitempty" validate:"omitempty,max=200"`
}

// ChangePasswordRequest contains a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// SetStationsRequest replaces a user's station grant list (admin only).
type SetStationsRequest struct {
	Stations []string `json:"stations" validate:"required,dive,required"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName,omitempty"`
	Role      string    `json:"role"`
	Stations  []string  `json:"stations"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserListResponse wraps a list of users.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Total int            `json:"total"`
}
