// Package dto carries the wire shapes for user management and the
// signed-in user's profile.
package dto

import (
	"time"

	"github.com/carmen-hq/carmen/internal/domain/user"
)

// CreateUserRequest creates a platform account. When Password is empty a
// temporary one is generated and delivered by invite email.
type CreateUserRequest struct {
	Username     string `json:"username" binding:"required,min=3,max=64"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password,omitempty"`
	PlatformRole string `json:"platform_role,omitempty"`
	AliasName    string `json:"alias_name,omitempty"`
	FirstName    string `json:"first_name,omitempty"`
	MiddleName   string `json:"middle_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Telephone    string `json:"telephone,omitempty"`
	IsActive     *bool  `json:"is_active,omitempty"`
	SendInvite   bool   `json:"send_invite,omitempty"`
}

// UpdateUserRequest patches a platform account. Nil fields are left as-is.
type UpdateUserRequest struct {
	Email        *string `json:"email,omitempty"`
	PlatformRole *string `json:"platform_role,omitempty"`
	AliasName    *string `json:"alias_name,omitempty"`
	FirstName    *string `json:"first_name,omitempty"`
	MiddleName   *string `json:"middle_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	Telephone    *string `json:"telephone,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

// UpdateProfileRequest patches the signed-in user's own account. Role and
// activation state are deliberately not reachable from here. Supplying both
// password fields rotates the password in the same request.
type UpdateProfileRequest struct {
	AliasName       *string `json:"alias_name,omitempty"`
	FirstName       *string `json:"first_name,omitempty"`
	MiddleName      *string `json:"middle_name,omitempty"`
	LastName        *string `json:"last_name,omitempty"`
	Telephone       *string `json:"telephone,omitempty"`
	CurrentPassword string  `json:"current_password,omitempty"`
	NewPassword     string  `json:"new_password,omitempty"`
}

// ChangePasswordRequest rotates the signed-in user's password. The current
// password must be presented again.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// UserResponse is a platform account on the wire. The password hash never
// leaves the server.
type UserResponse struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PlatformRole string    `json:"platform_role"`
	AliasName    string    `json:"alias_name,omitempty"`
	FirstName    string    `json:"first_name,omitempty"`
	MiddleName   string    `json:"middle_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	DisplayName  string    `json:"display_name"`
	Telephone    string    `json:"telephone,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProfileResponse is the signed-in user's account plus every cluster and
// business unit the account is assigned to.
type ProfileResponse struct {
	UserResponse
	Clusters      []*user.ClusterAssignment      `json:"clusters"`
	BusinessUnits []*user.BusinessUnitAssignment `json:"business_units"`
}

// UserResponseFromEntity maps a domain user to its wire shape.
func UserResponseFromEntity(u *user.User) *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PlatformRole: u.PlatformRole,
		AliasName:    u.AliasName,
		FirstName:    u.FirstName,
		MiddleName:   u.MiddleName,
		LastName:     u.LastName,
		DisplayName:  u.DisplayName(),
		Telephone:    u.Telephone,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
