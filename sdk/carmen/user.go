package carmen

import (
	"context"
	"fmt"
	"net/http"
)

// UserService operates on /api-system/users and the profile endpoints.
type UserService struct {
	client *Client
}

// CreateUserRequest creates a platform account. Leaving Password empty asks
// the server to generate a temporary one; pair it with SendInvite.
type CreateUserRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
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

// UpdateProfileRequest patches the signed-in account's display fields.
// Supplying both password fields rotates the password in the same request.
type UpdateProfileRequest struct {
	AliasName       *string `json:"alias_name,omitempty"`
	FirstName       *string `json:"first_name,omitempty"`
	MiddleName      *string `json:"middle_name,omitempty"`
	LastName        *string `json:"last_name,omitempty"`
	Telephone       *string `json:"telephone,omitempty"`
	CurrentPassword string  `json:"current_password,omitempty"`
	NewPassword     string  `json:"new_password,omitempty"`
}

// ChangePasswordRequest rotates the signed-in account's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (s *UserService) List(ctx context.Context, query *ListQuery) ([]User, *Paginate, error) {
	var users []User
	paginate, err := s.client.doRequest(ctx, http.MethodGet, query.path("/api-system/users"), nil, &users)
	if err != nil {
		return nil, nil, fmt.Errorf("list users: %w", err)
	}
	return users, paginate, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*User, error) {
	var user User
	if _, err := s.client.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api-system/users/%d", id), nil, &user); err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	var user User
	if _, err := s.client.doRequest(ctx, http.MethodPost, "/api-system/users", req, &user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

func (s *UserService) Update(ctx context.Context, id uint, req UpdateUserRequest) (*User, error) {
	var user User
	if _, err := s.client.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api-system/users/%d", id), req, &user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &user, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	if _, err := s.client.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api-system/users/%d", id), nil, nil); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// UpdateProfile patches the signed-in account.
func (s *UserService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*Profile, error) {
	var profile Profile
	if _, err := s.client.doRequest(ctx, http.MethodPut, "/api/user/profile", req, &profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &profile, nil
}

// ChangePassword rotates the signed-in account's password.
func (s *UserService) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	if _, err := s.client.doRequest(ctx, http.MethodPut, "/api/user/profile/password", req, nil); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}
