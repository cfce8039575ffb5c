package dto

import "time"

// LoginRequest is the console sign-in payload. Email also accepts the
// account username.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginUserInfo is the authenticated account summary returned with the token.
type LoginUserInfo struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	DisplayName  string `json:"display_name"`
	PlatformRole string `json:"platform_role"`
}

// LoginResponse carries the bearer token and its expiry.
type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresAt   time.Time     `json:"expires_at"`
	User        LoginUserInfo `json:"user"`
}
