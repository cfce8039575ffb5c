package carmen

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// consoleRoles is the allow-list of platform roles the console admits. The
// server enforces the same list at sign-in; the client checks it again so a
// token minted for another surface never drives the admin UI.
var consoleRoles = map[string]bool{
	"platform_admin":   true,
	"support_manager":  true,
	"support_staff":    true,
	"security_officer": true,
}

// Session holds the signed-in account and its bearer token. Safe for
// concurrent use. With a SessionStore attached the state survives process
// restarts.
type Session struct {
	mu        sync.RWMutex
	token     string
	expiresAt time.Time
	user      *SessionUser
	store     SessionStore
}

// SessionUser is the account block of a login response.
type SessionUser struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	DisplayName  string `json:"display_name"`
	PlatformRole string `json:"platform_role"`
}

// LoginRequest are console credentials. Email also accepts a username.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse tolerates both token key spellings the server family has
// used over time.
type loginResponse struct {
	AccessToken string      `json:"access_token"`
	Token       string      `json:"token"`
	TokenType   string      `json:"token_type"`
	ExpiresAt   time.Time   `json:"expires_at"`
	User        SessionUser `json:"user"`
}

func (r *loginResponse) bearerToken() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.Token
}

// Token returns the current bearer token, or "" when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the signed-in account, or nil when signed out.
func (s *Session) User() *SessionUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsSignedIn reports whether a non-expired token is held.
func (s *Session) IsSignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && time.Now().Before(s.expiresAt)
}

// HasRole reports whether the signed-in account holds one of the roles.
func (s *Session) HasRole(roles ...string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return false
	}
	for _, role := range roles {
		if s.user.PlatformRole == role {
			return true
		}
	}
	return false
}

// Clear drops the token and account, and wipes the attached store. Called
// automatically when the server answers 401 or 403.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiresAt = time.Time{}
	s.user = nil
	if s.store != nil {
		_ = s.store.Clear()
	}
}

func (s *Session) set(resp *loginResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = resp.bearerToken()
	s.expiresAt = resp.ExpiresAt
	user := resp.User
	s.user = &user
	if s.store != nil {
		_ = s.store.Save(SessionState{Token: s.token, ExpiresAt: s.expiresAt, User: s.user})
	}
}

// attach wires a store and hydrates any saved, unexpired session.
func (s *Session) attach(store SessionStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = store
	state, err := store.Load()
	if err != nil || state == nil || state.Token == "" {
		return
	}
	if !state.ExpiresAt.IsZero() && !time.Now().Before(state.ExpiresAt) {
		_ = store.Clear()
		return
	}
	s.token = state.Token
	s.expiresAt = state.ExpiresAt
	s.user = state.User
}

// Login authenticates and stores the session. Accounts whose platform role
// is not permitted on the console are rejected client-side even if the
// server issued a token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*SessionUser, error) {
	var resp loginResponse
	if _, err := c.doRequest(ctx, http.MethodPost, loginPath, req, &resp); err != nil {
		return nil, err
	}

	if !consoleRoles[resp.User.PlatformRole] {
		return nil, &APIError{
			StatusCode: http.StatusForbidden,
			Type:       "forbidden",
			Message:    "account role not permitted on console",
		}
	}

	c.session.set(&resp)
	user := resp.User
	return &user, nil
}

// Logout tells the server a session ended (best effort, for the audit log)
// and clears the local session either way.
func (c *Client) Logout(ctx context.Context) {
	if c.session.Token() != "" {
		_, _ = c.doRequest(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	}
	c.session.Clear()
}

// GetProfile fetches the signed-in account's profile.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if _, err := c.doRequest(ctx, http.MethodGet, "/api/user/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
