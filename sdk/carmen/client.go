// Package carmen is the Go client for the Carmen admin console API.
package carmen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrNotAuthenticated is returned when a protected request is attempted
	// without a stored token. The request is never sent.
	ErrNotAuthenticated = errors.New("carmen: not authenticated")

	// ErrSessionExpired is wrapped by the APIError of a 401 or 403 response.
	// The session is already cleared by the time the caller sees it.
	ErrSessionExpired = errors.New("carmen: session expired")
)

const loginPath = "/api/auth/login"

// Client is the Carmen API client. All requests carry the application id
// header, and authenticated requests carry the session's bearer token.
type Client struct {
	baseURL    string
	appID      string
	httpClient *http.Client

	session *Session

	Clusters      *ClusterService
	BusinessUnits *BusinessUnitService
	Users         *UserService
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// WithSessionStore persists the session through store and hydrates any
// previously saved session so a restarted client stays signed in.
func WithSessionStore(store SessionStore) Option {
	return func(client *Client) {
		client.session.attach(store)
	}
}

// NewClient creates a Carmen API client.
//
// Parameters:
//   - baseURL: the API base URL (e.g. "https://admin.example.com")
//   - appID: the application id the server expects in the x-app-id header
func NewClient(baseURL, appID string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		appID:   appID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		session: &Session{},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Clusters = &ClusterService{client: c}
	c.BusinessUnits = &BusinessUnitService{client: c}
	c.Users = &UserService{client: c}

	return c
}

// Session returns the client's session state.
func (c *Client) Session() *Session {
	return c.session
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Type       string `json:"type"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`

	err error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("carmen: %s (status %d)", e.Message, e.StatusCode)
}

// Unwrap exposes ErrSessionExpired on 401/403 responses so callers can test
// with errors.Is.
func (e *APIError) Unwrap() error {
	return e.err
}

// envelope is the server's standard response body.
type envelope struct {
	Data     json.RawMessage `json:"data"`
	Paginate *Paginate       `json:"paginate"`
	Message  string          `json:"message"`
}

// doRequest performs a request and decodes the envelope. Protected requests
// fail closed without a token, and a 401 or 403 on anything but the login
// call clears the session so the caller drops back to the sign-in screen.
func (c *Client) doRequest(ctx context.Context, method, path string, body any, result any) (*Paginate, error) {
	token := c.session.Token()
	if token == "" && !strings.HasPrefix(path, loginPath) {
		return nil, ErrNotAuthenticated
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-app-id", c.appID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		// A rejected login is not an expired session; it must leave any
		// existing session alone.
		if (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) &&
			!strings.HasPrefix(path, loginPath) {
			c.session.Clear()
			apiErr.err = ErrSessionExpired
		}

		if err := json.Unmarshal(respBody, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return nil, apiErr
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		// Some endpoints answer with a bare array or a flat object instead
		// of the envelope; decode those straight into the result.
		if result != nil && json.Unmarshal(respBody, result) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if result != nil {
		raw := env.Data
		if raw == nil {
			// Flat response shape, no data wrapper.
			raw = respBody
		}
		if err := json.Unmarshal(raw, result); err != nil {
			return nil, fmt.Errorf("unmarshal data: %w", err)
		}
	}

	return env.Paginate, nil
}
