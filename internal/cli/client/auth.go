package client

import (
	"context"
	"net/http"
)

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginData represents the login response payload
type LoginData struct {
	SessionID string         `json:"sessionId"`
	User      map[string]any `json:"user"`
}

// Session describes one active session belonging to the current user.
type Session struct {
	ID           string `json:"id"`
	CreatedAt    string `json:"created_at"`
	LastActivity string `json:"last_activity"`
	UserAgent    string `json:"user_agent"`
	IPAddress    string `json:"ip_address"`
	Current      bool   `json:"current"`
}

// Login authenticates with an email/password pair. The request carries no
// session header; no session exists yet.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginData, error) {
	var data LoginData
	err := c.DoAnonymous(ctx, http.MethodPost, "/auth/login", LoginRequest{Email: email, Password: password}, &data)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// Verify checks the persisted session credential and returns the profile the
// server associates with it.
func (c *Client) Verify(ctx context.Context) (map[string]any, error) {
	var data struct {
		User map[string]any `json:"user"`
	}
	if err := c.Do(ctx, http.MethodGet, "/auth/verify", nil, &data); err != nil {
		return nil, err
	}
	return data.User, nil
}

// Logout asks the server to invalidate the current session.
func (c *Client) Logout(ctx context.Context) error {
	return c.Do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// RenewSession asks the server to extend the current session's validity.
func (c *Client) RenewSession(ctx context.Context) error {
	return c.Do(ctx, http.MethodPost, "/auth/renew-session", nil, nil)
}

// ListSessions returns all sessions belonging to the current user.
func (c *Client) ListSessions(ctx context.Context) ([]Session, error) {
	var sessions []Session
	if err := c.Do(ctx, http.MethodGet, "/auth/sessions", nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// LogoutAll asks the server to invalidate every session for this user.
func (c *Client) LogoutAll(ctx context.Context) error {
	return c.Do(ctx, http.MethodPost, "/auth/logout-all", nil, nil)
}

// UpdateProfile sends a partial profile update and returns the canonical
// profile the server stored.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]any) (map[string]any, error) {
	var user map[string]any
	if err := c.Do(ctx, http.MethodPut, "/auth/profile", fields, &user); err != nil {
		return nil, err
	}
	return user, nil
}

// Register creates a new user account. The server enforces the admin
// privilege; callers gate the UI side with session.IsAdmin.
func (c *Client) Register(ctx context.Context, fields map[string]any) (map[string]any, error) {
	var user map[string]any
	if err := c.DoAnonymous(ctx, http.MethodPost, "/auth/register", fields, &user); err != nil {
		return nil, err
	}
	return user, nil
}
