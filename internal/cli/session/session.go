// Package session owns the client-side authentication state: the current
// user profile, the derived authenticated flag, and the durable session
// credential. One instance exists per process; its state is reset via
// Logout, never torn down.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gearbase-dev/gearbase/internal/cli/client"
	"github.com/gearbase-dev/gearbase/internal/cli/store"
)

// ErrNotAuthenticated is returned when a session operation fails because the
// credential is missing, expired, or rejected. By the time a caller sees it,
// local cleanup has already run; no separate cleanup step is needed.
var ErrNotAuthenticated = errors.New("not authenticated")

// Client manages the authentication session against the Gearbase API.
//
// The authenticated flag is derived state: it is true only while both a
// session credential and a user profile are held, and it is never persisted
// on its own. The credential and the serialized profile are written to and
// cleared from durable storage as a pair within a single operation.
type Client struct {
	api   *client.Client
	store store.Store
	log   zerolog.Logger

	mu            sync.Mutex
	authenticated bool
	user          Profile

	onInvalidate func()
}

// New creates the session client and registers it as the API client's
// unauthorized hook, so an authorization-denied response to ANY request
// through the transport clears local session state.
func New(api *client.Client, st store.Store, log zerolog.Logger) *Client {
	c := &Client{
		api:   api,
		store: st,
		log:   log,
	}
	api.OnUnauthorized(c.invalidate)
	return c
}

// OnInvalidate registers a callback fired after an authorization-denied
// response has cleared the session. The hosting application decides how to
// react (the CLI prints a re-login hint; a UI would navigate to login).
func (c *Client) OnInvalidate(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onInvalidate = fn
}

// Restore runs the startup protocol: if a session credential is persisted,
// verify it against the server and load the profile; if the credential is
// absent, stay unauthenticated. Any verification failure runs the full
// logout procedure so a corrupted or expired persisted session never
// lingers.
func (c *Client) Restore(ctx context.Context) error {
	_, err := c.store.Get(store.KeySessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}

	if _, err := c.Verify(ctx); err != nil {
		// Verify already cleaned up; a stale session is not a startup error.
		c.log.Debug().Err(err).Msg("persisted session did not verify")
	}
	return nil
}

// Login authenticates with the given credentials. On success the new
// credential and profile are persisted as a pair and the client becomes
// authenticated. On failure nothing is mutated: a previously persisted
// session, if any, stays intact. Credential format validation is the
// caller's job, not this layer's.
func (c *Client) Login(ctx context.Context, email, password string) (Profile, error) {
	data, err := c.api.Login(ctx, email, password)
	if err != nil {
		return nil, failure("login failed", err)
	}

	user := Profile(data.User)
	if err := c.persist(data.SessionID, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout ends the session. The server-side invalidate call is advisory:
// its error is logged and discarded so local cleanup always completes,
// whether or not the server was reachable.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.api.Logout(ctx); err != nil {
		c.log.Debug().Err(err).Msg("server-side logout failed, clearing local session anyway")
	}
	return c.clearLocal()
}

// Verify re-checks the persisted credential against the server and
// refreshes the cached profile. A failure runs the full logout procedure
// and returns ErrNotAuthenticated.
func (c *Client) Verify(ctx context.Context) (Profile, error) {
	user, err := c.api.Verify(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			// The transport hook already ran the cleanup; a server-side
			// invalidate call would just be denied again.
			return nil, ErrNotAuthenticated
		}
		if logoutErr := c.Logout(ctx); logoutErr != nil {
			c.log.Debug().Err(logoutErr).Msg("cleanup after failed verification")
		}
		return nil, ErrNotAuthenticated
	}

	profile := Profile(user)
	if err := c.cacheUser(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// CurrentUser returns the cached profile, lazily loading it from durable
// storage when memory is empty. It never makes a network call; nil means no
// profile is available from either source.
func (c *Client) CurrentUser() Profile {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.user != nil {
		return c.user
	}

	raw, err := c.store.Get(store.KeyUser)
	if err != nil {
		return nil
	}

	var user Profile
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		c.log.Debug().Err(err).Msg("persisted user profile is corrupt")
		return nil
	}
	c.user = user
	return user
}

// IsLoggedIn reports whether the client is authenticated AND a profile is
// loaded. A stored profile alone (e.g. before Restore has run) is not
// enough.
func (c *Client) IsLoggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authenticated && c.user != nil
}

// IsAdmin reports whether the current user has the admin role. It is false,
// not an error, when no user is loaded.
func (c *Client) IsAdmin() bool {
	user := c.CurrentUser()
	if user == nil {
		return false
	}
	return user.Role() == RoleAdmin
}

// Renew asks the server to extend the session's validity. A rejection means
// the session is no longer valid server-side, so it is handled exactly like
// a failed verification: full logout, ErrNotAuthenticated.
func (c *Client) Renew(ctx context.Context) error {
	if err := c.api.RenewSession(ctx); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return ErrNotAuthenticated
		}
		if logoutErr := c.Logout(ctx); logoutErr != nil {
			c.log.Debug().Err(logoutErr).Msg("cleanup after failed renewal")
		}
		return ErrNotAuthenticated
	}
	return nil
}

// Sessions lists every active session for the current user. A listing
// failure does not touch session state; a transient error should not
// destroy a working session.
func (c *Client) Sessions(ctx context.Context) ([]client.Session, error) {
	sessions, err := c.api.ListSessions(ctx)
	if err != nil {
		return nil, failure("failed to list sessions", err)
	}
	return sessions, nil
}

// LogoutAll asks the server to invalidate every session for this user, then
// clears local state regardless of the server's answer: the caller's intent
// was to end this session too.
func (c *Client) LogoutAll(ctx context.Context) error {
	serverErr := c.api.LogoutAll(ctx)
	if err := c.clearLocal(); err != nil {
		return err
	}
	if serverErr != nil {
		return failure("failed to log out all sessions", serverErr)
	}
	return nil
}

// UpdateProfile sends a partial profile update. The server's returned
// profile replaces the cached one wholesale; the server is the source of
// truth for derived and validated fields, so the input is never merged
// locally.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]any) (Profile, error) {
	user, err := c.api.UpdateProfile(ctx, fields)
	if err != nil {
		return nil, failure("failed to update profile", err)
	}

	profile := Profile(user)
	if err := c.cacheUser(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Register creates a new user account. The server enforces the privilege;
// callers gate the command with IsAdmin. Local session state is untouched.
func (c *Client) Register(ctx context.Context, fields map[string]any) (Profile, error) {
	user, err := c.api.Register(ctx, fields)
	if err != nil {
		return nil, failure("failed to register user", err)
	}
	return Profile(user), nil
}

// persist writes the credential and profile as a pair and flips the
// in-memory state in the same operation.
func (c *Client) persist(sessionID string, user Profile) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user profile: %w", err)
	}
	if err := c.store.Set(store.KeySessionID, sessionID); err != nil {
		return err
	}
	if err := c.store.Set(store.KeyUser, string(raw)); err != nil {
		return err
	}

	c.mu.Lock()
	c.authenticated = true
	c.user = user
	c.mu.Unlock()
	return nil
}

// cacheUser replaces the in-memory and persisted profile together, keeping
// the two copies consistent.
func (c *Client) cacheUser(user Profile) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user profile: %w", err)
	}
	if err := c.store.Set(store.KeyUser, string(raw)); err != nil {
		return err
	}

	c.mu.Lock()
	c.authenticated = true
	c.user = user
	c.mu.Unlock()
	return nil
}

// clearLocal removes the persisted pair and resets in-memory state. It is
// the single funnel for every cleanup path, so racing cleanups converge on
// the same cleared state.
func (c *Client) clearLocal() error {
	err := store.Clear(c.store)

	c.mu.Lock()
	c.authenticated = false
	c.user = nil
	c.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to clear session storage: %w", err)
	}
	return nil
}

// invalidate is the transport's unauthorized hook: unconditional local
// cleanup plus the session-invalidated event.
func (c *Client) invalidate() {
	if err := c.clearLocal(); err != nil {
		c.log.Debug().Err(err).Msg("failed to clear session after authorization denial")
	}

	c.mu.Lock()
	fn := c.onInvalidate
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// failure keeps the server's own message when one exists and falls back to
// a generic one otherwise.
func failure(fallback string, err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr
	}
	return fmt.Errorf("%s: %w", fallback, err)
}
