package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/gearbase-dev/gearbase/internal/cli/store"
)

// ErrUnauthorized is returned when the server rejects the session
// credential. The registered unauthorized hook has already run by the time
// a caller sees this error.
var ErrUnauthorized = errors.New("authorization denied")

// APIError carries the server's own error message for a failed request.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is an HTTP client for the Gearbase catalog API.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	store          store.Store
	onUnauthorized func()
}

// New creates a new API client. The session credential is read from the
// durable store at send time, on every request, so a credential written by
// another operation takes effect on the very next call. The cookie jar keeps
// cross-origin session cookies riding along with the X-Session-ID header.
func New(baseURL string, st store.Store) *Client {
	jar, _ := cookiejar.New(nil)

	return &Client{
		baseURL: baseURL,
		store:   st,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
			// Skip TLS verification for self-signed certificates
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true,
				},
			},
		},
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// OnUnauthorized registers a hook invoked whenever any request through this
// client receives an authorization-denied response, regardless of which
// operation produced it.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// envelope is the response wrapper used by every API endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Do sends an authenticated JSON request and decodes the envelope's data
// field into out. out may be nil for endpoints without a payload.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out, true)
}

// DoAnonymous is Do without the session header, for endpoints that run
// before a session exists (login, registration).
func (c *Client) DoAnonymous(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out, false)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, withSession bool) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", ulid.Make().String())

	if withSession {
		// Read fresh from durable storage, never from a cached copy.
		sessionID, err := c.store.Get(store.KeySessionID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("failed to load session credential: %w", err)
		}
		if sessionID != "" {
			req.Header.Set("X-Session-ID", sessionID)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &env); err != nil {
			if resp.StatusCode >= 400 {
				return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("request failed (status %d)", resp.StatusCode)}
			}
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	if resp.StatusCode >= 400 || (len(respBody) > 0 && !env.Success) {
		message := env.Error
		if message == "" {
			message = fmt.Sprintf("request failed (status %d)", resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
