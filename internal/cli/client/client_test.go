package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gearbase-dev/gearbase/internal/cli/store"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *store.MemStore) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	st := store.NewMem()
	return New(server.URL, st), st
}

func TestDo_DecodesEnvelopeData(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"name": "Crane X100"},
		})
	})

	var out struct {
		Name string `json:"name"`
	}
	err := c.Do(context.Background(), http.MethodGet, "/products/1", nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "Crane X100", out.Name)
}

func TestDo_ServerErrorMessagePropagates(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   "brand is required",
		})
	})

	err := c.Do(context.Background(), http.MethodPost, "/products", map[string]string{}, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "brand is required", apiErr.Message)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestDo_ErrorWithoutPayloadGetsGenericMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := c.Do(context.Background(), http.MethodGet, "/products", nil, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "status 500")
}

func TestDo_UnauthorizedFiresHookForAnyRequest(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	fired := 0
	c.OnUnauthorized(func() { fired++ })

	// The hook is global: a catalog request trips it the same way an auth
	// request does.
	err := c.Do(context.Background(), http.MethodGet, "/brands", nil, nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
	err = c.Do(context.Background(), http.MethodPost, "/auth/renew-session", nil, nil)
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.Equal(t, 2, fired)
}

func TestDo_AttachesSessionAndRequestHeaders(t *testing.T) {
	var gotSession, gotRequestID string
	c, st := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotSession = r.Header.Get("X-Session-ID")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	})

	require.NoError(t, st.Set(store.KeySessionID, "sess-abc"))

	err := c.Do(context.Background(), http.MethodGet, "/products", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "sess-abc", gotSession)
	assert.Len(t, gotRequestID, 26) // ULID length
}

func TestDoAnonymous_OmitsSessionHeader(t *testing.T) {
	var gotSession string
	c, st := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotSession = r.Header.Get("X-Session-ID")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	})

	require.NoError(t, st.Set(store.KeySessionID, "sess-abc"))

	err := c.DoAnonymous(context.Background(), http.MethodPost, "/auth/login", map[string]string{"email": "a@b.com"}, nil)
	require.NoError(t, err)
	assert.Empty(t, gotSession)
}

func TestLogin_SendsCredentials(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@b.com", req.Email)
		assert.Equal(t, "pw", req.Password)

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"sessionId": "s1",
				"user":      map[string]any{"id": "u1", "email": "a@b.com"},
			},
		})
	})

	data, err := c.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "s1", data.SessionID)
	assert.Equal(t, "a@b.com", data.User["email"])
}

func TestListSessions_DecodesDescriptors(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/sessions", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{
				{"id": "sess-1", "ip_address": "10.0.0.5", "current": true},
				{"id": "sess-2", "ip_address": "10.0.0.9"},
			},
		})
	})

	sessions, err := c.ListSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.True(t, sessions[0].Current)
	assert.Equal(t, "10.0.0.9", sessions[1].IPAddress)
}
