package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gearbase-dev/gearbase/internal/cli/client"
	"github.com/gearbase-dev/gearbase/internal/cli/store"
)

func writeEnvelope(w http.ResponseWriter, status int, data any, errMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := map[string]any{"success": errMsg == ""}
	if data != nil {
		resp["data"] = data
	}
	if errMsg != "" {
		resp["error"] = errMsg
	}
	json.NewEncoder(w).Encode(resp)
}

// newTestSession wires a session client against a mock API server and an
// in-memory store.
func newTestSession(t *testing.T, handler http.HandlerFunc) (*Client, *store.MemStore) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	st := store.NewMem()
	api := client.New(server.URL, st)
	return New(api, st, zerolog.Nop()), st
}

// seedStore puts a persisted session pair in place, as if a previous process
// had logged in.
func seedStore(t *testing.T, st *store.MemStore, sessionID string, user map[string]any) {
	t.Helper()

	require.NoError(t, st.Set(store.KeySessionID, sessionID))
	raw, err := json.Marshal(user)
	require.NoError(t, err)
	require.NoError(t, st.Set(store.KeyUser, string(raw)))
}

func loginHandler(t *testing.T, sessionID string, user map[string]any) http.HandlerFunc {
	t.Helper()

	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			if r.Header.Get("X-Session-ID") != "" {
				t.Error("login request must not carry a session header")
			}
			writeEnvelope(w, http.StatusOK, map[string]any{"sessionId": sessionID, "user": user}, "")
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestLogin_Success(t *testing.T) {
	user := map[string]any{"id": 1, "email": "a@b.com", "name": "Ada", "role": "editor"}
	sess, st := newTestSession(t, loginHandler(t, "s1", user))

	profile, err := sess.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)

	assert.True(t, sess.IsLoggedIn())
	assert.Equal(t, "a@b.com", profile.Email())
	assert.Equal(t, "Ada", sess.CurrentUser().Name())

	// Credential and profile are persisted as a pair.
	stored, err := st.Get(store.KeySessionID)
	require.NoError(t, err)
	assert.Equal(t, "s1", stored)
	rawUser, err := st.Get(store.KeyUser)
	require.NoError(t, err)
	assert.Contains(t, rawUser, "a@b.com")
}

func TestLogin_FailurePreservesExistingSession(t *testing.T) {
	sess, st := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, nil, "invalid credentials")
	})
	seedStore(t, st, "old-session", map[string]any{"id": 7, "email": "old@b.com"})

	_, err := sess.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())

	// The previous session stays intact.
	stored, err := st.Get(store.KeySessionID)
	require.NoError(t, err)
	assert.Equal(t, "old-session", stored)
}

func TestLogin_NetworkFailureUsesGenericMessage(t *testing.T) {
	st := store.NewMem()
	api := client.New("http://127.0.0.1:1", st) // nothing listens here
	sess := New(api, st, zerolog.Nop())

	_, err := sess.Login(context.Background(), "a@b.com", "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login failed")
	assert.False(t, sess.IsLoggedIn())
}

func TestLogout_ClearsStateEvenWhenServerFails(t *testing.T) {
	user := map[string]any{"id": 1, "email": "a@b.com"}
	sess, st := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			writeEnvelope(w, http.StatusOK, map[string]any{"sessionId": "s1", "user": user}, "")
		case "/auth/logout":
			writeEnvelope(w, http.StatusInternalServerError, nil, "boom")
		}
	})

	_, err := sess.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)

	require.NoError(t, sess.Logout(context.Background()))

	assert.False(t, sess.IsLoggedIn())
	_, err = st.Get(store.KeySessionID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Get(store.KeyUser)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestVerify_UnauthorizedClearsStateAndFiresEvent(t *testing.T) {
	sess, st := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	seedStore(t, st, "expired", map[string]any{"id": 1})

	invalidated := false
	sess.OnInvalidate(func() { invalidated = true })

	_, err := sess.Verify(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.True(t, invalidated)
	assert.False(t, sess.IsLoggedIn())

	_, err = st.Get(store.KeySessionID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Get(store.KeyUser)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestVerify_SuccessRefreshesProfile(t *testing.T) {
	sess, st := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]any{
			"user": map[string]any{"id": 1, "email": "fresh@b.com", "role": "admin"},
		}, "")
	})
	seedStore(t, st, "s1", map[string]any{"id": 1, "email": "stale@b.com"})

	profile, err := sess.Verify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh@b.com", profile.Email())
	assert.True(t, sess.IsLoggedIn())
	assert.True(t, sess.IsAdmin())
}

func TestRestore_ExpiredPersistedSession(t *testing.T) {
	sess, st := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	seedStore(t, st, "expired", map[string]any{"id": 1})

	require.NoError(t, sess.Restore(context.Background()))

	// Self-heal: neither half of the pair survives.
	_, err := st.Get(store.KeySessionID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Get(store.KeyUser)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.False(t, sess.IsLoggedIn())
}

func TestRestore_NoPersistedSessionMakesNoRequest(t *testing.T) {
	sess, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	})

	require.NoError(t, sess.Restore(context.Background()))
	assert.False(t, sess.IsLoggedIn())
}

func TestCurrentUser_LazyLoadsFromStoreWithoutNetwork(t *testing.T) {
	sess, st := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	})
	seedStore(t, st, "s1", map[string]any{"id": 1, "email": "a@b.com", "name": "Ada"})

	user := sess.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "Ada", user.Name())

	// The profile alone does not make the client logged in; the
	// authenticated flag is only set by a verified or fresh session.
	assert.False(t, sess.IsLoggedIn())

	// The lazy load populated the cache: clearing the store no longer
	// affects reads.
	require.NoError(t, store.Clear(st))
	assert.Equal(t, "Ada", sess.CurrentUser().Name())
}

func TestCurrentUser_EmptyEverywhere(t *testing.T) {
	sess, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	})

	assert.Nil(t, sess.CurrentUser())
	assert.False(t, sess.IsAdmin())
}

func TestLogoutAll_ServerFailureStillClearsLocalState(t *testing.T) {
	user := map[string]any{"id": 1, "role": "admin"}
	sess, st := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			writeEnvelope(w, http.StatusOK, map[string]any{"sessionId": "s1", "user": user}, "")
		case "/auth/logout-all":
			writeEnvelope(w, http.StatusInternalServerError, nil, "server exploded")
		}
	})

	_, err := sess.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.True(t, sess.IsAdmin())

	err = sess.LogoutAll(context.Background())
	require.Error(t, err)

	assert.False(t, sess.IsLoggedIn())
	_, err = st.Get(store.KeySessionID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRenew_RejectionRunsFullLogout(t *testing.T) {
	sess, st := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	seedStore(t, st, "s1", map[string]any{"id": 1})

	err := sess.Renew(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = st.Get(store.KeySessionID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSessions_FailureDoesNotLogOut(t *testing.T) {
	user := map[string]any{"id": 1}
	sess, st := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			writeEnvelope(w, http.StatusOK, map[string]any{"sessionId": "s1", "user": user}, "")
		case "/auth/sessions":
			writeEnvelope(w, http.StatusInternalServerError, nil, "listing broke")
		}
	})

	_, err := sess.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)

	_, err = sess.Sessions(context.Background())
	require.Error(t, err)

	// A transient listing failure must not destroy a working session.
	assert.True(t, sess.IsLoggedIn())
	stored, err := st.Get(store.KeySessionID)
	require.NoError(t, err)
	assert.Equal(t, "s1", stored)
}

func TestUpdateProfile_ReplacesCachedProfileWholesale(t *testing.T) {
	sess, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			writeEnvelope(w, http.StatusOK, map[string]any{
				"sessionId": "s1",
				"user":      map[string]any{"id": 1, "name": "Old", "nickname": "Gearhead"},
			}, "")
		case "/auth/profile":
			if r.Method != http.MethodPut {
				t.Errorf("unexpected method: %s", r.Method)
			}
			writeEnvelope(w, http.StatusOK, map[string]any{"id": 1, "name": "New"}, "")
		}
	})

	_, err := sess.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.Contains(t, sess.CurrentUser(), "nickname")

	updated, err := sess.UpdateProfile(context.Background(), map[string]any{"name": "New"})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name())

	// No shallow merge: fields absent from the server's response are gone.
	current := sess.CurrentUser()
	assert.NotContains(t, current, "nickname")
	assert.Equal(t, "New", current.Name())
}

func TestRequests_ReadCredentialFreshFromStore(t *testing.T) {
	var seen []string
	sess, st := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("X-Session-ID"))
		writeEnvelope(w, http.StatusOK, map[string]any{
			"user": map[string]any{"id": 1},
		}, "")
	})
	seedStore(t, st, "s1", map[string]any{"id": 1})

	_, err := sess.Verify(context.Background())
	require.NoError(t, err)

	// Swap the persisted credential; the very next request must carry it
	// without any re-initialization.
	require.NoError(t, st.Set(store.KeySessionID, "s2"))

	_, err = sess.Verify(context.Background())
	require.NoError(t, err)

	require.Equal(t, []string{"s1", "s2"}, seen)
}

func TestRegister_DoesNotTouchSessionState(t *testing.T) {
	sess, st := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			writeEnvelope(w, http.StatusOK, map[string]any{
				"sessionId": "s1",
				"user":      map[string]any{"id": 1, "role": "admin"},
			}, "")
		case "/auth/register":
			writeEnvelope(w, http.StatusOK, map[string]any{"id": 2, "email": "new@b.com", "role": "editor"}, "")
		}
	})

	_, err := sess.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)

	created, err := sess.Register(context.Background(), map[string]any{"email": "new@b.com"})
	require.NoError(t, err)
	assert.Equal(t, "new@b.com", created.Email())

	// The admin stays logged in as themselves.
	assert.Equal(t, "1", sess.CurrentUser().ID())
	stored, err := st.Get(store.KeySessionID)
	require.NoError(t, err)
	assert.Equal(t, "s1", stored)
}

func TestProfile_Accessors(t *testing.T) {
	p := Profile{"id": float64(42), "email": "a@b.com", "name": "Ada", "role": "admin"}
	assert.Equal(t, "42", p.ID())
	assert.Equal(t, "a@b.com", p.Email())
	assert.Equal(t, "admin", p.Role())
	assert.Equal(t, "", p.field("missing"))
}
