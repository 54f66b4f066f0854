package session_test

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/third774/dyte-remix/internal/session"
)

func newStore(t *testing.T, secret string) *session.Store {
	t.Helper()
	store, err := session.NewStore(session.Options{Secret: secret, MaxAge: time.Hour})
	require.NoError(t, err)
	return store
}

// roundTrip commits sess and returns a request carrying the resulting cookie.
func roundTrip(t *testing.T, store *session.Store, sess *session.Session) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, store.Commit(rec, sess))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	return req
}

func TestStore_EmptyRequest(t *testing.T) {
	store := newStore(t, "secret")

	sess := store.Get(httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, sess.Name())
	assert.Empty(t, sess.UserID())
	assert.False(t, sess.Dirty())
}

func TestStore_RoundTrip(t *testing.T) {
	store := newStore(t, "secret")

	sess := store.Get(httptest.NewRequest(http.MethodGet, "/", nil))
	sess.SetName("Ada")
	userID := sess.EnsureUserID()
	assert.True(t, sess.Dirty())

	loaded := store.Get(roundTrip(t, store, sess))

	assert.Equal(t, "Ada", loaded.Name())
	assert.Equal(t, userID, loaded.UserID())
	assert.False(t, loaded.Dirty())
}

func TestStore_UserIDIsMintedOnce(t *testing.T) {
	store := newStore(t, "secret")

	sess := &session.Session{}
	first := sess.EnsureUserID()
	_, err := uuid.Parse(first)
	require.NoError(t, err)

	replayed := store.Get(roundTrip(t, store, sess))
	second := replayed.EnsureUserID()

	assert.Equal(t, first, second)
	assert.False(t, replayed.Dirty(), "reusing an existing user id must not dirty the session")
}

func TestStore_UnsetName(t *testing.T) {
	store := newStore(t, "secret")

	sess := &session.Session{}
	sess.SetName("Ada")
	userID := sess.EnsureUserID()
	loaded := store.Get(roundTrip(t, store, sess))

	loaded.UnsetName()
	assert.True(t, loaded.Dirty())

	cleared := store.Get(roundTrip(t, store, loaded))
	assert.Empty(t, cleared.Name())
	assert.Equal(t, userID, cleared.UserID())
}

func TestStore_CookieAttributes(t *testing.T) {
	store, err := session.NewStore(session.Options{Secret: "secret", MaxAge: time.Hour, Secure: true})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, store.Commit(rec, &session.Session{}))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, session.DefaultCookieName, c.Name)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 3600, c.MaxAge)
}

func TestStore_RejectsInvalidCookies(t *testing.T) {
	store := newStore(t, "secret")
	other := newStore(t, "another-secret")

	signedElsewhere := &session.Session{}
	signedElsewhere.SetName("Mallory")
	foreign := roundTrip(t, other, signedElsewhere)

	tests := []struct {
		name string
		req  *http.Request
	}{
		{
			name: "signed with another secret",
			req:  foreign,
		},
		{
			name: "garbage value",
			req: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "not-a-token"})
				return req
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := store.Get(tt.req)
			assert.Empty(t, sess.Name())
			assert.Empty(t, sess.UserID())
		})
	}
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestStore_ExpiredCookieIsDiscardedQuietly(t *testing.T) {
	store := newStore(t, "secret")
	// Expiry is stored at second precision, so this cookie is already expired.
	shortLived, err := session.NewStore(session.Options{Secret: "secret", MaxAge: time.Nanosecond})
	require.NoError(t, err)

	sess := &session.Session{}
	sess.SetName("Ada")
	req := roundTrip(t, shortLived, sess)

	buf := captureLog(t)
	got := store.Get(req)

	assert.Empty(t, got.Name())
	assert.Empty(t, buf.String())
}

func TestStore_ForgedCookieIsLogged(t *testing.T) {
	store := newStore(t, "secret")
	other := newStore(t, "another-secret")

	sess := &session.Session{}
	sess.SetName("Mallory")
	req := roundTrip(t, other, sess)

	buf := captureLog(t)
	got := store.Get(req)

	assert.Empty(t, got.Name())
	assert.Contains(t, buf.String(), "ERROR [session.Get]")
}

func TestNewStore_RequiresSecret(t *testing.T) {
	_, err := session.NewStore(session.Options{})
	assert.Error(t, err)
}
