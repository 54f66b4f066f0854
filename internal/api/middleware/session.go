package middleware

import (
	"context"
	"net/http"

	"github.com/third774/dyte-remix/internal/session"
)

type contextKey string

const (
	SessionKey contextKey = "session"
)

// Session loads the caller's session cookie into the request context. It never
// rejects a request: an absent or invalid cookie yields an empty session.
func Session(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), SessionKey, store.Get(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession returns the session loaded by Session, or an empty one if the
// middleware did not run.
func GetSession(ctx context.Context) *session.Session {
	sess, ok := ctx.Value(SessionKey).(*session.Session)
	if !ok {
		return &session.Session{}
	}
	return sess
}
