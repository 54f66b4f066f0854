package session

import "github.com/google/uuid"

// Session is the per-browser state carried in the signed cookie.
// It is loaded per request and passed explicitly to the code that needs it.
type Session struct {
	name   string
	userID string
	dirty  bool
}

func (s *Session) Name() string {
	return s.name
}

func (s *Session) SetName(name string) {
	if s.name != name {
		s.name = name
		s.dirty = true
	}
}

func (s *Session) UnsetName() {
	s.SetName("")
}

func (s *Session) UserID() string {
	return s.userID
}

// EnsureUserID returns the stable anonymous user id, minting one on first use.
// A minted id only outlives the request once the session is committed.
func (s *Session) EnsureUserID() string {
	if s.userID == "" {
		s.userID = uuid.NewString()
		s.dirty = true
	}
	return s.userID
}

// Dirty reports whether the session changed since it was loaded.
func (s *Session) Dirty() bool {
	return s.dirty
}
