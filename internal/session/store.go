package session

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

const (
	DefaultCookieName = "__session"

	keyInfo = "meeting-session-cookie"
)

type Options struct {
	CookieName string
	Secret     string
	MaxAge     time.Duration
	Secure     bool
}

// Store reads and writes sessions as HS256-signed JWTs in an httpOnly, SameSite=Strict cookie.
type Store struct {
	cookieName string
	key        []byte
	maxAge     time.Duration
	secure     bool
}

type claims struct {
	Name   string `json:"name,omitempty"`
	UserID string `json:"user-id,omitempty"`
	jwt.RegisteredClaims
}

func NewStore(opts Options) (*Store, error) {
	if opts.Secret == "" {
		return nil, errors.New("session secret is required")
	}
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = 30 * 24 * time.Hour
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(opts.Secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("failed to derive session key: %w", err)
	}

	return &Store{
		cookieName: opts.CookieName,
		key:        key,
		maxAge:     opts.MaxAge,
		secure:     opts.Secure,
	}, nil
}

// Get loads the session from the request cookie. A missing, expired or
// tampered cookie yields an empty session.
func (s *Store) Get(r *http.Request) *Session {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil || cookie.Value == "" {
		return &Session{}
	}

	var c claims
	_, err = jwt.ParseWithClaims(cookie.Value, &c, func(token *jwt.Token) (interface{}, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		// Expiry is routine; only forged or malformed cookies are worth logging.
		if !errors.Is(err, jwt.ErrTokenExpired) {
			log.Printf("ERROR [session.Get] discarding invalid session cookie: %v", err)
		}
		return &Session{}
	}

	return &Session{name: c.Name, userID: c.UserID}
}

// Commit writes the session back as a Set-Cookie header.
func (s *Store) Commit(w http.ResponseWriter, sess *Session) error {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Name:   sess.name,
		UserID: sess.userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.maxAge)),
		},
	})

	value, err := token.SignedString(s.key)
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(s.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
	sess.dirty = false
	return nil
}
