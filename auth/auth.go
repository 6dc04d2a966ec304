// Package auth keeps the dashboard session in an HMAC-signed cookie and
// exposes it to handlers through the request context.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/diewo77/go-missions/httpx"
)

const (
	DefaultCookieName = "session"
	DefaultTTL        = 12 * time.Hour
	devSecret         = "devsessionsecret"
)

// ErrNoSession is returned when the request carries no valid session.
var ErrNoSession = errors.New("no valid session")

type ctxKey string

const sessionCtxKey = ctxKey("session")

// Options configure a Manager.
type Options struct {
	Secret     string
	CookieName string
	Secure     bool
	TTL        time.Duration
	Now        func() time.Time
}

// Manager signs, reads and clears session cookies. Login and Logout are the
// only ways a session changes.
type Manager struct {
	secret []byte
	name   string
	secure bool
	ttl    time.Duration
	now    func() time.Time
}

// NewManager applies defaults to opts.
func NewManager(opts Options) *Manager {
	m := &Manager{
		secret: []byte(opts.Secret),
		name:   opts.CookieName,
		secure: opts.Secure,
		ttl:    opts.TTL,
		now:    opts.Now,
	}
	if len(m.secret) == 0 {
		m.secret = []byte(devSecret)
	}
	if m.name == "" {
		m.name = DefaultCookieName
	}
	if m.ttl <= 0 {
		m.ttl = DefaultTTL
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string { return m.name }

// Login writes the session cookie. Expiry comes from the token's exp claim
// when present and earlier than the configured TTL.
func (m *Manager) Login(w http.ResponseWriter, s Session) (*Session, error) {
	if strings.TrimSpace(s.Token) == "" {
		return nil, errors.New("session without token")
	}
	limit := m.now().Add(m.ttl)
	if info, ok := InspectToken(s.Token); ok {
		if !info.Expires.IsZero() && info.Expires.Before(limit) {
			limit = info.Expires
		}
		if len(s.Roles) == 0 {
			s.Roles = info.Roles
		}
	}
	if s.Expires.IsZero() || s.Expires.After(limit) {
		s.Expires = limit
	}
	value, err := m.encode(s)
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  s.Expires,
	})
	return &s, nil
}

// Logout deletes the session cookie.
func (m *Manager) Logout(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Parse validates the session cookie of r.
func (m *Manager) Parse(r *http.Request) (*Session, error) {
	c, err := r.Cookie(m.name)
	if err != nil || c.Value == "" {
		return nil, ErrNoSession
	}
	s, err := m.decode(c.Value)
	if err != nil {
		return nil, err
	}
	if s.Expired(m.now()) {
		return nil, ErrNoSession
	}
	return s, nil
}

func (m *Manager) sign(payload string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (m *Manager) encode(s Session) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	payload := base64.RawURLEncoding.EncodeToString(b)
	return payload + "." + m.sign(payload), nil
}

func (m *Manager) decode(value string) (*Session, error) {
	payload, sig, ok := strings.Cut(value, ".")
	if !ok || payload == "" || sig == "" {
		return nil, ErrNoSession
	}
	if !hmac.Equal([]byte(sig), []byte(m.sign(payload))) {
		return nil, ErrNoSession
	}
	b, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrNoSession
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil || s.Token == "" {
		return nil, ErrNoSession
	}
	return &s, nil
}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, s)
}

// FromContext returns the session attached by Middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionCtxKey).(*Session)
	return s, ok && s != nil
}

// UserIDFromContext extracts the backend user id.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	s, ok := FromContext(ctx)
	if !ok {
		return 0, false
	}
	return s.UserID, true
}

// Middleware attaches the session to the request context if present.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s, err := m.Parse(r); err == nil {
			r = r.WithContext(WithSession(r.Context(), s))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth redirects to /login if not authenticated (HTML) or returns 401 JSON.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			Unauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Unauthorized answers a request that needs a session it does not have.
func Unauthorized(w http.ResponseWriter, r *http.Request) {
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
