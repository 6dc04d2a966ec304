package auth

import (
	"strings"
	"time"
)

// Session is the logged-in user as the dashboard knows it: the backend
// bearer token plus the identity returned at login. It is built once at
// login and never modified afterwards.
type Session struct {
	Token    string    `json:"t"`
	UserID   uint      `json:"uid"`
	Username string    `json:"u,omitempty"`
	Nom      string    `json:"n,omitempty"`
	Prenom   string    `json:"p,omitempty"`
	Roles    []string  `json:"r,omitempty"`
	Expires  time.Time `json:"exp"`
}

// DisplayName returns "Prénom Nom", falling back to the username.
func (s *Session) DisplayName() string {
	if s == nil {
		return ""
	}
	if n := strings.TrimSpace(s.Prenom + " " + s.Nom); n != "" {
		return n
	}
	return s.Username
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return s == nil || (!s.Expires.IsZero() && !now.Before(s.Expires))
}

// HasRole reports whether the user holds role (case-insensitive, an
// optional "ROLE_" prefix is ignored).
func (s *Session) HasRole(role string) bool {
	if s == nil {
		return false
	}
	want := normalizeRole(role)
	for _, r := range s.Roles {
		if normalizeRole(r) == want {
			return true
		}
	}
	return false
}

// HasPermission reports whether the user may see something restricted to
// allowed. An empty list admits every authenticated user.
func (s *Session) HasPermission(allowed []string) bool {
	if s == nil {
		return false
	}
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if s.HasRole(a) {
			return true
		}
	}
	return false
}

func normalizeRole(r string) string {
	r = strings.ToUpper(strings.TrimSpace(r))
	return strings.TrimPrefix(r, "ROLE_")
}
