package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims is what the dashboard reads from the backend token. The
// signature is not checked here; the backend verifies it on every call.
type tokenClaims struct {
	jwt.RegisteredClaims
	Roles       []string `json:"roles"`
	Authorities []string `json:"authorities"`
}

// TokenInfo is the unverified content of a backend token.
type TokenInfo struct {
	Subject string
	Expires time.Time
	Roles   []string
}

// InspectToken reads the claims of a JWT without verifying it. Opaque
// tokens are not an error: ok is false and the caller keeps its defaults.
func InspectToken(token string) (TokenInfo, bool) {
	var c tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return TokenInfo{}, false
	}
	info := TokenInfo{Subject: c.Subject, Roles: c.Roles}
	if len(info.Roles) == 0 {
		info.Roles = c.Authorities
	}
	if c.ExpiresAt != nil {
		info.Expires = c.ExpiresAt.Time
	}
	return info, true
}
