// Package flash carries one-shot notices across a redirect. The next page
// renders them as an auto-dismissing toast.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/diewo77/go-missions/i18n"
)

// CookieName is the cookie holding the pending notice.
const CookieName = "flash"

// maxText keeps the cookie well under browser limits.
const maxText = 300

// Kind selects the toast style.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Notice is a translation key, optionally followed by text coming from the
// backend (an error message, for instance).
type Notice struct {
	Kind Kind   `json:"k"`
	Key  string `json:"m"`
	Text string `json:"x,omitempty"`
}

// Success builds a success notice.
func Success(key string) Notice { return Notice{Kind: KindSuccess, Key: key} }

// Info builds an info notice.
func Info(key string) Notice { return Notice{Kind: KindInfo, Key: key} }

// Error builds an error notice with optional backend text.
func Error(key, text string) Notice { return Notice{Kind: KindError, Key: key, Text: text} }

// Message renders the notice in lang.
func (n Notice) Message(lang string) string {
	msg := i18n.T(lang, n.Key)
	if n.Text != "" && n.Text != msg {
		return msg + " : " + n.Text
	}
	return msg
}

// Write stores a notice for the next page render.
func Write(w http.ResponseWriter, n Notice) {
	n, ok := normalize(n)
	if !ok {
		return
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadAndClear returns the pending notice and expires the cookie.
func ReadAndClear(w http.ResponseWriter, r *http.Request) (Notice, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return Notice{}, false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(c.Value))
	if err != nil {
		return Notice{}, false
	}
	var n Notice
	if err := json.Unmarshal(raw, &n); err != nil {
		return Notice{}, false
	}
	return normalize(n)
}

func normalize(n Notice) (Notice, bool) {
	n.Key = strings.TrimSpace(n.Key)
	if n.Key == "" {
		return Notice{}, false
	}
	n.Text = strings.TrimSpace(n.Text)
	if utf8.RuneCountInString(n.Text) > maxText {
		n.Text = string([]rune(n.Text)[:maxText]) + "…"
	}
	n.Kind = Kind(strings.ToLower(strings.TrimSpace(string(n.Kind))))
	switch n.Kind {
	case KindSuccess, KindInfo, KindWarning, KindError:
		return n, true
	default:
		return Notice{}, false
	}
}
