package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/diewo77/go-missions/i18n"
)

type ctxKey string

const ctxTheme ctxKey = "pref_theme"

const prefMaxAge = 86400 * 30

var themes = map[string]bool{"system": true, "light": true, "dark": true}

// Prefs extracts language/theme preferences (query > cookie > header) and stores them in context.
// Query-provided prefs are persisted in cookies for ~30 days.
func Prefs(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := ""
		if c, err := r.Cookie("lang"); err == nil {
			lang = supportedLang(c.Value)
		}
		if ql := supportedLang(r.URL.Query().Get("lang")); ql != "" {
			lang = ql
			http.SetCookie(w, &http.Cookie{Name: "lang", Value: lang, Path: "/", MaxAge: prefMaxAge})
		}
		if lang == "" {
			lang = i18n.DetectLanguage(r.Header.Get("Accept-Language"))
		}

		theme := "system"
		if c, err := r.Cookie("theme"); err == nil && themes[c.Value] {
			theme = c.Value
		}
		if qt := r.URL.Query().Get("theme"); themes[qt] {
			theme = qt
			http.SetCookie(w, &http.Cookie{Name: "theme", Value: theme, Path: "/", MaxAge: prefMaxAge})
		}

		ctx := i18n.WithLang(r.Context(), lang)
		ctx = context.WithValue(ctx, ctxTheme, theme)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func supportedLang(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, s := range i18n.Supported() {
		if s == v {
			return s
		}
	}
	return ""
}

// LangFrom returns language preference from the request or the default.
func LangFrom(r *http.Request) string { return i18n.LangFrom(r.Context()) }

// ThemeFrom returns theme preference from context or fallback.
func ThemeFrom(r *http.Request) string {
	if v, ok := r.Context().Value(ctxTheme).(string); ok && v != "" {
		return v
	}
	return "system"
}
