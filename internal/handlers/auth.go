package handlers

import (
	"net/http"
	"strings"

	"github.com/diewo77/go-missions/auth"
	"github.com/diewo77/go-missions/i18n"
	"github.com/diewo77/go-missions/internal/backend"
	"github.com/diewo77/go-missions/internal/flash"
	"github.com/diewo77/go-missions/view"
)

// LoginForm shows the login page.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	next := localPath(r.URL.Query().Get("next"), "/")
	if session(r) != nil {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	view.Must(w, r, http.StatusOK, "login.html", map[string]any{
		"Next":     next,
		"Username": "",
		"Error":    "",
	})
}

// Login exchanges the credentials with the backend and stores the session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	next := localPath(r.FormValue("next"), "/")

	fail := func(status int, msg string) {
		view.Must(w, r, status, "login.html", map[string]any{
			"Next":     next,
			"Username": username,
			"Error":    msg,
		})
	}
	if username == "" || password == "" {
		fail(http.StatusBadRequest, i18n.T(lang(r), "login.failed"))
		return
	}

	resp, err := h.backend.Login(r.Context(), username, password)
	if err != nil {
		if backend.IsTransport(err) {
			fail(http.StatusBadGateway, i18n.T(lang(r), "flash.network"))
			return
		}
		fail(http.StatusUnauthorized, i18n.T(lang(r), "login.failed"))
		return
	}

	_, err = h.sessions.Login(w, auth.Session{
		Token:    resp.Token,
		UserID:   resp.User.ID,
		Username: firstNonEmpty(resp.User.Username, username),
		Nom:      resp.User.Nom,
		Prenom:   resp.User.Prenom,
		Roles:    resp.User.Roles,
	})
	if err != nil {
		fail(http.StatusBadGateway, i18n.T(lang(r), "error.generic"))
		return
	}
	flash.Write(w, flash.Success("login.welcome"))
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// Logout clears the session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(w)
	flash.Write(w, flash.Info("logout.done"))
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
