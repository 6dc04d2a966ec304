// Package handlers serves the dashboard pages. Every piece of mission data is
// fetched from the backend on each request; nothing but staged attachments is
// kept locally.
package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/diewo77/go-missions/auth"
	"github.com/diewo77/go-missions/i18n"
	"github.com/diewo77/go-missions/internal/actions"
	"github.com/diewo77/go-missions/internal/backend"
	"github.com/diewo77/go-missions/internal/flash"
	"github.com/diewo77/go-missions/internal/mission"
	"github.com/diewo77/go-missions/internal/pages"
	"github.com/diewo77/go-missions/internal/policy"
	"github.com/diewo77/go-missions/internal/staging"
	"github.com/diewo77/go-missions/view"
)

// DefaultMaxUpload caps one attachment form post.
const DefaultMaxUpload = 10 << 20

// Backend is the part of the mission API the handlers use.
type Backend interface {
	Login(ctx context.Context, username, password string) (backend.LoginResponse, error)
	List(ctx context.Context, token string, f mission.Family, bucket string) ([]mission.Record, error)
	Get(ctx context.Context, token string, f mission.Family, id uint) (mission.Record, error)
	Create(ctx context.Context, token string, f mission.Family, in mission.Input) (mission.Record, error)
	Update(ctx context.Context, token string, f mission.Family, id uint, in mission.Input) (mission.Record, error)
	Confirm(ctx context.Context, token string, f mission.Family, id uint) error
	Reject(ctx context.Context, token string, f mission.Family, id uint, motif string) error
	Execute(ctx context.Context, token string, f mission.Family, id uint) error
	Complete(ctx context.Context, token string, f mission.Family, id uint) error
	PDF(ctx context.Context, token string, f mission.Family, id uint) (backend.PDF, error)
	UploadAttachments(ctx context.Context, token string, id uint, files []backend.Upload) error
	Users(ctx context.Context, token string) ([]mission.Person, error)
	Villes(ctx context.Context, token string) ([]mission.Ville, error)
	Ressources(ctx context.Context, token string) ([]mission.Ressource, error)
}

// Deps are the collaborators of the handlers.
type Deps struct {
	Backend    Backend
	Sessions   *auth.Manager
	Authz      *policy.Authorizer
	Dispatcher *actions.Dispatcher
	Staging    *staging.Store
	MaxUpload  int64
}

// Handler groups the dashboard routes.
type Handler struct {
	backend    Backend
	sessions   *auth.Manager
	authz      *policy.Authorizer
	dispatcher *actions.Dispatcher
	staging    *staging.Store
	maxUpload  int64
}

// New fills in defaults for missing optional collaborators.
func New(d Deps) *Handler {
	h := &Handler{
		backend:    d.Backend,
		sessions:   d.Sessions,
		authz:      d.Authz,
		dispatcher: d.Dispatcher,
		staging:    d.Staging,
		maxUpload:  d.MaxUpload,
	}
	if h.sessions == nil {
		h.sessions = auth.NewManager(auth.Options{})
	}
	if h.authz == nil {
		h.authz = policy.New(nil)
	}
	if h.dispatcher == nil {
		h.dispatcher = actions.NewDispatcher(nil, nil)
	}
	if h.maxUpload <= 0 {
		h.maxUpload = DefaultMaxUpload
	}
	return h
}

// Tracker exposes the action tracker, mostly for tests.
func (h *Handler) Tracker() *actions.Tracker { return h.dispatcher.Tracker() }

func session(r *http.Request) *auth.Session {
	s, _ := auth.FromContext(r.Context())
	return s
}

func lang(r *http.Request) string { return i18n.LangFrom(r.Context()) }

func familyParam(r *http.Request) (mission.Family, bool) {
	f, err := mission.ParseFamily(chi.URLParam(r, "family"))
	return f, err == nil
}

func idParam(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// recordParams reads {family} and {id}.
func recordParams(r *http.Request) (mission.Family, uint, bool) {
	f, ok := familyParam(r)
	if !ok {
		return "", 0, false
	}
	id, ok := idParam(r, "id")
	return f, id, ok
}

// NotFound renders the 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	view.Must(w, r, http.StatusNotFound, "notfound.html", nil)
}

func (h *Handler) denied(w http.ResponseWriter, r *http.Request) {
	view.Must(w, r, http.StatusForbidden, "denied.html", nil)
}

// expire drops a session the backend no longer accepts.
func (h *Handler) expire(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(w)
	flash.Write(w, flash.Info("session.expired"))
	http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
}

// backendFailed turns a failed fetch into a page.
func (h *Handler) backendFailed(w http.ResponseWriter, r *http.Request, err error, retry string) {
	switch e, _ := backend.AsError(err); {
	case e != nil && e.Unauthorized():
		h.expire(w, r)
	case e != nil && e.NotFound():
		h.NotFound(w, r)
	default:
		view.Must(w, r, http.StatusBadGateway, "error.html", map[string]any{
			"Message": failureText(lang(r), err),
			"Retry":   retry,
		})
	}
}

// failureText is the user-facing text of a backend error.
func failureText(l string, err error) string {
	if backend.IsTransport(err) {
		return i18n.T(l, "flash.network")
	}
	return backend.Message(err)
}

// failureNotice builds the toast of a failed action. Validation messages
// are reduced to their parsed issues.
func failureNotice(l string, err error) flash.Notice {
	if backend.IsTransport(err) {
		return flash.Error("flash.network", "")
	}
	return flash.Error("flash.action.failed", strings.Join(issueTexts(l, backend.ParseValidation(backend.Message(err))), " ; "))
}

// localPath keeps redirects on this site.
func localPath(p, fallback string) string {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return fallback
	}
	return p
}

// landing is where a family's list actions send the user when no page is known.
func landing(f mission.Family, s mission.Status) pages.Page {
	if p, ok := pages.ForStatus(f, s); ok {
		return p
	}
	return pages.ForFamily(f)[0]
}
