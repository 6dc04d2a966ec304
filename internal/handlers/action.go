package handlers

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/diewo77/go-missions/internal/actions"
	"github.com/diewo77/go-missions/internal/backend"
	"github.com/diewo77/go-missions/internal/filter"
	"github.com/diewo77/go-missions/internal/flash"
	"github.com/diewo77/go-missions/internal/mission"
	"github.com/diewo77/go-missions/internal/pages"
)

// returnTo is the list page an action posted from, with its filters.
func returnTo(f mission.Family, r *http.Request, status mission.Status) (pages.Page, string) {
	p, err := pages.Lookup(f, r.FormValue("page"))
	if err != nil {
		p = landing(f, status)
	}
	target := p.Path()
	if raw := r.FormValue("return"); raw != "" {
		if v, err := url.ParseQuery(raw); err == nil {
			if q := filter.Parse(v).Query().Encode(); q != "" {
				target += "?" + q
			}
		}
	}
	return p, target
}

// transition performs the backend call of a workflow action.
func (h *Handler) transition(token string, f mission.Family, id uint, n actions.Name, motif string) func(context.Context) error {
	return func(ctx context.Context) error {
		switch n {
		case actions.Confirm:
			return h.backend.Confirm(ctx, token, f, id)
		case actions.Reject:
			return h.backend.Reject(ctx, token, f, id, motif)
		case actions.Execute:
			return h.backend.Execute(ctx, token, f, id)
		case actions.Complete:
			return h.backend.Complete(ctx, token, f, id)
		}
		return errors.New("no backend call for action " + string(n))
	}
}

// Act runs one workflow action (confirm, reject, execute, complete) and
// redirects back to the list, whose reload is the refetch of the new state.
func (h *Handler) Act(w http.ResponseWriter, r *http.Request) {
	f, id, ok := recordParams(r)
	if !ok {
		h.NotFound(w, r)
		return
	}
	n, err := actions.Parse(chi.URLParam(r, "action"))
	if err != nil {
		h.NotFound(w, r)
		return
	}
	switch n {
	case actions.Confirm, actions.Reject, actions.Execute, actions.Complete:
	default:
		h.NotFound(w, r)
		return
	}

	s := session(r)
	l := lang(r)
	status := mission.Normalize(r.FormValue("statut"))
	p, back := returnTo(f, r, status)
	rec := mission.Record{ID: id, Statut: status}
	if !p.Actions.Has(n) || !s.HasPermission(p.Roles) || !h.authz.CanAct(r.Context(), s, f, n, rec) {
		flash.Write(w, flash.Error("action.denied", ""))
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	out := h.dispatcher.Run(r.Context(), actions.Request{
		Key:  actions.Key{Family: f, ID: id, Action: n},
		Call: h.transition(s.Token, f, id, n, r.FormValue("motif")),
		OnComplete: func() {
			flash.Write(w, flash.Success("flash."+string(n)+".ok"))
		},
		OnError: func(err error) {
			flash.Write(w, failureNotice(l, err))
		},
	})
	switch {
	case out.Detached:
		return
	case out.Refused && errors.Is(out.Err, actions.ErrCompleted):
		flash.Write(w, flash.Info("action.done"))
	case out.Refused:
		flash.Write(w, flash.Info("action.pending"))
	case backend.IsUnauthorized(out.Err):
		h.expire(w, r)
		return
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// PDF streams the backend document as a download.
func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	f, id, ok := recordParams(r)
	if !ok {
		h.NotFound(w, r)
		return
	}
	s := session(r)
	if !h.authz.CanUse(r.Context(), s, f, actions.DownloadPDF) {
		h.denied(w, r)
		return
	}
	doc, err := h.backend.PDF(r.Context(), s.Token, f, id)
	if err != nil {
		if backend.IsUnauthorized(err) {
			h.expire(w, r)
			return
		}
		flash.Write(w, failureNotice(lang(r), err))
		http.Redirect(w, r, "/"+string(f)+"/detail/"+strconv.FormatUint(uint64(id), 10), http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Data)
}
