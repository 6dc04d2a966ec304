package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/diewo77/go-missions/i18n"
	"github.com/diewo77/go-missions/internal/actions"
	"github.com/diewo77/go-missions/internal/backend"
	"github.com/diewo77/go-missions/internal/flash"
	"github.com/diewo77/go-missions/internal/listview"
	"github.com/diewo77/go-missions/internal/mission"
	"github.com/diewo77/go-missions/validation"
	"github.com/diewo77/go-missions/view"
)

// ObjectifMaxLen bounds the objectif field.
const ObjectifMaxLen = 500

// mandatSourceBucket lists the mandats an ordre can be issued under.
const mandatSourceBucket = "en-cours"

// mineAfterSave is where a saved record sends the user.
var mineAfterSave = map[mission.Family]string{
	mission.FamilyMandat: "/mandat/mes-mandats",
	mission.FamilyOrdre:  "/ordre/mes-ordres",
}

type formData struct {
	Family     mission.Family
	Users      []mission.Person
	Villes     []mission.Ville
	Ressources []mission.Ressource
	Mandats    []mission.Record
	LoadError  string
}

// choices loads the select options of the form.
func (h *Handler) choices(ctx context.Context, l, token string, f mission.Family) formData {
	fd := formData{Family: f}
	var eg errgroup.Group
	if f == mission.FamilyMandat {
		eg.Go(func() (err error) { fd.Users, err = h.backend.Users(ctx, token); return })
		eg.Go(func() (err error) { fd.Villes, err = h.backend.Villes(ctx, token); return })
		eg.Go(func() (err error) { fd.Ressources, err = h.backend.Ressources(ctx, token); return })
	} else {
		eg.Go(func() (err error) { fd.Mandats, err = h.backend.List(ctx, token, mission.FamilyMandat, mandatSourceBucket); return })
	}
	if err := eg.Wait(); err != nil {
		fd.LoadError = failureText(l, err)
	}
	return fd
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, title, action string, fd formData, in mission.Input, v validation.Violations, issues []backend.Issue) {
	if v == nil {
		v = validation.Violations{}
	}
	cancel := mineAfterSave[fd.Family]
	view.Must(w, r, status, "form.html", map[string]any{
		"Title":       title,
		"Action":      action,
		"Cancel":      cancel,
		"Family":      string(fd.Family),
		"Input":       in,
		"Errors":      v,
		"Issues":      issueViews(lang(r), issues),
		"LoadError":   fd.LoadError,
		"Users":       fd.Users,
		"Villes":      fd.Villes,
		"Ressources":  fd.Ressources,
		"Mandats":     fd.Mandats,
		"ObjectifMax": ObjectifMaxLen,
	})
}

// parseInput reads and validates the form fields.
func parseInput(r *http.Request, f mission.Family) (mission.Input, validation.Violations) {
	_ = r.ParseForm()
	in := mission.Input{
		Objectif:          strings.TrimSpace(r.PostFormValue("objectif")),
		MissionDeControle: r.PostFormValue("missionDeControle") != "",
		DateDebut:         inputDate(r.PostFormValue("dateDebut")),
		DateFin:           inputDate(r.PostFormValue("dateFin")),
	}
	v := validation.Violations{}
	validation.Required("objectif", in.Objectif, v)
	validation.MaxLen("objectif", in.Objectif, ObjectifMaxLen, v)
	validation.Required("dateDebut", in.DateDebut, v)
	validation.Date("dateDebut", in.DateDebut, v)
	validation.Required("dateFin", in.DateFin, v)
	validation.Date("dateFin", in.DateFin, v)
	validation.DateRange("dateDebut", in.DateDebut, "dateFin", in.DateFin, v)

	if f == mission.FamilyMandat {
		in.UserIDs = ids(r.PostForm["users"])
		in.VilleIDs = ids(r.PostForm["villes"])
		in.RessourceIDs = ids(r.PostForm["ressources"])
		validation.NonEmptyIDs("users", in.UserIDs, v)
		validation.NonEmptyIDs("villes", in.VilleIDs, v)
	} else {
		in.MandatID = firstID(ids(r.PostForm["mandatId"]))
		validation.NonEmptyIDs("mandatId", ids(r.PostForm["mandatId"]), v)
	}
	return in, v
}

// inputDate normalises a date to the yyyy-mm-dd form of date inputs; an
// unparseable value is kept so the user sees what they typed.
func inputDate(raw string) string {
	if t, ok := mission.ParseDate(raw); ok {
		return t.Format("2006-01-02")
	}
	return strings.TrimSpace(raw)
}

func ids(values []string) []uint {
	var out []uint
	for _, raw := range values {
		if n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64); err == nil && n > 0 {
			out = append(out, uint(n))
		}
	}
	return out
}

func firstID(v []uint) uint {
	if len(v) == 0 {
		return 0
	}
	return v[0]
}

// saveIssues converts a failed save into the error list of the form.
func saveIssues(err error) []backend.Issue {
	if backend.IsTransport(err) {
		return []backend.Issue{{Kind: backend.IssueGeneral, Message: backend.GenericMessage}}
	}
	return backend.ParseValidation(backend.Message(err))
}

// NewForm shows the creation form.
func (h *Handler) NewForm(w http.ResponseWriter, r *http.Request) {
	f, ok := familyParam(r)
	if !ok {
		h.NotFound(w, r)
		return
	}
	s := session(r)
	if !h.authz.CanCreate(r.Context(), s, f) {
		h.denied(w, r)
		return
	}
	l := lang(r)
	fd := h.choices(r.Context(), l, s.Token, f)
	h.renderForm(w, r, http.StatusOK, i18n.T(l, createLabels[f]), "/"+string(f)+"/new", fd, mission.Input{}, nil, nil)
}

// Create validates the form, posts it and shows the backend's validation
// issues when it refuses the record.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	f, ok := familyParam(r)
	if !ok {
		h.NotFound(w, r)
		return
	}
	s := session(r)
	if !h.authz.CanCreate(r.Context(), s, f) {
		h.denied(w, r)
		return
	}
	l := lang(r)
	title := i18n.T(l, createLabels[f])
	action := "/" + string(f) + "/new"

	in, v := parseInput(r, f)
	if !v.Empty() {
		h.renderForm(w, r, http.StatusUnprocessableEntity, title, action, h.choices(r.Context(), l, s.Token, f), in, v, nil)
		return
	}
	if _, err := h.backend.Create(r.Context(), s.Token, f, in); err != nil {
		if backend.IsUnauthorized(err) {
			h.expire(w, r)
			return
		}
		h.renderForm(w, r, http.StatusUnprocessableEntity, title, action, h.choices(r.Context(), l, s.Token, f), in, nil, saveIssues(err))
		return
	}
	flash.Write(w, flash.Success("flash.create.ok"))
	http.Redirect(w, r, mineAfterSave[f], http.StatusSeeOther)
}

// editable loads a mandat and checks that the session may still edit it.
func (h *Handler) editable(w http.ResponseWriter, r *http.Request) (mission.Record, bool) {
	f, id, ok := recordParams(r)
	if !ok || f != mission.FamilyMandat {
		h.NotFound(w, r)
		return mission.Record{}, false
	}
	s := session(r)
	if !h.authz.CanUse(r.Context(), s, f, actions.Edit) {
		h.denied(w, r)
		return mission.Record{}, false
	}
	rec, err := h.backend.Get(r.Context(), s.Token, f, id)
	if err != nil {
		h.backendFailed(w, r, err, r.URL.RequestURI())
		return mission.Record{}, false
	}
	if !h.authz.CanAct(r.Context(), s, f, actions.Edit, rec) {
		h.denied(w, r)
		return mission.Record{}, false
	}
	return rec, true
}

func editTitle(l string, rec mission.Record) string {
	return i18n.T(l, actions.Edit.LabelKey()) + " " + listview.Truncate(rec.Reference, 40)
}

func inputFrom(rec mission.Record) mission.Input {
	in := mission.Input{
		Objectif:          rec.Objectif,
		MissionDeControle: rec.IsControle(),
		DateDebut:         inputDate(rec.DateDebut),
		DateFin:           inputDate(rec.DateFin),
	}
	for _, u := range rec.Users {
		in.UserIDs = append(in.UserIDs, u.ID)
	}
	for _, v := range rec.Villes {
		in.VilleIDs = append(in.VilleIDs, v.ID)
	}
	for _, res := range rec.Ressources {
		in.RessourceIDs = append(in.RessourceIDs, res.ID)
	}
	return in
}

// EditForm shows a mandat still awaiting confirmation, prefilled.
func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.editable(w, r)
	if !ok {
		return
	}
	l := lang(r)
	fd := h.choices(r.Context(), l, session(r).Token, mission.FamilyMandat)
	h.renderForm(w, r, http.StatusOK, editTitle(l, rec), fmt.Sprintf("/mandat/%d/edit", rec.ID), fd, inputFrom(rec), nil, nil)
}

// Update saves an edited mandat through the action tracker, so a double
// submit makes a single backend call.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.editable(w, r)
	if !ok {
		return
	}
	s := session(r)
	l := lang(r)
	title := editTitle(l, rec)
	action := fmt.Sprintf("/mandat/%d/edit", rec.ID)

	in, v := parseInput(r, mission.FamilyMandat)
	if !v.Empty() {
		h.renderForm(w, r, http.StatusUnprocessableEntity, title, action, h.choices(r.Context(), l, s.Token, mission.FamilyMandat), in, v, nil)
		return
	}
	out := h.dispatcher.Run(r.Context(), actions.Request{
		Key: actions.Key{Family: mission.FamilyMandat, ID: rec.ID, Action: actions.Edit},
		Call: func(ctx context.Context) error {
			_, err := h.backend.Update(ctx, s.Token, mission.FamilyMandat, rec.ID, in)
			return err
		},
	})
	switch {
	case out.Detached:
		return
	case out.Refused:
		key := "action.pending"
		if errors.Is(out.Err, actions.ErrCompleted) {
			key = "action.done"
		}
		flash.Write(w, flash.Info(key))
		http.Redirect(w, r, mineAfterSave[mission.FamilyMandat], http.StatusSeeOther)
	case backend.IsUnauthorized(out.Err):
		h.expire(w, r)
	case out.Err != nil:
		h.renderForm(w, r, http.StatusUnprocessableEntity, title, action, h.choices(r.Context(), l, s.Token, mission.FamilyMandat), in, nil, saveIssues(out.Err))
	default:
		flash.Write(w, flash.Success("flash.edit.ok"))
		http.Redirect(w, r, mineAfterSave[mission.FamilyMandat], http.StatusSeeOther)
	}
}
