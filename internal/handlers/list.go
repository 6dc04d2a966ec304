package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/diewo77/go-missions/i18n"
	"github.com/diewo77/go-missions/internal/backend"
	"github.com/diewo77/go-missions/internal/filter"
	"github.com/diewo77/go-missions/internal/listview"
	"github.com/diewo77/go-missions/internal/mission"
	"github.com/diewo77/go-missions/internal/pages"
	"github.com/diewo77/go-missions/view"
)

type statusOption struct {
	Value    string
	Label    string
	Selected bool
}

type filtersView struct {
	State    filter.State
	Statuses []statusOption
	Creator  bool
	Reset    string
}

func newFiltersView(l string, p pages.Page, state filter.State) filtersView {
	fv := filtersView{State: state, Creator: p.Filter.SearchCreator, Reset: p.Path()}
	if p.StatusFilter {
		for _, st := range p.Family.Statuses() {
			fv.Statuses = append(fv.Statuses, statusOption{
				Value:    string(st),
				Label:    listview.BadgeFor(l, p.Family, st).Label,
				Selected: mission.Normalize(state.Statut) == st,
			})
		}
	}
	return fv
}

// List shows one status bucket. The page's roles are checked before any
// fetch; a failed fetch renders an error panel, never an empty list.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	f, ok := familyParam(r)
	if !ok {
		h.NotFound(w, r)
		return
	}
	p, err := pages.Lookup(f, chi.URLParam(r, "page"))
	if err != nil {
		h.NotFound(w, r)
		return
	}
	s := session(r)
	if !s.HasPermission(p.Roles) {
		h.denied(w, r)
		return
	}

	l := lang(r)
	state := filter.Parse(r.URL.Query())
	data := map[string]any{
		"Title":   i18n.T(l, p.TitleKey()),
		"Filters": newFiltersView(l, p, state),
	}
	if h.authz.CanCreate(r.Context(), s, f) {
		data["CreateHref"] = "/" + string(f) + "/new"
		data["CreateLabel"] = i18n.T(l, createLabels[f])
	}

	records, err := h.backend.List(r.Context(), s.Token, f, p.Bucket)
	if err != nil {
		if backend.IsUnauthorized(err) {
			h.expire(w, r)
			return
		}
		data["LoadError"] = failureText(l, err)
		data["Retry"] = r.URL.RequestURI()
		view.Must(w, r, http.StatusBadGateway, "list.html", data)
		return
	}
	h.dispatcher.Tracker().Refetched(f)

	shown := filter.Apply(records, filter.Compose(state, p.Filter))
	empty := "list.empty"
	if !state.IsZero() {
		empty = "list.empty_filtered"
	}
	table, err := listview.HTML(listview.Table{
		Family:       f,
		Records:      shown,
		Actions:      h.actionsCell(r.Context(), l, s, p, state, true),
		Lang:         l,
		Currency:     view.Currency(),
		EmptyMessage: i18n.T(l, empty),
	})
	if err != nil {
		h.backendFailed(w, r, err, r.URL.RequestURI())
		return
	}
	data["Table"] = table
	data["Count"] = len(shown)
	view.Must(w, r, http.StatusOK, "list.html", data)
}
