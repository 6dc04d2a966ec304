package handlers

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/diewo77/go-missions/i18n"
	"github.com/diewo77/go-missions/internal/backend"
	"github.com/diewo77/go-missions/internal/mission"
	"github.com/diewo77/go-missions/internal/pages"
	"github.com/diewo77/go-missions/view"
)

// dashboardFetches bounds the parallel bucket fetches of the dashboard.
const dashboardFetches = 4

type card struct {
	Title  string
	Href   string
	Count  int
	Failed bool
}

type cardGroup struct {
	Label string
	Cards []card
}

// Dashboard shows the record count of every page the user may open.
// A bucket that fails to load shows as unavailable; the rest still render.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	s := session(r)
	l := lang(r)

	var (
		groups  []cardGroup
		refs    []*card
		visible []pages.Page
	)
	for _, f := range mission.Families() {
		g := cardGroup{Label: i18n.T(l, familyLabels[f])}
		for _, p := range pages.ForFamily(f) {
			if !s.HasPermission(p.Roles) {
				continue
			}
			g.Cards = append(g.Cards, card{Title: i18n.T(l, p.TitleKey()), Href: p.Path()})
			visible = append(visible, p)
		}
		if len(g.Cards) > 0 {
			groups = append(groups, g)
		}
	}
	for gi := range groups {
		for ci := range groups[gi].Cards {
			refs = append(refs, &groups[gi].Cards[ci])
		}
	}

	var eg errgroup.Group
	eg.SetLimit(dashboardFetches)
	expired := make([]bool, len(visible))
	for i, p := range visible {
		i, p := i, p
		eg.Go(func() error {
			records, err := h.backend.List(r.Context(), s.Token, p.Family, p.Bucket)
			if err != nil {
				refs[i].Failed = true
				expired[i] = backend.IsUnauthorized(err)
				return nil
			}
			refs[i].Count = len(records)
			return nil
		})
	}
	_ = eg.Wait()

	for _, e := range expired {
		if e {
			h.expire(w, r)
			return
		}
	}
	view.Must(w, r, http.StatusOK, "dashboard.html", map[string]any{"Groups": groups})
}
