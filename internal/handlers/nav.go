package handlers

import (
	"net/http"

	"github.com/diewo77/go-missions/i18n"
	"github.com/diewo77/go-missions/internal/mission"
	"github.com/diewo77/go-missions/internal/pages"
	"github.com/diewo77/go-missions/view"
)

var familyLabels = map[mission.Family]string{
	mission.FamilyMandat: "nav.mandats",
	mission.FamilyOrdre:  "nav.ordres",
}

var createLabels = map[mission.Family]string{
	mission.FamilyMandat: "nav.new_mandat",
	mission.FamilyOrdre:  "nav.new_ordre",
}

// Nav builds the side menu of the current user. Pages whose roles do not
// match are left out.
func (h *Handler) Nav(r *http.Request) []view.NavGroup {
	s := session(r)
	if s == nil {
		return nil
	}
	l := lang(r)
	groups := []view.NavGroup{{
		Links: []view.NavLink{{Label: i18n.T(l, "nav.dashboard"), Href: "/", Active: r.URL.Path == "/"}},
	}}
	for _, f := range mission.Families() {
		g := view.NavGroup{Label: i18n.T(l, familyLabels[f])}
		for _, p := range pages.ForFamily(f) {
			if !s.HasPermission(p.Roles) {
				continue
			}
			g.Links = append(g.Links, view.NavLink{
				Label:  i18n.T(l, p.TitleKey()),
				Href:   p.Path(),
				Active: r.URL.Path == p.Path(),
			})
		}
		if h.authz.CanCreate(r.Context(), s, f) {
			href := "/" + string(f) + "/new"
			g.Links = append(g.Links, view.NavLink{Label: i18n.T(l, createLabels[f]), Href: href, Active: r.URL.Path == href})
		}
		if len(g.Links) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}
