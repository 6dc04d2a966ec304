package handlers

import (
	"net/http"

	"github.com/diewo77/go-missions/internal/filter"
	"github.com/diewo77/go-missions/internal/listview"
	"github.com/diewo77/go-missions/internal/pages"
	"github.com/diewo77/go-missions/view"
)

// Detail shows one record with its associations and the actions of the
// page its status belongs to.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	f, id, ok := recordParams(r)
	if !ok {
		h.NotFound(w, r)
		return
	}
	s := session(r)
	if !h.authz.CanView(r.Context(), s, f) {
		h.denied(w, r)
		return
	}
	rec, err := h.backend.Get(r.Context(), s.Token, f, id)
	if err != nil {
		h.backendFailed(w, r, err, r.URL.RequestURI())
		return
	}

	l := lang(r)
	body, err := listview.DetailHTML(l, view.Currency(), f, rec)
	if err != nil {
		h.backendFailed(w, r, err, r.URL.RequestURI())
		return
	}
	data := map[string]any{
		"Record": rec,
		"Detail": body,
		"Back":   landing(f, rec.Statut).Path(),
	}
	if p, ok := pages.ForStatus(f, rec.Statut); ok && s.HasPermission(p.Roles) {
		data["Actions"] = h.actionsCell(r.Context(), l, s, p, filter.State{}, false)(rec)
	}
	view.Must(w, r, http.StatusOK, "detail.html", data)
}
