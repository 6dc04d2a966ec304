package handlers

import (
	"github.com/go-chi/chi/v5"

	"github.com/diewo77/go-missions/auth"
)

// Mount registers the dashboard routes. Sessions must already be attached
// to the request context (see auth.Manager.Middleware).
func (h *Handler) Mount(r chi.Router) {
	r.Get("/login", h.LoginForm)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)

		r.Get("/", h.Dashboard)

		r.Route("/{family}", func(r chi.Router) {
			r.Get("/new", h.NewForm)
			r.Post("/new", h.Create)
			r.Get("/detail/{id}", h.Detail)
			r.Get("/{page}", h.List)

			r.Get("/{id}/pdf", h.PDF)
			r.Post("/{id}/actions/{action}", h.Act)

			r.Get("/{id}/edit", h.EditForm)
			r.Post("/{id}/edit", h.Update)

			r.Get("/{id}/pending", h.Pending)
			r.Post("/{id}/pending", h.AddPending)
			r.Post("/{id}/pending/submit", h.SubmitPending)
			r.Post("/{id}/pending/{fileID}/delete", h.RemovePending)
		})
	})

	r.NotFound(h.NotFound)
}
