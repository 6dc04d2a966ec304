package handlers

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/diewo77/go-missions/auth"
	"github.com/diewo77/go-missions/i18n"
	"github.com/diewo77/go-missions/internal/actions"
	"github.com/diewo77/go-missions/internal/filter"
	"github.com/diewo77/go-missions/internal/listview"
	"github.com/diewo77/go-missions/internal/mission"
	"github.com/diewo77/go-missions/internal/pages"
)

var cellTpl = template.Must(template.New("cell").Parse(`<div class="row-actions">
{{- if .DetailHref}}<a href="{{.DetailHref}}">{{.ViewLabel}}</a>{{end}}
{{- range .Controls}}
{{- if .Link}}
<a class="button secondary" href="{{.Href}}" data-control="{{.Name}}">{{.Label}}</a>
{{- else}}
<form method="post" action="{{.Href}}" class="inline" data-action="{{.Name}}">
<input type="hidden" name="page" value="{{$.Page}}"><input type="hidden" name="statut" value="{{$.Status}}"><input type="hidden" name="return" value="{{$.Return}}">
{{- if .Motif}}<input type="text" name="motif" placeholder="{{$.MotifLabel}}" aria-label="{{$.MotifLabel}}">{{end}}
<button type="submit" data-control="{{.Name}}"{{if $.Busy}} disabled aria-busy="true" title="{{$.BusyLabel}}"{{end}}>{{.Label}}</button>
</form>
{{- end}}
{{- end}}
</div>`))

type control struct {
	Name  actions.Name
	Label string
	Href  string
	Link  bool
	Motif bool
}

type cell struct {
	DetailHref string
	ViewLabel  string
	Controls   []control
	Page       string
	Status     string
	Return     string
	Busy       bool
	BusyLabel  string
	MotifLabel string
}

// controlFor maps an action to the control that triggers it. Navigation
// actions are links; the others post to the action route.
func controlFor(l string, f mission.Family, id uint, n actions.Name) control {
	c := control{Name: n, Label: i18n.T(l, n.LabelKey())}
	base := fmt.Sprintf("/%s/%d", f, id)
	switch n {
	case actions.DownloadPDF:
		c.Href, c.Link = base+"/pdf", true
	case actions.Edit:
		c.Href, c.Link = base+"/edit", true
	case actions.AddAttachments:
		c.Href, c.Link = base+"/pending", true
	default:
		c.Href = base + "/actions/" + string(n)
		c.Motif = n == actions.Reject
	}
	return c
}

// actionsCell renders one control per action the page declares and the
// policy allows for the record. Controls of a record with an action in
// flight are disabled.
func (h *Handler) actionsCell(ctx context.Context, l string, s *auth.Session, p pages.Page, state filter.State, withDetail bool) listview.ActionsFunc {
	ret := state.Query().Encode()
	return func(rec mission.Record) template.HTML {
		c := cell{
			ViewLabel:  i18n.T(l, "action.view"),
			Page:       p.Slug,
			Status:     string(rec.Statut),
			Return:     ret,
			Busy:       h.dispatcher.Tracker().Busy(p.Family, rec.ID),
			BusyLabel:  i18n.T(l, "action.pending"),
			MotifLabel: i18n.T(l, "field.motif"),
		}
		if withDetail {
			c.DetailHref = fmt.Sprintf("/%s/detail/%d", p.Family, rec.ID)
		}
		for _, n := range h.authz.Allowed(ctx, s, p.Family, p.Actions, rec) {
			c.Controls = append(c.Controls, controlFor(l, p.Family, rec.ID, n))
		}
		var buf bytes.Buffer
		if err := cellTpl.Execute(&buf, c); err != nil {
			return ""
		}
		return template.HTML(buf.String())
	}
}
