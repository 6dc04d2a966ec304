// Package listview renders a filtered collection of mission records as a
// table. The actions cell belongs to the caller: pages inject an ActionsFunc
// and the renderer never looks at which page it is drawing.
package listview

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"unicode/utf8"

	"github.com/diewo77/go-missions/i18n"
	"github.com/diewo77/go-missions/internal/badge"
	"github.com/diewo77/go-missions/internal/mission"
)

//go:embed templates/*.html
var files embed.FS

var tpl = template.Must(template.New("listview").ParseFS(files, "templates/*.html"))

// ObjectifMax is the number of runes of the objective shown in a row.
const ObjectifMax = 60

// ActionsFunc renders the actions cell of one record.
type ActionsFunc func(mission.Record) template.HTML

// Table is everything the renderer needs. Records are drawn in the order given.
type Table struct {
	Title        string
	Family       mission.Family
	Records      []mission.Record
	Actions      ActionsFunc // nil means a read-only detail panel per row
	Lang         string
	Currency     string
	EmptyMessage string
}

// Badge is the view model of a status badge.
type Badge struct {
	Label string
	Class string
	Icon  badge.Icon
	Known bool
}

type row struct {
	ID        uint
	Reference string
	Objectif  string
	Full      string
	Badge     Badge
	Dates     string
	Duration  string
	Amount    string
	Custom    bool
	Actions   template.HTML
	Detail    detail
}

type tableView struct {
	Title      string
	Family     mission.Family
	Empty      string
	ShowAmount bool
	Rows       []row
	L          labels
}

// Render writes the table, or the empty state when there are no records.
func Render(w io.Writer, t Table) error {
	return tpl.ExecuteTemplate(w, "table", build(t))
}

// HTML is Render into a template.HTML value.
func HTML(t Table) (template.HTML, error) {
	var buf bytes.Buffer
	if err := Render(&buf, t); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// BadgeFor resolves the badge of a status, translated into lang.
func BadgeFor(lang string, family mission.Family, status mission.Status) Badge {
	d := badge.For(family, status)
	label := d.Label
	if d.Known() && d.Key != "" {
		label = i18n.T(lang, d.Key)
	}
	return Badge{Label: label, Class: d.ColorClass, Icon: d.Icon, Known: d.Known()}
}

// BadgeHTML renders a single status badge.
func BadgeHTML(lang string, family mission.Family, status mission.Status) template.HTML {
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "badge", BadgeFor(lang, family, status)); err != nil {
		return template.HTML(template.HTMLEscapeString(string(status)))
	}
	return template.HTML(buf.String())
}

// DetailHTML renders the read-only summary of one record.
func DetailHTML(lang, currency string, family mission.Family, r mission.Record) (template.HTML, error) {
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "detail", newDetail(lang, currency, family, r)); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func build(t Table) tableView {
	lang := i18n.Normalize(t.Lang)
	v := tableView{
		Title:  t.Title,
		Family: t.Family,
		Empty:  t.EmptyMessage,
		Rows:   make([]row, 0, len(t.Records)),
		L:      newLabels(lang),
	}
	if v.Empty == "" {
		v.Empty = i18n.T(lang, "list.empty")
	}
	for _, r := range t.Records {
		if r.Montant != nil {
			v.ShowAmount = true
		}
		rw := row{
			ID:        r.ID,
			Reference: r.Reference,
			Objectif:  Truncate(r.Objectif, ObjectifMax),
			Full:      r.Objectif,
			Badge:     BadgeFor(lang, t.Family, r.Statut),
			Dates:     DateRange(r.DateDebut, r.DateFin),
			Duration:  i18n.FormatDays(lang, r.Duree),
			Amount:    amount(lang, t.Currency, r.Montant),
		}
		if t.Actions != nil {
			rw.Custom = true
			rw.Actions = t.Actions(r)
		} else {
			rw.Detail = newDetail(lang, t.Currency, t.Family, r)
		}
		v.Rows = append(v.Rows, rw)
	}
	return v
}

// Truncate cuts s to max runes and appends an ellipsis when it had to cut.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "…"
}

// DateRange formats "dd/mm/yyyy → dd/mm/yyyy". A missing side shows as "?".
func DateRange(start, end string) string {
	return orUnknown(mission.FormatDate(start)) + " → " + orUnknown(mission.FormatDate(end))
}

func orUnknown(s string) string {
	if s == "" {
		return "?"
	}
	return s
}

func amount(lang, currency string, v *float64) string {
	if v == nil {
		return ""
	}
	return i18n.FormatMoney(lang, *v, currency)
}
