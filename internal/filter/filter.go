// Package filter composes the optional list filters into a single predicate.
package filter

import (
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/diewo77/go-missions/internal/mission"
)

// AllStatuses is the status filter sentinel meaning "no constraint".
const AllStatuses = "all"

// Query parameter names used by list pages.
const (
	ParamSearch    = "q"
	ParamDateDebut = "du"
	ParamDateFin   = "au"
	ParamStatut    = "statut"
	ParamCreatedBy = "createur"
)

// State holds the filter fields exactly as the user typed them.
type State struct {
	Search    string
	DateDebut string
	DateFin   string
	Statut    string
	CreatedBy string
}

// Options tweak how a page applies its filters.
type Options struct {
	// SearchCreator makes the free-text search also look at the creator name.
	SearchCreator bool
}

// Parse reads a State from query values. Missing keys stay empty.
func Parse(v url.Values) State {
	return State{
		Search:    strings.TrimSpace(v.Get(ParamSearch)),
		DateDebut: strings.TrimSpace(v.Get(ParamDateDebut)),
		DateFin:   strings.TrimSpace(v.Get(ParamDateFin)),
		Statut:    strings.TrimSpace(v.Get(ParamStatut)),
		CreatedBy: strings.TrimSpace(v.Get(ParamCreatedBy)),
	}
}

// Query encodes the non-empty fields back into query values.
func (s State) Query() url.Values {
	v := url.Values{}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set(ParamSearch, s.Search)
	set(ParamDateDebut, s.DateDebut)
	set(ParamDateFin, s.DateFin)
	set(ParamStatut, s.Statut)
	set(ParamCreatedBy, s.CreatedBy)
	return v
}

// IsZero reports whether no field constrains the list.
func (s State) IsZero() bool {
	return strings.TrimSpace(s.Search) == "" &&
		strings.TrimSpace(s.DateDebut) == "" &&
		strings.TrimSpace(s.DateFin) == "" &&
		!statusSet(s.Statut) &&
		strings.TrimSpace(s.CreatedBy) == ""
}

func statusSet(raw string) bool {
	raw = strings.TrimSpace(raw)
	return raw != "" && !strings.EqualFold(raw, AllStatuses)
}

// Predicate is a compiled filter. The zero value accepts everything.
type Predicate struct {
	search        string
	searchCreator bool
	from, to      time.Time
	hasFrom       bool
	hasTo         bool
	status        mission.Status
	hasStatus     bool
	createdBy     string
}

// Compose turns a State into a Predicate. A filter date that cannot be
// parsed is ignored rather than excluding every record.
func Compose(s State, opts Options) Predicate {
	p := Predicate{
		search:        fold(s.Search),
		searchCreator: opts.SearchCreator,
		createdBy:     fold(s.CreatedBy),
	}
	if d, ok := mission.ParseDate(s.DateDebut); ok {
		p.from, p.hasFrom = d, true
	}
	if d, ok := mission.ParseDate(s.DateFin); ok {
		p.to, p.hasTo = d, true
	}
	if statusSet(s.Statut) {
		p.status, p.hasStatus = mission.Normalize(s.Statut), true
	}
	return p
}

// Match reports whether r survives every set criterion.
func (p Predicate) Match(r mission.Record) bool {
	if p.search != "" {
		hit := contains(r.Reference, p.search) || contains(r.Objectif, p.search)
		if !hit && p.searchCreator {
			hit = contains(r.CreatedBy, p.search)
		}
		if !hit {
			return false
		}
	}
	if p.hasFrom {
		start, ok := r.Start()
		if !ok || start.Before(p.from) {
			return false
		}
	}
	if p.hasTo {
		end, ok := r.End()
		if !ok || end.After(p.to) {
			return false
		}
	}
	if p.hasStatus && mission.Normalize(string(r.Statut)) != p.status {
		return false
	}
	if p.createdBy != "" && !contains(r.CreatedBy, p.createdBy) {
		return false
	}
	return true
}

// Apply returns the records accepted by p, in their original order.
func Apply(records []mission.Record, p Predicate) []mission.Record {
	out := make([]mission.Record, 0, len(records))
	for _, r := range records {
		if p.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// contains expects needle to be folded already.
func contains(haystack, needle string) bool {
	return strings.Contains(fold(haystack), needle)
}

func fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// A Caser keeps state, so each call gets its own.
	return cases.Fold().String(s)
}
