// Package actions gates and dispatches the per-record actions of list pages.
package actions

import (
	"fmt"
	"strings"
)

// Name identifies one action a page can offer on a record.
type Name string

const (
	Confirm        Name = "confirm"
	Reject         Name = "reject"
	Execute        Name = "execute"
	Complete       Name = "complete"
	DownloadPDF    Name = "downloadPdf"
	AddAttachments Name = "addAttachments"
	Edit           Name = "edit"
)

var all = []Name{Confirm, Reject, Execute, Complete, DownloadPDF, AddAttachments, Edit}

// All returns every action name.
func All() []Name {
	out := make([]Name, len(all))
	copy(out, all)
	return out
}

// Parse accepts an action name as it appears in a URL.
func Parse(s string) (Name, error) {
	s = strings.TrimSpace(s)
	for _, n := range all {
		if strings.EqualFold(string(n), s) {
			return n, nil
		}
	}
	return "", fmt.Errorf("unknown action: %q", s)
}

// Mutating reports whether the action changes the record on the backend.
// Only mutating actions go through the tracker.
func (n Name) Mutating() bool {
	return n != DownloadPDF
}

// LabelKey is the i18n key of the action's control label.
func (n Name) LabelKey() string { return "action." + string(n) }

// Set is the ordered, duplicate-free list of actions a page declares.
type Set struct {
	names []Name
}

// NewSet keeps the first occurrence of each name, in order.
func NewSet(names ...Name) Set {
	seen := make(map[Name]bool, len(names))
	s := Set{names: make([]Name, 0, len(names))}
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		s.names = append(s.names, n)
	}
	return s
}

// Has reports whether n is declared.
func (s Set) Has(n Name) bool {
	for _, x := range s.names {
		if x == n {
			return true
		}
	}
	return false
}

// Names returns the declared actions in declaration order.
func (s Set) Names() []Name {
	out := make([]Name, len(s.names))
	copy(out, s.names)
	return out
}

// Len is the number of declared actions.
func (s Set) Len() int { return len(s.names) }

// Filter returns the declared actions accepted by keep, still in order.
func (s Set) Filter(keep func(Name) bool) []Name {
	out := make([]Name, 0, len(s.names))
	for _, n := range s.names {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out
}
