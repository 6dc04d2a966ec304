package mission

import (
	"fmt"
	"strings"
)

// Family identifies which kind of mission record a page or call deals with.
type Family string

const (
	FamilyMandat Family = "mandat"
	FamilyOrdre  Family = "ordre"
)

// Status is the workflow status of a record, as sent by the backend.
// Values outside a family's vocabulary are kept verbatim and shown as unknown.
type Status string

const (
	StatusEnAttenteJustificatif Status = "EN_ATTENTE_JUSTIFICATIF"
	StatusEnAttenteConfirmation Status = "EN_ATTENTE_CONFIRMATION"
	StatusEnAttenteExecution    Status = "EN_ATTENTE_EXECUTION"
	StatusEnCours               Status = "EN_COURS"
	StatusAcheve                Status = "ACHEVE"
)

// Workflow order per family. Index is the stage.
var vocabularies = map[Family][]Status{
	FamilyMandat: {
		StatusEnAttenteConfirmation,
		StatusEnAttenteExecution,
		StatusEnCours,
		StatusAcheve,
	},
	FamilyOrdre: {
		StatusEnAttenteJustificatif,
		StatusEnAttenteConfirmation,
		StatusEnAttenteExecution,
		StatusEnCours,
		StatusAcheve,
	},
}

// Families returns every supported family in menu order.
func Families() []Family {
	return []Family{FamilyMandat, FamilyOrdre}
}

// ParseFamily accepts the URL slug of a family.
func ParseFamily(s string) (Family, error) {
	switch Family(strings.ToLower(strings.TrimSpace(s))) {
	case FamilyMandat:
		return FamilyMandat, nil
	case FamilyOrdre:
		return FamilyOrdre, nil
	default:
		return "", fmt.Errorf("unknown mission family: %q", s)
	}
}

// Collection is the backend collection segment for the family.
func (f Family) Collection() string {
	if f == FamilyOrdre {
		return "ordres-mission"
	}
	return "mandats"
}

// Statuses returns a copy of the family's ordered vocabulary.
func (f Family) Statuses() []Status {
	v := vocabularies[f]
	out := make([]Status, len(v))
	copy(out, v)
	return out
}

// Stage returns the workflow position of s within the family.
func (f Family) Stage(s Status) (int, bool) {
	for i, known := range vocabularies[f] {
		if known == s {
			return i, true
		}
	}
	return -1, false
}

// Known reports whether s belongs to the family's vocabulary.
func (f Family) Known(s Status) bool {
	_, ok := f.Stage(s)
	return ok
}

// Precedes reports whether a comes strictly before b in the workflow.
// Unknown statuses never precede anything.
func (f Family) Precedes(a, b Status) bool {
	ia, okA := f.Stage(a)
	ib, okB := f.Stage(b)
	return okA && okB && ia < ib
}

// Normalize trims and upper-cases a raw status string.
func Normalize(raw string) Status {
	return Status(strings.ToUpper(strings.TrimSpace(raw)))
}
