// Package pages declares the status-bucket list pages of each family: which
// backend bucket they show, who may open them and which actions they offer.
package pages

import (
	"fmt"

	"github.com/diewo77/go-missions/internal/actions"
	"github.com/diewo77/go-missions/internal/filter"
	"github.com/diewo77/go-missions/internal/mission"
	"github.com/diewo77/go-missions/internal/policy"
)

// Page is one list page.
type Page struct {
	Family mission.Family
	Slug   string
	// Bucket is the backend list segment, e.g. /api/mandats/{Bucket}.
	Bucket string
	// Status is the status every record of the bucket is expected to have;
	// empty for mixed buckets such as "mes-mandats".
	Status  mission.Status
	Roles   []string
	Actions actions.Set
	Filter  filter.Options
	// StatusFilter offers the status drop-down (mixed buckets only).
	StatusFilter bool
}

// TitleKey is the i18n key of the page title.
func (p Page) TitleKey() string { return "page." + string(p.Family) + "." + p.Slug }

// Path is the dashboard URL of the page.
func (p Page) Path() string { return "/" + string(p.Family) + "/" + p.Slug }

var (
	everyone  = []string{}
	deciders  = []string{policy.RoleAdmin, policy.RoleDirecteur}
	operators = []string{policy.RoleAdmin, policy.RoleDirecteur, policy.RoleGestionnaire}
	managers  = []string{policy.RoleAdmin, policy.RoleGestionnaire}
	claimants = []string{policy.RoleAdmin, policy.RoleGestionnaire, policy.RoleAgent}
)

var catalog = []Page{
	{
		Family:  mission.FamilyMandat,
		Slug:    "en-attente-confirmation",
		Bucket:  "en-attente-confirmation",
		Status:  mission.StatusEnAttenteConfirmation,
		Roles:   deciders,
		Actions: actions.NewSet(actions.Confirm, actions.Reject),
	},
	{
		Family:  mission.FamilyMandat,
		Slug:    "en-attente-execution",
		Bucket:  "en-attente-execution",
		Status:  mission.StatusEnAttenteExecution,
		Roles:   operators,
		Actions: actions.NewSet(actions.Execute, actions.DownloadPDF),
	},
	{
		Family:  mission.FamilyMandat,
		Slug:    "en-cours",
		Bucket:  "en-cours",
		Status:  mission.StatusEnCours,
		Roles:   operators,
		Actions: actions.NewSet(actions.Complete, actions.DownloadPDF),
	},
	{
		Family:  mission.FamilyMandat,
		Slug:    "acheves",
		Bucket:  "acheves",
		Status:  mission.StatusAcheve,
		Roles:   everyone,
		Actions: actions.NewSet(actions.DownloadPDF),
	},
	{
		Family:       mission.FamilyMandat,
		Slug:         "mes-mandats",
		Bucket:       "mes-mandats",
		Roles:        managers,
		Actions:      actions.NewSet(actions.Edit, actions.DownloadPDF),
		Filter:       filter.Options{SearchCreator: true},
		StatusFilter: true,
	},
	{
		Family:  mission.FamilyOrdre,
		Slug:    "en-attente-justificatif",
		Bucket:  "en-attente-justificatif",
		Status:  mission.StatusEnAttenteJustificatif,
		Roles:   claimants,
		Actions: actions.NewSet(actions.AddAttachments),
	},
	{
		Family:  mission.FamilyOrdre,
		Slug:    "en-attente-confirmation",
		Bucket:  "en-attente-confirmation",
		Status:  mission.StatusEnAttenteConfirmation,
		Roles:   deciders,
		Actions: actions.NewSet(actions.Confirm, actions.Reject),
	},
	{
		Family:  mission.FamilyOrdre,
		Slug:    "en-attente-execution",
		Bucket:  "en-attente-execution",
		Status:  mission.StatusEnAttenteExecution,
		Roles:   operators,
		Actions: actions.NewSet(actions.Execute, actions.DownloadPDF),
	},
	{
		Family:  mission.FamilyOrdre,
		Slug:    "en-cours",
		Bucket:  "en-cours",
		Status:  mission.StatusEnCours,
		Roles:   operators,
		Actions: actions.NewSet(actions.Complete, actions.DownloadPDF),
	},
	{
		Family:  mission.FamilyOrdre,
		Slug:    "acheves",
		Bucket:  "acheves",
		Status:  mission.StatusAcheve,
		Roles:   everyone,
		Actions: actions.NewSet(actions.DownloadPDF),
	},
	{
		Family:       mission.FamilyOrdre,
		Slug:         "mes-ordres",
		Bucket:       "mes-ordres",
		Roles:        everyone,
		Actions:      actions.NewSet(actions.DownloadPDF),
		StatusFilter: true,
	},
}

// All returns every page in menu order.
func All() []Page {
	out := make([]Page, len(catalog))
	copy(out, catalog)
	return out
}

// ForFamily returns the pages of one family in menu order.
func ForFamily(f mission.Family) []Page {
	var out []Page
	for _, p := range catalog {
		if p.Family == f {
			out = append(out, p)
		}
	}
	return out
}

// Lookup finds a page by family and slug.
func Lookup(f mission.Family, slug string) (Page, error) {
	for _, p := range catalog {
		if p.Family == f && p.Slug == slug {
			return p, nil
		}
	}
	return Page{}, fmt.Errorf("unknown page %s/%s", f, slug)
}

// ForStatus returns the page listing records of the given status, used to
// send the user back to the right list after an action.
func ForStatus(f mission.Family, s mission.Status) (Page, bool) {
	for _, p := range catalog {
		if p.Family == f && p.Status != "" && p.Status == s {
			return p, true
		}
	}
	return Page{}, false
}
