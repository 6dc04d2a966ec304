package listview

import (
	"github.com/diewo77/go-missions/i18n"
	"github.com/diewo77/go-missions/internal/mission"
)

type labels map[string]string

var labelKeys = []string{
	"col.reference", "col.objectif", "col.statut", "col.dates", "col.duree",
	"col.montant", "col.createur", "col.actions", "col.details",
	"field.objectif", "field.controle", "field.date_creation", "field.date_confirmation",
	"field.confirmed_by", "field.users", "field.villes", "field.ressources",
	"field.mandat", "field.beneficiaire", "field.justificatifs", "action.view",
}

func newLabels(lang string) labels {
	l := make(labels, len(labelKeys))
	for _, k := range labelKeys {
		l[k] = i18n.T(lang, k)
	}
	return l
}

type detail struct {
	Family           mission.Family
	Reference        string
	Objectif         string
	Badge            Badge
	Controle         string
	Dates            string
	Duration         string
	CreatedBy        string
	DateCreation     string
	DateConfirmation string
	ConfirmedBy      string
	Counts           string
	MandatReference  string
	Beneficiaire     string
	Amount           string
	Justificatifs    []string
	Users            []string
	Villes           []string
	Ressources       []string
	L                labels
}

func newDetail(lang, currency string, family mission.Family, r mission.Record) detail {
	d := detail{
		Family:           family,
		Reference:        r.Reference,
		Objectif:         r.Objectif,
		Badge:            BadgeFor(lang, family, r.Statut),
		Dates:            DateRange(r.DateDebut, r.DateFin),
		Duration:         i18n.FormatDays(lang, r.Duree),
		CreatedBy:        r.CreatedBy,
		DateCreation:     mission.FormatDate(r.DateCreation),
		DateConfirmation: mission.FormatDate(r.DateConfirmation),
		ConfirmedBy:      r.ConfirmedBy,
		MandatReference:  r.MandatReference,
		Beneficiaire:     r.Beneficiaire,
		Amount:           amount(lang, currency, r.Montant),
		Justificatifs:    r.Justificatifs,
		L:                newLabels(lang),
	}
	if r.MissionDeControle != nil {
		d.Controle = i18n.T(lang, "no")
		if *r.MissionDeControle {
			d.Controle = i18n.T(lang, "yes")
		}
	}
	if family == mission.FamilyMandat && !r.HasAssociations() && (r.NbUsers+r.NbVilles+r.NbRessources) > 0 {
		d.Counts = i18n.Tf(lang, "field.counts", r.NbUsers, r.NbVilles, r.NbRessources)
	}
	for _, u := range r.Users {
		name := u.DisplayName()
		if u.Matricule != "" {
			name += " (" + u.Matricule + ")"
		}
		d.Users = append(d.Users, name)
	}
	for _, v := range r.Villes {
		d.Villes = append(d.Villes, v.Nom)
	}
	for _, res := range r.Ressources {
		s := res.Designation
		if res.Type != "" {
			s += " - " + res.Type
		}
		d.Ressources = append(d.Ressources, s)
	}
	return d
}
