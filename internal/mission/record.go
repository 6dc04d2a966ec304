package mission

import (
	"strings"
	"time"
)

// Person is a user reference as the backend embeds it.
type Person struct {
	ID        uint   `json:"id"`
	Nom       string `json:"nom"`
	Prenom    string `json:"prenom,omitempty"`
	Matricule string `json:"matricule,omitempty"`
}

// DisplayName returns "Prénom Nom", or whatever part is present.
func (p Person) DisplayName() string {
	return strings.TrimSpace(p.Prenom + " " + p.Nom)
}

// Ville is a destination city assigned to a mandat.
type Ville struct {
	ID  uint   `json:"id"`
	Nom string `json:"nom"`
}

// Ressource is a resource (vehicle, equipment) assigned to a mandat.
type Ressource struct {
	ID          uint   `json:"id"`
	Designation string `json:"designation"`
	Type        string `json:"type,omitempty"`
}

// Record is one mandat or ordre de mission as listed by the backend.
// Dates are kept as sent; use ParseDate to compare them.
type Record struct {
	ID                uint   `json:"id"`
	Reference         string `json:"reference"`
	Objectif          string `json:"objectif"`
	MissionDeControle *bool  `json:"missionDeControle,omitempty"`
	DateDebut         string `json:"dateDebut"`
	DateFin           string `json:"dateFin"`
	Duree             int    `json:"duree"`
	Statut            Status `json:"statut"`
	CreatedBy         string `json:"createdBy"`
	CreatedByID       uint   `json:"createdById,omitempty"`
	DateCreation      string `json:"dateCreation,omitempty"`
	DateConfirmation  string `json:"dateConfirmation,omitempty"`
	ConfirmedBy       string `json:"confirmedBy,omitempty"`

	// Mandat list summaries.
	NbUsers      int `json:"nbUsers,omitempty"`
	NbVilles     int `json:"nbVilles,omitempty"`
	NbRessources int `json:"nbRessources,omitempty"`

	// Mandat detail only.
	Users      []Person    `json:"users,omitempty"`
	Villes     []Ville     `json:"villes,omitempty"`
	Ressources []Ressource `json:"ressources,omitempty"`

	// Ordre de mission only.
	MandatID        uint     `json:"mandatId,omitempty"`
	MandatReference string   `json:"mandatReference,omitempty"`
	Beneficiaire    string   `json:"beneficiaire,omitempty"`
	Montant         *float64 `json:"montant,omitempty"`
	Justificatifs   []string `json:"justificatifs,omitempty"`
}

// Start returns the parsed start date.
func (r Record) Start() (time.Time, bool) { return ParseDate(r.DateDebut) }

// End returns the parsed end date.
func (r Record) End() (time.Time, bool) { return ParseDate(r.DateFin) }

// IsControle reports the optional control-mission flag.
func (r Record) IsControle() bool {
	return r.MissionDeControle != nil && *r.MissionDeControle
}

// HasAssociations reports whether detail associations were loaded.
func (r Record) HasAssociations() bool {
	return len(r.Users) > 0 || len(r.Villes) > 0 || len(r.Ressources) > 0
}

// Input is the create/update payload sent to the backend.
type Input struct {
	Objectif          string `json:"objectif"`
	MissionDeControle bool   `json:"missionDeControle"`
	DateDebut         string `json:"dateDebut"`
	DateFin           string `json:"dateFin"`

	// Mandat associations.
	UserIDs      []uint `json:"userIds,omitempty"`
	VilleIDs     []uint `json:"villeIds,omitempty"`
	RessourceIDs []uint `json:"ressourceIds,omitempty"`

	// Ordre de mission parent.
	MandatID uint `json:"mandatId,omitempty"`
}
