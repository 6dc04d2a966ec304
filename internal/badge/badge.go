// Package badge maps mission statuses to their visual presentation.
//
// Every known (family, status) pair has one entry in a single lookup table.
// Anything else resolves to the explicit Unknown variant, so a status the
// dashboard has never heard of still renders as a neutral warning badge.
package badge

import (
	"strings"

	"github.com/diewo77/go-missions/internal/mission"
)

// Icon is a symbolic icon reference resolved by the templates.
type Icon string

const (
	IconHourglass Icon = "hourglass"
	IconClipboard Icon = "clipboard"
	IconCalendar  Icon = "calendar"
	IconPlay      Icon = "play"
	IconCheck     Icon = "check"
	IconWarning   Icon = "warning"
)

// Variant distinguishes table hits from the unknown fallback.
type Variant int

const (
	VariantKnown Variant = iota
	VariantUnknown
)

// NeutralClass is the CSS class used for unknown statuses.
const NeutralClass = "badge-neutral"

// Descriptor is what a template needs to draw a status badge.
type Descriptor struct {
	Variant    Variant
	Key        string // i18n key, empty for unknown statuses
	Label      string
	ColorClass string
	Icon       Icon
}

// Known reports whether the descriptor came from the lookup table.
func (d Descriptor) Known() bool { return d.Variant == VariantKnown }

// Terminal returns a terminal color name for the CLI renderer.
func (d Descriptor) Terminal() string {
	switch d.ColorClass {
	case "badge-warning":
		return "yellow"
	case "badge-info":
		return "cyan"
	case "badge-primary":
		return "blue"
	case "badge-success":
		return "green"
	case "badge-pending":
		return "magenta"
	default:
		return "white"
	}
}

type key struct {
	family mission.Family
	status mission.Status
}

var table = map[key]Descriptor{
	{mission.FamilyMandat, mission.StatusEnAttenteConfirmation}: known("status.en_attente_confirmation", "En attente de confirmation", "badge-warning", IconHourglass),
	{mission.FamilyMandat, mission.StatusEnAttenteExecution}:    known("status.en_attente_execution", "En attente d'exécution", "badge-info", IconCalendar),
	{mission.FamilyMandat, mission.StatusEnCours}:               known("status.en_cours", "En cours", "badge-primary", IconPlay),
	{mission.FamilyMandat, mission.StatusAcheve}:                known("status.acheve", "Achevé", "badge-success", IconCheck),

	{mission.FamilyOrdre, mission.StatusEnAttenteJustificatif}: known("status.en_attente_justificatif", "En attente de justificatif", "badge-pending", IconClipboard),
	{mission.FamilyOrdre, mission.StatusEnAttenteConfirmation}: known("status.en_attente_confirmation", "En attente de confirmation", "badge-warning", IconHourglass),
	{mission.FamilyOrdre, mission.StatusEnAttenteExecution}:    known("status.en_attente_execution", "En attente d'exécution", "badge-info", IconCalendar),
	{mission.FamilyOrdre, mission.StatusEnCours}:               known("status.en_cours", "En cours", "badge-primary", IconPlay),
	{mission.FamilyOrdre, mission.StatusAcheve}:                known("status.acheve", "Achevé", "badge-success", IconCheck),
}

func known(k, label, class string, icon Icon) Descriptor {
	return Descriptor{Variant: VariantKnown, Key: k, Label: label, ColorClass: class, Icon: icon}
}

// For returns the presentation of status for the given family. Lookup is
// case-insensitive; the unknown label keeps the raw value.
func For(family mission.Family, status mission.Status) Descriptor {
	if d, ok := table[key{family, mission.Normalize(string(status))}]; ok {
		return d
	}
	return Unknown(string(status))
}

// Unknown builds the fallback descriptor for a raw status value.
func Unknown(raw string) Descriptor {
	return Descriptor{
		Variant:    VariantUnknown,
		Label:      Humanize(raw),
		ColorClass: NeutralClass,
		Icon:       IconWarning,
	}
}

// Humanize turns "UNKNOWN_X" into "UNKNOWN X".
func Humanize(raw string) string {
	s := strings.Join(strings.Fields(strings.ReplaceAll(raw, "_", " ")), " ")
	if s == "" {
		return "Inconnu"
	}
	return s
}
