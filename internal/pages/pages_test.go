package pages

import (
	"testing"

	"github.com/diewo77/go-missions/i18n"
	"github.com/diewo77/go-missions/internal/actions"
	"github.com/diewo77/go-missions/internal/mission"
)

func TestCatalogActionSets(t *testing.T) {
	tests := []struct {
		family mission.Family
		slug   string
		want   []actions.Name
	}{
		{mission.FamilyMandat, "en-attente-confirmation", []actions.Name{actions.Confirm, actions.Reject}},
		{mission.FamilyMandat, "en-attente-execution", []actions.Name{actions.Execute, actions.DownloadPDF}},
		{mission.FamilyMandat, "en-cours", []actions.Name{actions.Complete, actions.DownloadPDF}},
		{mission.FamilyMandat, "acheves", []actions.Name{actions.DownloadPDF}},
		{mission.FamilyMandat, "mes-mandats", []actions.Name{actions.Edit, actions.DownloadPDF}},
		{mission.FamilyOrdre, "en-attente-justificatif", []actions.Name{actions.AddAttachments}},
		{mission.FamilyOrdre, "en-attente-confirmation", []actions.Name{actions.Confirm, actions.Reject}},
		{mission.FamilyOrdre, "mes-ordres", []actions.Name{actions.DownloadPDF}},
	}
	for _, tt := range tests {
		p, err := Lookup(tt.family, tt.slug)
		if err != nil {
			t.Fatal(err)
		}
		got := p.Actions.Names()
		if len(got) != len(tt.want) {
			t.Fatalf("%s actions = %v, want %v", p.Path(), got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s actions = %v, want %v", p.Path(), got, tt.want)
			}
		}
	}
}

func TestCatalogConsistency(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range All() {
		if seen[p.Path()] {
			t.Errorf("duplicate page %s", p.Path())
		}
		seen[p.Path()] = true
		if p.Status != "" && !p.Family.Known(p.Status) {
			t.Errorf("%s has a status outside its family", p.Path())
		}
		if i18n.T("fr", p.TitleKey()) == p.TitleKey() || i18n.T("en", p.TitleKey()) == p.TitleKey() {
			t.Errorf("%s has no translated title", p.Path())
		}
		if p.Actions.Len() == 0 {
			t.Errorf("%s declares no action", p.Path())
		}
	}
	if len(ForFamily(mission.FamilyOrdre)) != 6 || len(ForFamily(mission.FamilyMandat)) != 5 {
		t.Error("unexpected page count per family")
	}
}

func TestLookupAndForStatus(t *testing.T) {
	if _, err := Lookup(mission.FamilyMandat, "en-attente-justificatif"); err == nil {
		t.Error("mandats have no justificatif page")
	}
	p, ok := ForStatus(mission.FamilyOrdre, mission.StatusEnCours)
	if !ok || p.Path() != "/ordre/en-cours" {
		t.Errorf("ForStatus = %v %v", p.Path(), ok)
	}
	if _, ok := ForStatus(mission.FamilyMandat, "UNKNOWN_X"); ok {
		t.Error("unknown status has no page")
	}
	mine, _ := Lookup(mission.FamilyMandat, "mes-mandats")
	if !mine.Filter.SearchCreator || !mine.StatusFilter {
		t.Error("mes-mandats searches the creator and filters by status")
	}
}
