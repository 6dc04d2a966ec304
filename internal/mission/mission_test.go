package mission

import (
	"testing"
	"time"
)

func TestFamilyStages(t *testing.T) {
	tests := []struct {
		name   string
		family Family
		status Status
		stage  int
		known  bool
	}{
		{"mandat first", FamilyMandat, StatusEnAttenteConfirmation, 0, true},
		{"mandat last", FamilyMandat, StatusAcheve, 3, true},
		{"mandat has no justificatif stage", FamilyMandat, StatusEnAttenteJustificatif, -1, false},
		{"ordre first", FamilyOrdre, StatusEnAttenteJustificatif, 0, true},
		{"ordre confirmation", FamilyOrdre, StatusEnAttenteConfirmation, 1, true},
		{"unknown", FamilyOrdre, Status("UNKNOWN_X"), -1, false},
		{"empty", FamilyMandat, Status(""), -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage, ok := tt.family.Stage(tt.status)
			if stage != tt.stage || ok != tt.known {
				t.Errorf("Stage(%q) = %d,%v want %d,%v", tt.status, stage, ok, tt.stage, tt.known)
			}
			if got := tt.family.Known(tt.status); got != tt.known {
				t.Errorf("Known(%q) = %v, want %v", tt.status, got, tt.known)
			}
		})
	}
}

func TestFamilyPrecedes(t *testing.T) {
	if !FamilyMandat.Precedes(StatusEnAttenteConfirmation, StatusEnCours) {
		t.Error("confirmation should precede en cours")
	}
	if FamilyMandat.Precedes(StatusAcheve, StatusEnCours) {
		t.Error("achevé must not precede en cours")
	}
	if FamilyMandat.Precedes(StatusEnCours, StatusEnCours) {
		t.Error("a status does not precede itself")
	}
	if FamilyOrdre.Precedes(Status("BOGUS"), StatusAcheve) {
		t.Error("unknown status must never precede")
	}
}

func TestStatusesReturnsCopy(t *testing.T) {
	s := FamilyMandat.Statuses()
	s[0] = "MUTATED"
	if FamilyMandat.Statuses()[0] != StatusEnAttenteConfirmation {
		t.Fatal("Statuses must not expose the internal vocabulary")
	}
	if len(FamilyOrdre.Statuses()) != 5 {
		t.Fatalf("ordre vocabulary should have 5 statuses")
	}
}

func TestParseFamily(t *testing.T) {
	if f, err := ParseFamily(" Mandat "); err != nil || f != FamilyMandat {
		t.Fatalf("ParseFamily(mandat) = %q, %v", f, err)
	}
	if f, err := ParseFamily("ordre"); err != nil || f != FamilyOrdre {
		t.Fatalf("ParseFamily(ordre) = %q, %v", f, err)
	}
	if _, err := ParseFamily("facture"); err == nil {
		t.Fatal("expected error for unknown family")
	}
	if FamilyOrdre.Collection() != "ordres-mission" || FamilyMandat.Collection() != "mandats" {
		t.Fatal("unexpected collection names")
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2024-05-10", "2024-05-10T14:30:00", "2024-05-10T14:30:00Z", "10/05/2024", " 2024-05-10 "} {
		got, ok := ParseDate(in)
		if !ok || !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v,%v want %v", in, got, ok, want)
		}
	}
	for _, in := range []string{"", "demain", "2024-13-45", "10-05-2024"} {
		if _, ok := ParseDate(in); ok {
			t.Errorf("ParseDate(%q) should fail", in)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2024-05-10"); got != "10/05/2024" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := FormatDate("n/a"); got != "n/a" {
		t.Errorf("FormatDate should keep malformed input, got %q", got)
	}
}

func TestRecordHelpers(t *testing.T) {
	yes := true
	r := Record{MissionDeControle: &yes, Users: []Person{{Nom: "Alaoui", Prenom: "Sara"}}}
	if !r.IsControle() {
		t.Error("IsControle should be true")
	}
	if !r.HasAssociations() {
		t.Error("HasAssociations should be true")
	}
	if (Record{}).IsControle() {
		t.Error("nil control flag means false")
	}
	if got := r.Users[0].DisplayName(); got != "Sara Alaoui" {
		t.Errorf("DisplayName = %q", got)
	}
}
