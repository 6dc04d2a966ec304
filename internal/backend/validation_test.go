package backend

import "testing"

func TestParseValidationQuota(t *testing.T) {
	msg := "Quota dépassé pour Sara Alaoui : quota actuel 20 jours, quota après mission 25 jours"
	got := ParseValidation(msg)
	if len(got) != 1 {
		t.Fatalf("got %d issues", len(got))
	}
	is := got[0]
	if is.Kind != IssueQuota || is.CurrentQuota != "20" || is.AfterQuota != "25" || is.Subject != "Sara Alaoui" {
		t.Fatalf("issue = %+v", is)
	}
}

func TestParseValidationOverlap(t *testing.T) {
	got := ParseValidation("La mission chevauche le mandat REF-010 qui se termine le 2024-05-12")
	if len(got) != 1 || got[0].Kind != IssueOverlap || got[0].ConflictEnd != "2024-05-12" {
		t.Fatalf("got %+v", got)
	}
}

func TestParseValidationMixed(t *testing.T) {
	msg := "Chevauchement pour Youssef Idrissi, mission qui se termine le 10/06/2024; quota actuel 3; Champ objectif trop long"
	got := ParseValidation(msg)
	if len(got) != 3 {
		t.Fatalf("got %d issues: %+v", len(got), got)
	}
	if got[0].Kind != IssueOverlap || got[0].ConflictEnd != "10/06/2024" || got[0].Subject != "Youssef Idrissi" {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Kind != IssueQuota || got[1].CurrentQuota != "3" || got[1].AfterQuota != "" {
		t.Errorf("second = %+v", got[1])
	}
	if got[2].Kind != IssueGeneral || got[2].Message != "Champ objectif trop long" {
		t.Errorf("third = %+v", got[2])
	}
}

func TestParseValidationFallback(t *testing.T) {
	for _, msg := range []string{"Erreur interne; réessayez", "quota", "((( [[[ \x00 ééé"} {
		got := ParseValidation(msg)
		if len(got) != 1 || got[0].Kind != IssueGeneral || got[0].Message != msg {
			t.Errorf("ParseValidation(%q) = %+v", msg, got)
		}
	}
	if got := ParseValidation("   "); got != nil {
		t.Errorf("blank message should give no issue, got %+v", got)
	}
}
