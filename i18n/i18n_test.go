package i18n

import (
	"context"
	"strings"
	"testing"
)

func TestDetectLanguage(t *testing.T) {
	if DetectLanguage("en-US,en;q=0.9") != "en" {
		t.Fatalf("expected en")
	}
	if DetectLanguage("EN-gb") != "en" {
		t.Fatalf("expected en for EN-gb")
	}
	if DetectLanguage("fr-FR,fr;q=0.8") != "fr" {
		t.Fatalf("expected fr fallback")
	}
	if DetectLanguage("") != "fr" {
		t.Fatalf("expected default fr")
	}
	if DetectLanguage("%%%") != "fr" {
		t.Fatalf("expected default fr for garbage")
	}
}

func TestTranslations(t *testing.T) {
	if T("en", "required") != "Required" {
		t.Fatalf("expected Required")
	}
	if T("fr", "required") != "Requis" {
		t.Fatalf("expected Requis")
	}
	// unknown code -> fallback to code
	if T("en", "__nope__") != "__nope__" {
		t.Fatalf("expected fallback to code")
	}
	// unknown language -> fallback to fr translation if exists
	if T("es", "required") != "Requis" {
		t.Fatalf("expected fr fallback for es lang")
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for k := range messages["fr"] {
		if _, ok := messages["en"][k]; !ok {
			t.Errorf("en is missing %q", k)
		}
	}
	for k := range messages["en"] {
		if _, ok := messages["fr"][k]; !ok {
			t.Errorf("fr is missing %q", k)
		}
	}
}

func TestLangContext(t *testing.T) {
	if LangFrom(context.Background()) != "fr" {
		t.Fatal("default lang should be fr")
	}
	ctx := WithLang(context.Background(), "EN")
	if LangFrom(ctx) != "en" {
		t.Fatalf("LangFrom = %q", LangFrom(ctx))
	}
	if LangFrom(WithLang(context.Background(), "de")) != "fr" {
		t.Fatal("unsupported lang should normalize to fr")
	}
}

func TestFormatMoney(t *testing.T) {
	fr := FormatMoney("fr", 1500.5, "DH")
	if !strings.HasSuffix(fr, ",50 DH") {
		t.Errorf("fr money = %q", fr)
	}
	en := FormatMoney("en", 1500.5, "")
	if en != "1,500.50" {
		t.Errorf("en money = %q", en)
	}
}

func TestFormatDays(t *testing.T) {
	if got := FormatDays("fr", 1); got != "1 jour" {
		t.Errorf("got %q", got)
	}
	if got := FormatDays("fr", 3); got != "3 jours" {
		t.Errorf("got %q", got)
	}
	if got := FormatDays("en", 0); got != "0 days" {
		t.Errorf("got %q", got)
	}
}
