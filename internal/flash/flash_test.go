package flash

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func roundTrip(t *testing.T, n Notice) (Notice, bool) {
	t.Helper()
	rec := httptest.NewRecorder()
	Write(rec, n)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	out := httptest.NewRecorder()
	got, ok := ReadAndClear(out, req)
	cleared := false
	for _, c := range out.Result().Cookies() {
		if c.Name == CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if ok && !cleared {
		t.Error("ReadAndClear must expire the cookie")
	}
	return got, ok
}

func TestWriteReadAndClear(t *testing.T) {
	got, ok := roundTrip(t, Error("flash.action.failed", "Quota dépassé"))
	if !ok || got.Kind != KindError || got.Text != "Quota dépassé" {
		t.Fatalf("got %+v, %v", got, ok)
	}
	if msg := got.Message("fr"); msg != "L'opération a échoué : Quota dépassé" {
		t.Errorf("Message = %q", msg)
	}
	if msg := Success("flash.confirm.ok").Message("en"); msg != "Confirmed" {
		t.Errorf("Message = %q", msg)
	}
}

func TestInvalidNoticesAreDropped(t *testing.T) {
	if _, ok := roundTrip(t, Notice{Kind: "shout", Key: "x"}); ok {
		t.Error("unknown kind accepted")
	}
	if _, ok := roundTrip(t, Notice{Kind: KindInfo}); ok {
		t.Error("empty key accepted")
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "%%%"})
	if _, ok := ReadAndClear(httptest.NewRecorder(), req); ok {
		t.Error("garbage cookie accepted")
	}
}

func TestLongTextIsCut(t *testing.T) {
	got, ok := roundTrip(t, Error("flash.action.failed", strings.Repeat("é", 400)))
	if !ok || len([]rune(got.Text)) != maxText+1 {
		t.Fatalf("text runes = %d", len([]rune(got.Text)))
	}
}
