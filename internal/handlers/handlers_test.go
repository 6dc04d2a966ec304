package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/diewo77/go-missions/auth"
	"github.com/diewo77/go-missions/internal/actions"
	"github.com/diewo77/go-missions/internal/backend"
	"github.com/diewo77/go-missions/internal/db"
	"github.com/diewo77/go-missions/internal/flash"
	"github.com/diewo77/go-missions/internal/middleware"
	"github.com/diewo77/go-missions/internal/mission"
	"github.com/diewo77/go-missions/internal/staging"
)

// fakeAPI is a scripted mission backend that records every request.
type fakeAPI struct {
	mu      sync.Mutex
	calls   []string
	fail    map[string]int
	message map[string]string
	lists   map[string][]mission.Record
	records map[string]mission.Record
	uploads []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		fail:    map[string]int{},
		message: map[string]string{},
		lists:   map[string][]mission.Record{},
		records: map[string]mission.Record{},
	}
}

func (a *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	a.mu.Lock()
	a.calls = append(a.calls, key)
	status, msg := a.fail[key], a.message[key]
	recs, isList := a.lists[r.URL.Path]
	rec, isRecord := a.records[r.URL.Path]
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
		return
	}
	switch {
	case key == "POST /api/auth/login":
		_ = json.NewEncoder(w).Encode(backend.LoginResponse{
			Token: "tok-login",
			User:  backend.User{ID: 10, Username: "sara", Nom: "Alaoui", Prenom: "Sara", Roles: []string{"ROLE_ADMIN"}},
		})
	case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/pdf"):
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="MD-005.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.4"))
	case r.Method == http.MethodGet && isList:
		_ = json.NewEncoder(w).Encode(recs)
	case r.Method == http.MethodGet && isRecord:
		_ = json.NewEncoder(w).Encode(rec)
	case r.Method == http.MethodGet:
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "introuvable"})
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/justificatifs"):
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		a.mu.Lock()
		for _, fh := range r.MultipartForm.File["files"] {
			a.uploads = append(a.uploads, fh.Filename)
		}
		a.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (a *fakeAPI) count(key string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, c := range a.calls {
		if c == key {
			n++
		}
	}
	return n
}

func (a *fakeAPI) total() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.calls)
}

type testEnv struct {
	t        *testing.T
	api      *fakeAPI
	srv      *httptest.Server
	h        *Handler
	store    *staging.Store
	sessions *auth.Manager
	router   http.Handler
	cookies  []*http.Cookie
}

func newTestEnv(t *testing.T, roles ...string) *testEnv {
	t.Helper()
	api := newFakeAPI()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	gdb, err := db.Open("file:"+t.Name()+"?mode=memory&cache=shared", false, db.Retry{Attempts: 1}, staging.Models()...)
	if err != nil {
		t.Fatal(err)
	}
	quiet := log.New(io.Discard, "", 0)
	sessions := auth.NewManager(auth.Options{Secret: "test-secret"})
	store := staging.NewStore(gdb)
	h := New(Deps{
		Backend:    backend.New(srv.URL, 5*time.Second, backend.WithLogger(quiet)),
		Sessions:   sessions,
		Dispatcher: actions.NewDispatcher(actions.NewTracker(), quiet),
		Staging:    store,
	})

	r := chi.NewRouter()
	r.Use(middleware.Prefs)
	r.Use(sessions.Middleware)
	h.Mount(r)

	e := &testEnv{t: t, api: api, srv: srv, h: h, store: store, sessions: sessions, router: r}
	e.cookies = []*http.Cookie{{Name: "lang", Value: "en"}}
	if len(roles) > 0 {
		rec := httptest.NewRecorder()
		if _, err := sessions.Login(rec, auth.Session{Token: "tok", UserID: 10, Username: "sara", Roles: roles}); err != nil {
			t.Fatal(err)
		}
		e.cookies = append(e.cookies, rec.Result().Cookies()...)
	}
	return e
}

func (e *testEnv) serve(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range e.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) get(target string) *httptest.ResponseRecorder {
	return e.serve(httptest.NewRequest(http.MethodGet, target, nil))
}

func (e *testEnv) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.serve(req)
}

func (e *testEnv) upload(target string, files map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := mw.CreateFormFile("files", name)
		if err != nil {
			e.t.Fatal(err)
		}
		_, _ = part.Write([]byte(content))
	}
	_ = mw.Close()
	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return e.serve(req)
}

// notice decodes the flash cookie set by rec.
func notice(t *testing.T, rec *httptest.ResponseRecorder) flash.Notice {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.Name == flash.CookieName && c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}
	n, ok := flash.ReadAndClear(httptest.NewRecorder(), req)
	if !ok {
		t.Fatal("no flash notice")
	}
	return n
}

func expectRedirect(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303; body: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != want {
		t.Fatalf("Location = %q, want %q", got, want)
	}
}

func pendingMandat(id uint) mission.Record {
	return mission.Record{
		ID:        id,
		Reference: fmt.Sprintf("MD-%03d", id),
		Objectif:  "Audit des agences",
		DateDebut: "2024-05-01",
		DateFin:   "2024-05-03",
		Duree:     3,
		Statut:    mission.StatusEnAttenteConfirmation,
		CreatedBy: "Sara Alaoui",
	}
}

func confirmForm() url.Values {
	return url.Values{"page": {"en-attente-confirmation"}, "statut": {"EN_ATTENTE_CONFIRMATION"}}
}

func TestConfirmPostsOnceThenListRefetches(t *testing.T) {
	e := newTestEnv(t, "ROLE_DIRECTEUR")
	e.api.lists["/api/mandats/en-attente-confirmation"] = []mission.Record{pendingMandat(42)}

	rec := e.postForm("/mandat/42/actions/confirm", confirmForm())
	expectRedirect(t, rec, "/mandat/en-attente-confirmation")
	if got := e.api.count("POST /api/mandats/42/confirmer"); got != 1 {
		t.Fatalf("confirm calls = %d, want 1", got)
	}
	if n := notice(t, rec); n.Kind != flash.KindSuccess || n.Key != "flash.confirm.ok" {
		t.Errorf("notice = %+v", n)
	}
	key := actions.Key{Family: mission.FamilyMandat, ID: 42, Action: actions.Confirm}
	if st := e.h.Tracker().State(key); st != actions.Completed {
		t.Fatalf("state after success = %s", st)
	}

	// A second activation before the refetch is refused without a call.
	rec = e.postForm("/mandat/42/actions/confirm", confirmForm())
	expectRedirect(t, rec, "/mandat/en-attente-confirmation")
	if n := notice(t, rec); n.Key != "action.done" {
		t.Errorf("notice = %+v", n)
	}
	if got := e.api.count("POST /api/mandats/42/confirmer"); got != 1 {
		t.Fatalf("confirm calls = %d after refused retry", got)
	}

	rec = e.get("/mandat/en-attente-confirmation")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if got := e.api.count("GET /api/mandats/en-attente-confirmation"); got != 1 {
		t.Fatalf("list fetches = %d, want 1", got)
	}
	if st := e.h.Tracker().State(key); st != actions.Idle {
		t.Errorf("state after refetch = %s", st)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "MD-042") || !strings.Contains(body, `action="/mandat/42/actions/confirm"`) {
		t.Errorf("list misses the record or its control:\n%s", body)
	}
}

func TestActionRefusedWhilePending(t *testing.T) {
	e := newTestEnv(t, "ROLE_ADMIN")
	running := actions.Key{Family: mission.FamilyMandat, ID: 42, Action: actions.Reject}
	if err := e.h.Tracker().Begin(running); err != nil {
		t.Fatal(err)
	}

	rec := e.postForm("/mandat/42/actions/confirm", confirmForm())
	expectRedirect(t, rec, "/mandat/en-attente-confirmation")
	if n := notice(t, rec); n.Kind != flash.KindInfo || n.Key != "action.pending" {
		t.Errorf("notice = %+v", n)
	}
	if e.api.total() != 0 {
		t.Fatalf("backend called %d times", e.api.total())
	}

	e.api.lists["/api/mandats/en-attente-confirmation"] = []mission.Record{pendingMandat(42)}
	body := e.get("/mandat/en-attente-confirmation").Body.String()
	if !strings.Contains(body, `aria-busy="true"`) {
		t.Error("controls of a busy record must be disabled")
	}
}

func TestActionFailureKeepsControlIdle(t *testing.T) {
	e := newTestEnv(t, "ROLE_ADMIN")
	e.api.fail["POST /api/mandats/42/confirmer"] = http.StatusBadRequest
	e.api.message["POST /api/mandats/42/confirmer"] = "Quota dépassé pour Sara Alaoui : quota actuel 20 jours, quota après mission 25 jours"

	rec := e.postForm("/mandat/42/actions/confirm", confirmForm())
	expectRedirect(t, rec, "/mandat/en-attente-confirmation")
	n := notice(t, rec)
	if n.Kind != flash.KindError || !strings.Contains(n.Text, "Sara Alaoui : Quota exceeded") {
		t.Errorf("notice = %+v", n)
	}
	key := actions.Key{Family: mission.FamilyMandat, ID: 42, Action: actions.Confirm}
	if st := e.h.Tracker().State(key); st != actions.Idle {
		t.Errorf("state after failure = %s", st)
	}
}

func TestActionDeniedForRole(t *testing.T) {
	e := newTestEnv(t, "ROLE_AGENT")
	rec := e.postForm("/mandat/42/actions/confirm", confirmForm())
	expectRedirect(t, rec, "/mandat/en-attente-confirmation")
	if n := notice(t, rec); n.Key != "action.denied" {
		t.Errorf("notice = %+v", n)
	}
	if e.api.total() != 0 {
		t.Fatalf("backend called %d times", e.api.total())
	}
}

func TestActionKeepsFilters(t *testing.T) {
	e := newTestEnv(t, "ROLE_ADMIN")
	form := confirmForm()
	form.Set("return", "q=audit&bogus=1")
	rec := e.postForm("/mandat/42/actions/confirm", form)
	expectRedirect(t, rec, "/mandat/en-attente-confirmation?q=audit")
}

func TestListEmptyState(t *testing.T) {
	e := newTestEnv(t, "ROLE_ADMIN")
	e.api.lists["/api/mandats/acheves"] = []mission.Record{}

	rec := e.get("/mandat/acheves")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Nothing to display") {
		t.Errorf("empty state missing:\n%s", body)
	}
	if strings.Contains(body, "error-panel") {
		t.Error("an empty bucket is not an error")
	}
}

func TestListErrorPanel(t *testing.T) {
	e := newTestEnv(t, "ROLE_ADMIN")
	e.api.fail["GET /api/mandats/en-cours"] = http.StatusInternalServerError
	e.api.message["GET /api/mandats/en-cours"] = "Base indisponible"

	rec := e.get("/mandat/en-cours")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "error-panel") || !strings.Contains(body, "Base indisponible") {
		t.Errorf("error panel missing:\n%s", body)
	}
	if strings.Contains(body, "Nothing to display") {
		t.Error("a failed fetch must not look like an empty list")
	}
}

func TestListUnreachableBackend(t *testing.T) {
	e := newTestEnv(t, "ROLE_ADMIN")
	e.srv.Close()

	rec := e.get("/ordre/en-cours")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "cannot be reached") {
		t.Errorf("network message missing:\n%s", body)
	}
}

func TestListDeniedWithoutFetch(t *testing.T) {
	e := newTestEnv(t, "ROLE_AGENT")
	rec := e.get("/mandat/en-attente-confirmation")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Access denied") {
		t.Error("denied page expected")
	}
	if e.api.total() != 0 {
		t.Fatalf("backend called %d times", e.api.total())
	}
}

func TestListExpiredSession(t *testing.T) {
	e := newTestEnv(t, "ROLE_ADMIN")
	e.api.fail["GET /api/mandats/acheves"] = http.StatusUnauthorized

	rec := e.get("/mandat/acheves")
	expectRedirect(t, rec, "/login?next=%2Fmandat%2Facheves")
	if n := notice(t, rec); n.Key != "session.expired" {
		t.Errorf("notice = %+v", n)
	}
}

func TestUnknownPageIsNotFound(t *testing.T) {
	e := newTestEnv(t, "ROLE_ADMIN")
	if rec := e.get("/mandat/en-attente-justificatif"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
	if rec := e.get("/facture/en-cours"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestAnonymousIsSentToLogin(t *testing.T) {
	e := newTestEnv(t)
	expectRedirect(t, e.get("/mandat/en-cours"), "/login")
}

func TestLoginAndLogout(t *testing.T) {
	e := newTestEnv(t)
	rec := e.postForm("/login", url.Values{"username": {"sara"}, "password": {"secret"}, "next": {"/ordre/mes-ordres"}})
	expectRedirect(t, rec, "/ordre/mes-ordres")

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == e.sessions.CookieName() {
			session = c
		}
	}
	if session == nil {
		t.Fatal("no session cookie")
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(session)
	s, err := e.sessions.Parse(req)
	if err != nil || s.Token != "tok-login" || s.DisplayName() != "Sara Alaoui" || !s.HasRole("ADMIN") {
		t.Fatalf("session = %+v, %v", s, err)
	}

	rec = e.postForm("/logout", nil)
	expectRedirect(t, rec, "/login")
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == e.sessions.CookieName() && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("logout must clear the session cookie")
	}
}

func TestLoginRejected(t *testing.T) {
	e := newTestEnv(t)
	e.api.fail["POST /api/auth/login"] = http.StatusUnauthorized

	rec := e.postForm("/login", url.Values{"username": {"sara"}, "password": {"bad"}, "next": {"//evil.example"}})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Invalid credentials") || strings.Contains(body, "evil.example") {
		t.Errorf("unexpected login page:\n%s", body)
	}
}

func TestAttachmentBatch(t *testing.T) {
	e := newTestEnv(t, "ROLE_AGENT")
	e.api.records["/api/ordres-mission/7"] = mission.Record{
		ID:        7,
		Reference: "OM-007",
		Objectif:  "Déplacement Fès",
		Statut:    mission.StatusEnAttenteJustificatif,
	}

	rec := e.upload("/ordre/7/pending", map[string]string{"taxi.pdf": "receipt one"})
	expectRedirect(t, rec, "/ordre/7/pending")
	rec = e.upload("/ordre/7/pending", map[string]string{"hotel.pdf": "receipt two"})
	expectRedirect(t, rec, "/ordre/7/pending")
	if n := notice(t, rec); n.Key != "attach.added" {
		t.Errorf("notice = %+v", n)
	}
	if e.api.total() != 0 {
		t.Fatalf("staging must stay local, backend called %d times", e.api.total())
	}

	b := staging.Batch{OwnerID: 10, OrdreID: 7}
	files, err := e.store.List(context.Background(), b)
	if err != nil || len(files) != 2 {
		t.Fatalf("staged = %v, %v", files, err)
	}
	page := e.get("/ordre/7/pending").Body.String()
	if !strings.Contains(page, "taxi.pdf") || !strings.Contains(page, "hotel.pdf") {
		t.Errorf("pending page misses files:\n%s", page)
	}

	rec = e.postForm(fmt.Sprintf("/ordre/7/pending/%d/delete", files[0].ID), nil)
	expectRedirect(t, rec, "/ordre/7/pending")

	rec = e.postForm("/ordre/7/pending/submit", nil)
	expectRedirect(t, rec, "/ordre/en-attente-justificatif")
	if got := e.api.count("POST /api/ordres-mission/7/justificatifs"); got != 1 {
		t.Fatalf("upload requests = %d, want 1", got)
	}
	if len(e.api.uploads) != 1 || e.api.uploads[0] != "hotel.pdf" {
		t.Fatalf("uploaded = %v", e.api.uploads)
	}
	if left, _ := e.store.List(context.Background(), b); len(left) != 0 {
		t.Errorf("batch not cleared: %v", left)
	}
}

func TestAttachmentSubmitFailureKeepsBatch(t *testing.T) {
	e := newTestEnv(t, "ROLE_AGENT")
	e.api.fail["POST /api/ordres-mission/7/justificatifs"] = http.StatusBadRequest
	e.api.message["POST /api/ordres-mission/7/justificatifs"] = "Format non supporté"

	e.upload("/ordre/7/pending", map[string]string{"scan.png": "png"})
	rec := e.postForm("/ordre/7/pending/submit", nil)
	expectRedirect(t, rec, "/ordre/7/pending")
	if n := notice(t, rec); n.Kind != flash.KindError || n.Text != "Format non supporté" {
		t.Errorf("notice = %+v", n)
	}
	files, _ := e.store.List(context.Background(), staging.Batch{OwnerID: 10, OrdreID: 7})
	if len(files) != 1 {
		t.Errorf("batch must survive a failed upload, got %d files", len(files))
	}
}

func TestAttachmentsOnlyForOrdres(t *testing.T) {
	e := newTestEnv(t, "ROLE_ADMIN")
	if rec := e.get("/mandat/7/pending"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
	d := newTestEnv(t, "ROLE_DIRECTEUR")
	if rec := d.get("/ordre/7/pending"); rec.Code != http.StatusForbidden {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestCreateValidation(t *testing.T) {
	e := newTestEnv(t, "ROLE_GESTIONNAIRE")
	e.api.lists["/api/referentiel/users"] = []mission.Record{}
	e.api.lists["/api/referentiel/villes"] = []mission.Record{}
	e.api.lists["/api/referentiel/ressources"] = []mission.Record{}

	rec := e.postForm("/mandat/new", url.Values{
		"objectif":  {"Audit"},
		"dateDebut": {"2024-05-10"},
		"dateFin":   {"2024-05-01"},
		"users":     {"3"},
		"villes":    {"1"},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := e.api.count("POST /api/mandats"); got != 0 {
		t.Fatalf("invalid input reached the backend %d times", got)
	}
	if !strings.Contains(rec.Body.String(), "field-error") {
		t.Error("field errors missing")
	}
}

func TestCreateBackendIssues(t *testing.T) {
	e := newTestEnv(t, "ROLE_GESTIONNAIRE")
	e.api.lists["/api/referentiel/users"] = []mission.Record{}
	e.api.lists["/api/referentiel/villes"] = []mission.Record{}
	e.api.lists["/api/referentiel/ressources"] = []mission.Record{}
	e.api.fail["POST /api/mandats"] = http.StatusBadRequest
	e.api.message["POST /api/mandats"] = "La mission chevauche le mandat REF-010 qui se termine le 2024-05-12"

	form := url.Values{
		"objectif":  {"Audit"},
		"dateDebut": {"2024-05-10"},
		"dateFin":   {"2024-05-14"},
		"users":     {"3"},
		"villes":    {"1"},
	}
	rec := e.postForm("/mandat/new", form)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := e.api.count("POST /api/mandats"); got != 1 {
		t.Fatalf("create calls = %d", got)
	}
	if body := rec.Body.String(); !strings.Contains(body, "Overlaps another mission ending on 12/05/2024") {
		t.Errorf("overlap issue missing:\n%s", body)
	}

	delete(e.api.fail, "POST /api/mandats")
	rec = e.postForm("/mandat/new", form)
	expectRedirect(t, rec, "/mandat/mes-mandats")
}

func TestCreateDeniedForAgentOnMandat(t *testing.T) {
	e := newTestEnv(t, "ROLE_AGENT")
	if rec := e.get("/mandat/new"); rec.Code != http.StatusForbidden {
		t.Errorf("status = %d", rec.Code)
	}
	if e.api.total() != 0 {
		t.Fatalf("backend called %d times", e.api.total())
	}
}

func TestPDFDownload(t *testing.T) {
	e := newTestEnv(t, "ROLE_DIRECTEUR")
	rec := e.get("/mandat/5/pdf")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != "attachment; filename=MD-005.pdf" {
		t.Errorf("Content-Disposition = %q", got)
	}
	if rec.Body.String() != "%PDF-1.4" {
		t.Errorf("body = %q", rec.Body.String())
	}
	if got := e.api.count("GET /api/mandats/5/pdf"); got != 1 {
		t.Fatalf("pdf calls = %d", got)
	}
}
