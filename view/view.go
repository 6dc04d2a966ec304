// Package view renders the dashboard pages: a shared layout, a few partials
// and one template file per page.
package view

import (
	"bytes"
	"crypto/sha1"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/diewo77/go-missions/auth"
	"github.com/diewo77/go-missions/i18n"
	"github.com/diewo77/go-missions/internal/flash"
	"github.com/diewo77/go-missions/internal/listview"
	"github.com/diewo77/go-missions/internal/mission"
)

//go:embed templates static
var embedded embed.FS

// NavLink is one menu entry.
type NavLink struct {
	Label  string
	Href   string
	Active bool
}

// NavGroup is a titled block of menu entries.
type NavGroup struct {
	Label string
	Links []NavLink
}

var (
	mu       sync.RWMutex
	source   fs.FS = embedded
	dev      bool
	currency = "DH"
	tplCache = map[string]*template.Template{}

	assetMu     sync.Mutex
	assetHashes = map[string]string{}

	themeResolver = func(_ *http.Request) string { return "system" }
	navResolver   = func(_ *http.Request) []NavGroup { return nil }
)

// SetDir reads templates and static files from dir on every render instead
// of the embedded copies. Used in DEV mode.
func SetDir(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if dir == "" {
		source, dev = embedded, false
	} else {
		source, dev = os.DirFS(dir), true
	}
	tplCache = map[string]*template.Template{}
}

// SetCurrency sets the label appended to amounts.
func SetCurrency(c string) {
	if c != "" {
		currency = c
	}
}

// Currency returns the amount label.
func Currency() string { return currency }

// SetThemeResolver allows the host app to provide a custom theme resolver.
func SetThemeResolver(f func(*http.Request) string) {
	if f != nil {
		themeResolver = f
	}
}

// SetNavResolver provides the menu of the current user.
func SetNavResolver(f func(*http.Request) []NavGroup) {
	if f != nil {
		navResolver = f
	}
}

// Funcs returns the template helpers bound to the request language.
func Funcs(r *http.Request) template.FuncMap {
	lang := i18n.LangFrom(r.Context())
	return template.FuncMap{
		"t":     func(code string) string { return i18n.T(lang, code) },
		"tf":    func(code string, args ...any) string { return i18n.Tf(lang, code, args...) },
		"lang":  func() string { return lang },
		"theme": func() string { return themeResolver(r) },
		"badge": func(f mission.Family, s mission.Status) template.HTML {
			return listview.BadgeHTML(lang, f, s)
		},
		"date":  mission.FormatDate,
		"dates": listview.DateRange,
		"days":  func(n int) string { return i18n.FormatDays(lang, n) },
		"money": func(v *float64) string {
			if v == nil {
				return ""
			}
			return i18n.FormatMoney(lang, *v, currency)
		},
		"truncate": listview.Truncate,
		"year":     func() int { return time.Now().Year() },
		"asset":    asset,
		"has": func(ids []uint, id uint) bool {
			for _, v := range ids {
				if v == id {
					return true
				}
			}
			return false
		},
		// dict creates a map from key-value pairs for passing to sub-templates.
		// Usage: {{ template "partial" (dict "Key1" val1 "Key2" val2) }}
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

// Render writes a page with status 200.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	return RenderStatus(w, r, http.StatusOK, name, data)
}

// RenderStatus writes a page wrapped in the layout. Nothing is written when
// the template fails, so callers can still answer with an error page.
func RenderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) error {
	t, err := load(name)
	if err != nil {
		return err
	}
	t, err = t.Clone()
	if err != nil {
		return err
	}
	t.Funcs(Funcs(r))

	if data == nil {
		data = map[string]any{}
	}
	s, loggedIn := auth.FromContext(r.Context())
	defaults := map[string]any{
		"Year":       time.Now().Year(),
		"IsLoggedIn": loggedIn,
		"User":       s,
		"Lang":       i18n.LangFrom(r.Context()),
		"Nav":        navResolver(r),
		"Path":       r.URL.Path,
	}
	for k, v := range defaults {
		if _, ok := data[k]; !ok {
			data[k] = v
		}
	}
	if _, ok := data["Flash"]; !ok {
		if n, ok := flash.ReadAndClear(w, r); ok {
			data["Flash"] = map[string]any{"Kind": string(n.Kind), "Message": n.Message(data["Lang"].(string))}
		}
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}

// Must renders and falls back to a bare 500 when the page itself fails.
func Must(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	if err := RenderStatus(w, r, status, name, data); err != nil {
		log.Printf("view name=%s err=%v", name, err)
		http.Error(w, i18n.T(i18n.LangFrom(r.Context()), "error.generic"), http.StatusInternalServerError)
	}
}

func load(name string) (*template.Template, error) {
	mu.RLock()
	t, ok := tplCache[name]
	src, reload := source, dev
	mu.RUnlock()
	if ok && !reload {
		return t, nil
	}

	files := []string{"templates/layout.html"}
	partials, err := fs.Glob(src, "templates/partials/*.html")
	if err != nil {
		return nil, err
	}
	files = append(files, partials...)
	files = append(files, path.Join("templates", name))

	// Helpers are rebound per request; these placeholders only satisfy parsing.
	t, err = template.New(name).Funcs(Funcs(&http.Request{})).ParseFS(src, files...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	if !reload {
		mu.Lock()
		tplCache[name] = t
		mu.Unlock()
	}
	return t, nil
}

// Static serves the stylesheet and scripts.
func Static() http.Handler {
	mu.RLock()
	src := source
	mu.RUnlock()
	sub, err := fs.Sub(src, "static")
	if err != nil {
		return http.NotFoundHandler()
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// asset returns /static/<name>?v=<hash> for cache busting.
func asset(rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	mu.RLock()
	src, reload := source, dev
	mu.RUnlock()
	assetMu.Lock()
	defer assetMu.Unlock()
	if h, ok := assetHashes[rel]; ok && !reload {
		return "/static/" + rel + "?v=" + h
	}
	b, err := fs.ReadFile(src, path.Join("static", rel))
	if err != nil {
		return "/static/" + rel
	}
	sum := sha1.Sum(b)
	h := fmt.Sprintf("%x", sum[:8])
	assetHashes[rel] = h
	return "/static/" + rel + "?v=" + h
}
