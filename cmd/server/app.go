package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"gorm.io/gorm"

	"github.com/diewo77/go-missions/auth"
	"github.com/diewo77/go-missions/httpx"
	"github.com/diewo77/go-missions/internal/config"
	"github.com/diewo77/go-missions/internal/handlers"
	"github.com/diewo77/go-missions/internal/middleware"
	"github.com/diewo77/go-missions/view"
)

// App is the main application handler.
type App struct {
	router   chi.Router
	handlers *handlers.Handler
	sessions *auth.Manager
	db       *gorm.DB
}

// NewApp wires the global middleware, static files, health and the
// dashboard routes.
func NewApp(cfg *config.Config, h *handlers.Handler, sessions *auth.Manager, db *gorm.DB) *App {
	app := &App{
		router:   chi.NewRouter(),
		handlers: h,
		sessions: sessions,
		db:       db,
	}
	view.SetCurrency(cfg.App.Currency)
	view.SetThemeResolver(middleware.ThemeFrom)
	view.SetNavResolver(h.Nav)
	app.setupRoutes(cfg)
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

func (a *App) setupRoutes(cfg *config.Config) {
	r := a.router
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger)
	if len(cfg.App.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.App.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
		}))
	}

	r.Get("/health", httpx.Health(map[string]httpx.Check{"staging": a.pingDB}))
	r.Handle("/static/*", view.Static())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Prefs)
		r.Use(a.sessions.Middleware)
		a.handlers.Mount(r)
	})
}

func (a *App) pingDB(ctx context.Context) error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
