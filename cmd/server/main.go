package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/diewo77/go-missions/auth"
	"github.com/diewo77/go-missions/internal/actions"
	"github.com/diewo77/go-missions/internal/backend"
	"github.com/diewo77/go-missions/internal/config"
	"github.com/diewo77/go-missions/internal/db"
	"github.com/diewo77/go-missions/internal/handlers"
	"github.com/diewo77/go-missions/internal/policy"
	"github.com/diewo77/go-missions/internal/staging"
	"github.com/diewo77/go-missions/view"
)

func main() {
	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	dbConn, err := db.Open(cfg.Database.DSN, cfg.Database.Postgres(), db.DefaultRetry, staging.Models()...)
	if err != nil {
		log.Fatalf("staging database: %v", err)
	}

	if cfg.App.Dev {
		view.SetDir("view")
	}

	sessions := auth.NewManager(auth.Options{
		Secret:     cfg.Session.Secret,
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.Session.Secure,
		TTL:        cfg.Session.TTL,
	})
	h := handlers.New(handlers.Deps{
		Backend:    backend.New(cfg.Backend.URL, cfg.Backend.Timeout),
		Sessions:   sessions,
		Authz:      policy.New(nil),
		Dispatcher: actions.NewDispatcher(actions.NewTracker(), log.Default()),
		Staging:    staging.NewStore(dbConn),
		MaxUpload:  cfg.App.MaxUploadSize,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      NewApp(cfg, h, sessions, dbConn),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("server port=%s backend=%s dev=%v", cfg.Server.Port, cfg.Backend.URL, cfg.App.Dev)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}
