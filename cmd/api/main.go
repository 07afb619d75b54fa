package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/freshtrack/freshtrack-golang/internal/auth"
	"github.com/freshtrack/freshtrack-golang/internal/config"
	"github.com/freshtrack/freshtrack-golang/internal/handlers"
	"github.com/freshtrack/freshtrack-golang/internal/routes"
	"github.com/freshtrack/freshtrack-golang/internal/service"
	"github.com/freshtrack/freshtrack-golang/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := store.OpenMySQL(cfg.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to document store: %v", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(context.Background()); err != nil {
		log.Fatalf("Failed to prepare document store schema: %v", err)
	}

	ledger := service.NewLedger(db)
	recorder := service.NewRecorder(db, ledger)

	app := &handlers.Handlers{
		Ledger:   ledger,
		Recorder: recorder,
		Reports:  service.NewReports(ledger, recorder),
		Sharing:  service.NewMatcher(db, cfg.SharingScope),
		Accounts: service.NewAccounts(db),
		Tokens:   auth.NewTokens(cfg.JWTSecret),
	}

	router := routes.SetupRouter(app)

	log.Printf("Starting FreshTrack API server on port %s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
