package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/artha/internal/auth"
	authStore "github.com/MrJamesThe3rd/artha/internal/auth/store"
	"github.com/MrJamesThe3rd/artha/internal/config"
	"github.com/MrJamesThe3rd/artha/internal/database"
	"github.com/MrJamesThe3rd/artha/internal/export"
	arthaHttp "github.com/MrJamesThe3rd/artha/internal/http"
	authHandler "github.com/MrJamesThe3rd/artha/internal/http/auth"
	exportHandler "github.com/MrJamesThe3rd/artha/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/artha/internal/http/importcsv"
	ledgerHandler "github.com/MrJamesThe3rd/artha/internal/http/ledger"
	matchingHandler "github.com/MrJamesThe3rd/artha/internal/http/matching"
	portfolioHandler "github.com/MrJamesThe3rd/artha/internal/http/portfolio"
	stateHandler "github.com/MrJamesThe3rd/artha/internal/http/statesync"
	"github.com/MrJamesThe3rd/artha/internal/importer"
	"github.com/MrJamesThe3rd/artha/internal/matching"
	stateStore "github.com/MrJamesThe3rd/artha/internal/state/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		states          = stateStore.New(db)
		authService     = auth.NewService(authStore.New(db), cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		importService   = importer.NewService(cfg.Import.DateFallback)
		exportService   = export.NewService()
		matchingService = matching.NewService()
	)

	var (
		authH      = authHandler.NewHandler(authService)
		ledgerH    = ledgerHandler.NewHandler(states)
		portfolioH = portfolioHandler.NewHandler(states)
		importH    = importHandler.NewHandler(importService, states)
		exportH    = exportHandler.NewHandler(exportService, states)
		matchingH  = matchingHandler.NewHandler(matchingService, states)
		stateH     = stateHandler.NewHandler(states)
	)

	router := arthaHttp.New(authService, authH, ledgerH, portfolioH, importH, exportH, matchingH, stateH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
