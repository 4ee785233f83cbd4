package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/frotaops/fleetledger/internal/auth"
	"github.com/frotaops/fleetledger/internal/category"
	categoryStore "github.com/frotaops/fleetledger/internal/category/store"
	"github.com/frotaops/fleetledger/internal/config"
	"github.com/frotaops/fleetledger/internal/database"
	"github.com/frotaops/fleetledger/internal/export"
	fleetHttp "github.com/frotaops/fleetledger/internal/http"
	authHandler "github.com/frotaops/fleetledger/internal/http/auth"
	categoryHandler "github.com/frotaops/fleetledger/internal/http/category"
	exportHandler "github.com/frotaops/fleetledger/internal/http/export"
	ledgerHandler "github.com/frotaops/fleetledger/internal/http/ledger"
	partyHandler "github.com/frotaops/fleetledger/internal/http/party"
	methodHandler "github.com/frotaops/fleetledger/internal/http/paymentmethod"
	"github.com/frotaops/fleetledger/internal/ledger"
	ledgerStore "github.com/frotaops/fleetledger/internal/ledger/store"
	"github.com/frotaops/fleetledger/internal/party"
	partyStore "github.com/frotaops/fleetledger/internal/party/store"
	"github.com/frotaops/fleetledger/internal/paymentmethod"
	methodStore "github.com/frotaops/fleetledger/internal/paymentmethod/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found")
	}

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

	if err := database.Migrate(cfg.ConnectionString()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	locale, err := language.Parse(cfg.App.Locale)
	if err != nil {
		slog.Error("failed to parse locale", "locale", cfg.App.Locale, "error", err)
		os.Exit(1)
	}

	var (
		authService     = auth.NewService(cfg.Auth.Secret, cfg.Auth.User, cfg.Auth.Password)
		categoryService = category.NewService(categoryStore.New(db))
		partyService    = party.NewService(partyStore.New(db))
		methodService   = paymentmethod.NewService(methodStore.New(db))
		ledgerService   = ledger.NewService(ledgerStore.New(db), categoryService, locale)
		exportService   = export.NewService(ledgerService, export.Resolver{
			Categories: categoryService,
			Parties:    partyService,
		})
	)

	var (
		authH     = authHandler.NewHandler(authService)
		ledgerH   = ledgerHandler.NewHandler(ledgerService)
		categoryH = categoryHandler.NewHandler(categoryService)
		partyH    = partyHandler.NewHandler(partyService)
		methodH   = methodHandler.NewHandler(methodService)
		exportH   = exportHandler.NewHandler(exportService)
	)

	router := fleetHttp.New(authService, cfg.Server.AllowedOrigins,
		authH, ledgerH, categoryH, partyH, methodH, exportH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
