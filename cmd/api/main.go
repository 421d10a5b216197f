package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/dsilveira/tally/internal/budget"
	budgetStore "github.com/dsilveira/tally/internal/budget/store"
	"github.com/dsilveira/tally/internal/category"
	categoryStore "github.com/dsilveira/tally/internal/category/store"
	"github.com/dsilveira/tally/internal/config"
	"github.com/dsilveira/tally/internal/database"
	tallyHttp "github.com/dsilveira/tally/internal/http"
	budgetHandler "github.com/dsilveira/tally/internal/http/budget"
	categoryHandler "github.com/dsilveira/tally/internal/http/categorymap"
	importHandler "github.com/dsilveira/tally/internal/http/importcsv"
	reportHandler "github.com/dsilveira/tally/internal/http/report"
	txHandler "github.com/dsilveira/tally/internal/http/transaction"
	"github.com/dsilveira/tally/internal/importer"
	"github.com/dsilveira/tally/internal/ledger"
	ledgerStore "github.com/dsilveira/tally/internal/ledger/store"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.Open(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		ledgerService   = ledger.NewService(ledgerStore.New(db))
		budgetService   = budget.NewService(budgetStore.New(db))
		categoryService = category.NewService(categoryStore.New(db))
		statementParser = importer.NewParser()
	)

	var (
		transactionH = txHandler.NewHandler(ledgerService)
		budgetH      = budgetHandler.NewHandler(budgetService)
		reportH      = reportHandler.NewHandler(ledgerService, budgetService)
		importH      = importHandler.NewHandler(statementParser, ledgerService, categoryService)
		categoryH    = categoryHandler.NewHandler(categoryService)
	)

	router := tallyHttp.New(transactionH, budgetH, reportH, importH, categoryH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	server := &http.Server{
		Addr:         port,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
