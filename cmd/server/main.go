package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/vitalyzotov/gpb-module/internal/config"
	"github.com/vitalyzotov/gpb-module/internal/database"
	directoryStore "github.com/vitalyzotov/gpb-module/internal/directory/store"
	gpbHttp "github.com/vitalyzotov/gpb-module/internal/http"
	statementsHandler "github.com/vitalyzotov/gpb-module/internal/http/statements"
	ledgerStore "github.com/vitalyzotov/gpb-module/internal/ledger/store"
	"github.com/vitalyzotov/gpb-module/internal/reconcile"
	"github.com/vitalyzotov/gpb-module/internal/statement"
	statementStore "github.com/vitalyzotov/gpb-module/internal/statement/store"
)

func main() {
	// Optional .env for local runs; real deployments set the environment.
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

	stmtStore, err := statementStore.New(cfg.Statements.Dir, statement.NewParser())
	if err != nil {
		slog.Error("failed to open statement store", "dir", cfg.Statements.Dir, "error", err)
		os.Exit(1)
	}

	var (
		directory    = directoryStore.New(db)
		ledgerSvc    = ledgerStore.New(db)
		reconcileSvc = reconcile.NewService(stmtStore, ledgerSvc, directory, directory, cfg.Statements.SkipAccounts)
	)

	statementsH := statementsHandler.NewHandler(stmtStore, reconcileSvc)
	router := gpbHttp.New(statementsH)

	go runScheduler(context.Background(), reconcileSvc, cfg.Statements.InitialDelay, cfg.Statements.Interval)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// runScheduler periodically sweeps the statement directory for unprocessed
// files, the same way the statements land there: out of band.
func runScheduler(ctx context.Context, svc *reconcile.Service, initialDelay, interval time.Duration) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(initialDelay):
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := svc.ProcessNewStatements(ctx); err != nil {
			slog.Error("batch processing failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
