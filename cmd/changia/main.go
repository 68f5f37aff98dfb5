package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"changia/internal/amqp"
	"changia/internal/cli"
	"changia/internal/core"
	gexport "changia/internal/export/google"
	apphttp "changia/internal/http"
	"changia/internal/ledger"
	ledgermem "changia/internal/ledger/memory"
	applog "changia/internal/log"
	"changia/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	var (
		groups  ledger.GroupStore
		lister  ledger.ContributionLister
		creator apphttp.ContributionCreator
		writer  ledger.ContributionWriter
		closeFn func()
	)

	switch cfg.DataBackend {
	case "sqlite":
		repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)

		// AMQP hands saved records off to the export worker. The service
		// degrades to local-only persistence when the broker is unreachable.
		var amqpClient *amqp.Client
		if cfg.AMQPURL != "" {
			var err error
			amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
			if err != nil {
				logger.Warn("AMQP unavailable, contributions will sync on worker sweep", "error", err)
				amqpClient = nil
			}
		}

		svc := services.NewContributionService(repo, amqpClient)
		groups, lister, creator, writer = repo, repo, svc, repo
		closeFn = func() {
			if err := svc.Close(); err != nil {
				logger.Error("Service close error", "error", err)
			}
		}
		logger.Info("Initialized SQLite backend", "path", cfg.SQLiteDBPath)
	default:
		store := ledgermem.New()
		groups, lister, writer = store, store, store
		creator = memCreator{store}
		closeFn = func() {}
		logger.Info("Initialized memory backend")
	}

	mapping, err := cfg.ColumnMapping()
	if err != nil {
		logger.Error("Invalid import column mapping", "error", err)
		os.Exit(1)
	}
	importer := services.NewImportService(writer, mapping)

	// On-demand table export is optional; without credentials the endpoint
	// reports the backend as unavailable.
	deps := apphttp.Deps{
		Groups:   groups,
		Lister:   lister,
		Creator:  creator,
		Importer: importer,
	}
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gexport.NewFromEnv(context.Background())
		if err != nil {
			logger.Warn("Google Sheets export disabled", "error", err)
		} else {
			deps.Tables = client
			logger.Info("Google Sheets export enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
		}
	}

	srv := apphttp.NewServer(":"+cfg.Port, deps)
	srv.Handler = applog.Middleware(logger.WithComponent(applog.ComponentHTTP))(srv.Handler)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		closeFn()
	})

	logger.Info("Starting changia server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}

// memCreator satisfies the creator port for the memory backend, where there
// is no AMQP hand-off.
type memCreator struct {
	store *ledgermem.Store
}

func (c memCreator) CreateContribution(ctx context.Context, rec core.Contribution) (string, error) {
	return c.store.Append(ctx, rec)
}
