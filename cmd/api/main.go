package main

import (
	"context"
	_ "time/tzdata"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mufasadev/easypay-receipts/internal/app"
	"github.com/mufasadev/easypay-receipts/internal/config"
	"github.com/mufasadev/easypay-receipts/internal/di"
	"github.com/mufasadev/easypay-receipts/internal/errors"
	"github.com/mufasadev/easypay-receipts/internal/infrastructure/api/routers"
	"github.com/mufasadev/easypay-receipts/internal/infrastructure/database/db_client"
	"github.com/mufasadev/easypay-receipts/internal/infrastructure/database/repositories"
	"github.com/mufasadev/easypay-receipts/internal/infrastructure/mailer"
	"github.com/mufasadev/easypay-receipts/pkg/log"
)

const (
	appName = "easypay-receipts"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	opts := []log.LoggerOption{log.WithLogLevel(cfg.Log.Level), log.WithFileLogger(cfg.Log.File)}
	if cfg.Log.ConsoleEnabled() {
		opts = append(opts, log.WithConsoleLogger())
	}
	log.Init(appName, opts...)
	logger := log.GetLogger()

	transport, err := mailer.NewSMTPTransport(cfg.SMTP)
	if err != nil {
		logger.Fatal().Err(err).Msg(errors.ErrorFailedToCreateTransport)
	}

	var db *pgxpool.Pool
	if cfg.PostgreSQL.IsEnabled() {
		db, err = db_client.NewPGClient(cfg.PostgreSQL).Connect(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg(errors.ErrorFailedToConnectToTheDatabase)
		}
		defer db.Close()

		if err := repositories.NewDispatchRepositoryImpl(db).EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg(errors.ErrorFailedToConnectToTheDatabase)
		}
	} else {
		logger.Info().Msg("DB_ENABLED is false; receipt dispatches will not be recorded")
	}

	container := di.NewContainer(cfg, db, transport)

	if db != nil {
		purge := app.NewPurgeProcess(container.PurgeDispatchesInteractor, cfg.Retention.Every())
		go purge.Run(ctx)
	}

	router := routers.NewRouter(container, cfg.Server.Origins())
	service := app.NewService(cfg, container.ReceiptInteractor)
	service.Run(ctx, router)
}
