package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/royaltyx/royaltyx-api/infrastructure/database/postgres"
	"github.com/royaltyx/royaltyx-api/infrastructure/repository"
	"github.com/royaltyx/royaltyx-api/internal/api"
	"github.com/royaltyx/royaltyx-api/internal/config"
	"github.com/royaltyx/royaltyx-api/internal/scheduler"
	"github.com/royaltyx/royaltyx-api/internal/usecases/analyzing"
	"github.com/royaltyx/royaltyx-api/internal/usecases/authenticating"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func main() {
	configureLogger()

	// amounts leave the API as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("invalid log level %q, falling back to info", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("log level set to %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	saleRepo := repository.NewSaleRepository(pgConn)
	impressionRepo := repository.NewImpressionRepository(pgConn)
	productRepo := repository.NewProductRepository(pgConn)
	importFileRepo := repository.NewImportFileRepository(pgConn)

	authenticator := authenticating.NewService(cfg)
	analyzer := analyzing.NewService(cfg, saleRepo, impressionRepo, productRepo)

	recordPurgeService := scheduler.NewRecordPurgeService(importFileRepo, cfg)
	if err := recordPurgeService.Start(ctx); err != nil {
		logrus.WithError(err).Error("failed to start record purge scheduler")
	}

	server, err := api.New(cfg, pgConn, analyzer, authenticator, recordPurgeService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to postgres")
	}

	logrus.Info("postgres connection established")
	return conn
}
