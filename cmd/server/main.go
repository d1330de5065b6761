package main

import (
	"context"
	"fmt"

	"github.com/bunpo-app/bunpo/internal/config"
	httphandler "github.com/bunpo-app/bunpo/internal/handler/http"
	"github.com/bunpo-app/bunpo/internal/logger"
	"github.com/bunpo-app/bunpo/internal/server"
	"github.com/bunpo-app/bunpo/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("bunpo-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	var db *store.DB
	switch cfg.Storage.DB.Driver {
	case "sqlite3":
		db, err = store.NewConnectSQLite(ctx, cfg.Storage.DB, log)
	default:
		db, err = store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error running migrations")
	}

	records := store.NewUserRecordRepository(db, log)
	handler := httphandler.NewHandler(records, cfg.App, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
