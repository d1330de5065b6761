package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/bunpo-app/bunpo/internal/adapter"
	"github.com/bunpo-app/bunpo/internal/config"
	"github.com/bunpo-app/bunpo/internal/logger"
	"github.com/bunpo-app/bunpo/internal/service"
	"github.com/bunpo-app/bunpo/internal/session"
	"github.com/bunpo-app/bunpo/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("bunpo-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	remote, err := adapter.NewHTTPRemoteStore(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create remote adapter")
	}

	local, err := store.NewLocalStore(cfg.Storage.Local.Path, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	tracker := session.NewTracker(log)
	services := service.NewClientServices(local, remote, tracker, cfg.Sync, log)
	defer services.Close()

	// The app shell normally drives sign-in through the identity provider;
	// the standalone binary takes the account from the environment so the
	// sync engine can run headless.
	if userID, ok := userIDFromEnv(); ok {
		tracker.SignIn(userID)
	} else {
		log.Info().Msg("BUNPO_USER_ID not set, starting signed out")
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	<-ctx.Done()
	log.Info().Msg("client shutting down")
}

func userIDFromEnv() (int64, bool) {
	raw := os.Getenv("BUNPO_USER_ID")
	if raw == "" {
		return 0, false
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		return 0, false
	}

	return userID, true
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
