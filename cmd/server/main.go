package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/sheet-viz/internal/config"
	"github.com/MKhiriev/sheet-viz/internal/handler"
	"github.com/MKhiriev/sheet-viz/internal/logger"
	"github.com/MKhiriev/sheet-viz/internal/server"
	"github.com/MKhiriev/sheet-viz/internal/service"
	"github.com/MKhiriev/sheet-viz/internal/store"
	"github.com/MKhiriev/sheet-viz/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("sheet-viz-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Warn().Err(err).Str("level", cfg.App.LogLevel).Msg("unknown log level, keeping debug")
	}

	log.Debug().Str("http_address", cfg.Server.HTTPAddress).Str("files_backend", cfg.Storage.Files.Backend).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if closeErr := storages.Close(); closeErr != nil {
			log.Err(closeErr).Msg("error closing storages")
		}
	}()

	services, err := service.NewServices(storages, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	ctx, cancel := context.WithCancel(context.Background())
	background := workers.New(
		workers.NewPresenceSweeper(storages.UserRepository, cfg.App.TokenDuration, cfg.Workers.PresenceSweepInterval, log),
	)
	workersDone := make(chan struct{})
	go func() {
		background.Run(ctx)
		close(workersDone)
	}()

	srv.RunServer()

	cancel()
	<-workersDone
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
