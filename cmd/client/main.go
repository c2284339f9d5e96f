package main

import (
	"github.com/MKhiriev/sheet-viz/internal/adapter"
	"github.com/MKhiriev/sheet-viz/internal/client"
	"github.com/MKhiriev/sheet-viz/internal/config"
	"github.com/MKhiriev/sheet-viz/internal/logger"
	"github.com/MKhiriev/sheet-viz/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewConsoleLogger("sheet-viz-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	buildInfo := models.NewAppBuildInfo(orNA(buildVersion), orNA(buildDate), orNA(buildCommit))

	app, err := client.NewApp(cfg, buildInfo, adapter.NewHTTPServerAdapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
