package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/bikeflow/pkg/api"
	"github.com/travigo/bikeflow/pkg/dataimporter"
	"github.com/travigo/bikeflow/pkg/presentation"
	"github.com/travigo/bikeflow/pkg/session"
	"github.com/travigo/bikeflow/pkg/util"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("BIKEFLOW_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("BIKEFLOW_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	location, err := util.SetupTimeZone()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load time zone")
	}
	log.Debug().Str("timezone", location.String()).Msg("Using local time zone")

	app := &cli.App{
		Name:        "bikeflow",
		Description: "Bike share station traffic by time of day",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			session.RegisterCLI(),
			dataimporter.RegisterCLI(),
			presentation.RegisterCLI(),
		},
	}

	err = app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
