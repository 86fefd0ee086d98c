package dataimporter

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/bikeflow/pkg/dataimporter/manager"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "data-importer",
		Usage: "Inspect and fetch the registered bike share datasets",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the registered data sources and their datasets",
				Action: func(c *cli.Context) error {
					registered, err := manager.GetRegisteredDataSources(manager.DataSourcesDirectory())
					if err != nil {
						return err
					}

					for _, datasource := range registered {
						fmt.Printf("%s (%s, %s)\n", datasource.Identifier, datasource.Provider.Name, datasource.Region)

						for _, dataset := range datasource.Datasets {
							fmt.Printf("  %-40s %-22s %s\n", dataset.Identifier, dataset.Format, dataset.Source)
						}
					}

					return nil
				},
			},
			{
				Name:  "dataset",
				Usage: "Fetch and parse a single dataset",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "ID of the dataset, eg. bluebikes-stations",
						Required: true,
					},
					&cli.DurationFlag{
						Name:  "repeat-every",
						Usage: "Repeat the fetch every interval",
					},
				},
				Action: func(c *cli.Context) error {
					dataset, err := manager.GetDataset(manager.DataSourcesDirectory(), c.String("id"))
					if err != nil {
						return err
					}

					repeatDuration := c.Duration("repeat-every")

					for {
						startTime := time.Now()

						records, skipped, err := manager.CheckDataset(c.Context, dataset, time.Local)
						if err != nil {
							return err
						}

						executionDuration := time.Since(startTime)
						log.Info().
							Str("id", dataset.Identifier).
							Int("records", records).
							Int("skipped", skipped).
							Msgf("Operation took %s", executionDuration.String())

						if repeatDuration <= 0 {
							break
						}

						waitTime := repeatDuration - executionDuration

						if waitTime.Seconds() > 0 {
							select {
							case <-c.Context.Done():
								return nil
							case <-time.After(waitTime):
							}
						}
					}

					return nil
				},
			},
		},
	}
}
