package session

import (
	"sort"
	"time"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/bikeflow/pkg/bikeshare"
	"github.com/travigo/bikeflow/pkg/dataimporter/manager"
	"github.com/travigo/bikeflow/pkg/traffic"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/slices"
)

// Flags are shared by every command that loads a data source.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "datasource",
			Value:   "bluebikes",
			Usage:   "identifier of the registered data source to load",
			EnvVars: []string{"BIKEFLOW_DATASOURCE"},
		},
		&cli.StringFlag{
			Name:    "window-policy",
			Value:   traffic.BucketWindowPolicyName,
			Usage:   "how filtered trips are selected: bucket or trip",
			EnvVars: []string{"BIKEFLOW_WINDOW_POLICY"},
		},
	}
}

// FromCLI builds an unloaded session from the shared flags.
func FromCLI(c *cli.Context) (*Session, error) {
	policy, err := traffic.ParseWindowPolicy(c.String("window-policy"))
	if err != nil {
		return nil, err
	}

	loader, err := manager.NewLoader(manager.DataSourcesDirectory(), c.String("datasource"))
	if err != nil {
		return nil, err
	}
	loader.Location = time.Local

	return New(loader, policy), nil
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "traffic",
		Usage: "Aggregate bike traffic from the command line",
		Subcommands: []*cli.Command{
			{
				Name:  "inspect",
				Usage: "Load a data source and print the busiest stations",
				Flags: append(Flags(),
					&cli.IntFlag{
						Name:  "time",
						Value: bikeshare.SliderUnset,
						Usage: "minute of the day to filter on, -1 for any time",
					},
					&cli.StringFlag{
						Name:  "where",
						Usage: "station query, eg. 'Departures > Arrivals'",
					},
					&cli.IntFlag{
						Name:  "top",
						Value: 10,
						Usage: "number of stations to print",
					},
				),
				Action: func(c *cli.Context) error {
					filter, err := bikeshare.FromSlider(c.Int("time"))
					if err != nil {
						return err
					}

					var query *traffic.StationQuery
					if where := c.String("where"); where != "" {
						query, err = traffic.CompileStationQuery(where)
						if err != nil {
							return err
						}
					}

					state, err := FromCLI(c)
					if err != nil {
						return err
					}
					state.Load(c.Context)

					update := state.SetFilter(filter)

					stationsTraffic := slices.Clone(update.Stations)
					if query != nil {
						stationsTraffic, err = query.Filter(stationsTraffic)
						if err != nil {
							return err
						}
					}

					sort.SliceStable(stationsTraffic, func(i, j int) bool {
						return stationsTraffic[i].TotalTraffic > stationsTraffic[j].TotalTraffic
					})
					if top := c.Int("top"); top >= 0 && len(stationsTraffic) > top {
						stationsTraffic = stationsTraffic[:top]
					}

					departures, arrivals := traffic.Totals(update.Stations)
					log.Info().
						Str("time", traffic.TimeLabel(filter)).
						Str("policy", state.Policy().Name()).
						Int("departures", departures).
						Int("arrivals", arrivals).
						Msg("Aggregated traffic")

					for _, stationTraffic := range stationsTraffic {
						pretty.Println(stationTraffic)
					}

					return nil
				},
			},
		},
	}
}
