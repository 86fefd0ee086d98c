package api

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/travigo/bikeflow/pkg/api/routes"
	"github.com/travigo/bikeflow/pkg/redis_client"
	"github.com/travigo/bikeflow/pkg/session"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the bike traffic web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: append(session.Flags(),
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.DurationFlag{
						Name:  "refresh-every",
						Usage: "reload the datasets every interval (0 disables)",
					},
				),
				Action: func(c *cli.Context) error {
					state, err := session.FromCLI(c)
					if err != nil {
						return err
					}

					var trafficCache routes.TrafficCache
					err = redis_client.Connect()
					switch {
					case errors.Is(err, redis_client.ErrNotConfigured):
						log.Info().Msg("Skipping Redis setup, traffic responses will not be cached")
					case err != nil:
						return err
					default:
						trafficCache = NewTrafficCache(redis_client.Client)
					}

					ctx, cancel := context.WithCancel(c.Context)
					defer cancel()

					state.Load(ctx)

					if refreshEvery := c.Duration("refresh-every"); refreshEvery > 0 {
						go state.RefreshEvery(ctx, refreshEvery)
					}

					return SetupServer(c.String("listen"), state, trafficCache)
				},
			},
		},
	}
}
