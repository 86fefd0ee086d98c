package presentation

import (
	"context"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/bikeflow/pkg/bikeshare"
	"github.com/travigo/bikeflow/pkg/session"
	"github.com/urfave/cli/v2"
)

// RenderMarkers follows a map client: the adapter starts on the default
// view, picks up the load and the filter, then the viewport moves.
func RenderMarkers(ctx context.Context, state *session.Session, viewport WebMercator, filter bikeshare.TimeFilter) ([]Marker, error) {
	if err := viewport.Validate(); err != nil {
		return nil, err
	}

	notifier := NewViewportNotifier()
	adapter := NewAdapter(state, notifier, DefaultViewport(), func(markers []Marker) {
		log.Debug().Int("markers", len(markers)).Msg("Rendered markers")
	})
	defer adapter.Close()

	state.Load(ctx)
	state.SetFilter(filter)
	notifier.ViewportChanged(viewport)

	return adapter.Markers(), nil
}

func RegisterCLI() *cli.Command {
	defaults := DefaultViewport()

	return &cli.Command{
		Name:  "markers",
		Usage: "Lay out station markers for a map viewport",
		Subcommands: []*cli.Command{
			{
				Name:  "render",
				Usage: "Load a data source and print the marker layout",
				Flags: append(session.Flags(),
					&cli.IntFlag{
						Name:  "time",
						Value: bikeshare.SliderUnset,
						Usage: "minute of the day to filter on, -1 for any time",
					},
					&cli.Float64Flag{Name: "lon", Value: defaults.CenterLongitude, Usage: "viewport centre longitude"},
					&cli.Float64Flag{Name: "lat", Value: defaults.CenterLatitude, Usage: "viewport centre latitude"},
					&cli.Float64Flag{Name: "zoom", Value: defaults.Zoom, Usage: "viewport zoom level"},
					&cli.Float64Flag{Name: "width", Value: defaults.Width, Usage: "viewport width in pixels"},
					&cli.Float64Flag{Name: "height", Value: defaults.Height, Usage: "viewport height in pixels"},
				),
				Action: func(c *cli.Context) error {
					filter, err := bikeshare.FromSlider(c.Int("time"))
					if err != nil {
						return err
					}

					state, err := session.FromCLI(c)
					if err != nil {
						return err
					}

					markers, err := RenderMarkers(c.Context, state, WebMercator{
						CenterLongitude: c.Float64("lon"),
						CenterLatitude:  c.Float64("lat"),
						Zoom:            c.Float64("zoom"),
						Width:           c.Float64("width"),
						Height:          c.Float64("height"),
					}, filter)
					if err != nil {
						return err
					}

					for _, marker := range markers {
						pretty.Println(marker)
					}

					return nil
				},
			},
		},
	}
}
