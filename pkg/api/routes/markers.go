package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/bikeflow/pkg/presentation"
	"github.com/travigo/bikeflow/pkg/session"
	"github.com/travigo/bikeflow/pkg/traffic"
)

func MarkersRouter(router fiber.Router, state *session.Session) {
	router.Get("/", getMarkers(state))
}

func parseViewport(c *fiber.Ctx) (presentation.WebMercator, error) {
	viewport := presentation.DefaultViewport()

	fields := []struct {
		key         string
		destination *float64
	}{
		{"lon", &viewport.CenterLongitude},
		{"lat", &viewport.CenterLatitude},
		{"zoom", &viewport.Zoom},
		{"width", &viewport.Width},
		{"height", &viewport.Height},
	}

	for _, field := range fields {
		value, err := parseFloatQuery(c, field.key, *field.destination)
		if err != nil {
			return viewport, fiber.NewError(fiber.StatusBadRequest, field.key+" must be a number")
		}

		*field.destination = value
	}

	return viewport, viewport.Validate()
}

func getMarkers(state *session.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter, err := parseTimeQuery(c)
		if err != nil {
			return sendError(c, fiber.StatusBadRequest, err.Error())
		}

		viewport, err := parseViewport(c)
		if err != nil {
			return sendError(c, fiber.StatusBadRequest, err.Error())
		}

		update := state.Traffic(filter)

		return c.JSON(fiber.Map{
			"time":      filter.SliderValue(),
			"timeLabel": traffic.TimeLabel(filter),
			"markers":   presentation.Layout(update.Stations, viewport, update.Scale),
		})
	}
}
