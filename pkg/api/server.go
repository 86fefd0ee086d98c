package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/bikeflow/pkg/api/routes"
	"github.com/travigo/bikeflow/pkg/session"
)

// NewApp wires the routes. trafficCache may be nil.
func NewApp(state *session.Session, trafficCache routes.TrafficCache) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)
	group.Get("status", routes.StatusRoute(state))
	group.Get("time_label", routes.TimeLabelRoute)

	routes.StationsRouter(group.Group("/stations"), state)
	routes.TrafficRouter(group.Group("/traffic"), state, trafficCache)
	routes.MarkersRouter(group.Group("/markers"), state)

	return webApp
}

func SetupServer(listen string, state *session.Session, trafficCache routes.TrafficCache) error {
	webApp := NewApp(state, trafficCache)

	return webApp.Listen(listen)
}
