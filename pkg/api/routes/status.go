package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/bikeflow/pkg/session"
)

func StatusRoute(state *session.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snapshot := state.Snapshot()

		return c.JSON(fiber.Map{
			"policy":   state.Policy().Name(),
			"loadedAt": snapshot.LoadedAt.Format(time.RFC3339),
			"datasets": []session.DatasetStatus{
				snapshot.StationsStatus,
				snapshot.TripsStatus,
			},
		})
	}
}
