package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/bikeflow/pkg/traffic"
)

func TimeLabelRoute(c *fiber.Ctx) error {
	filter, err := parseTimeQuery(c)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(fiber.Map{
		"time":    filter.SliderValue(),
		"label":   traffic.TimeLabel(filter),
		"anyTime": !filter.IsSet(),
	})
}
