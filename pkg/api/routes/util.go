package routes

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/bikeflow/pkg/bikeshare"
)

func parseTimeQuery(c *fiber.Ctx) (bikeshare.TimeFilter, error) {
	return bikeshare.ParseTimeFilter(c.Query("time"))
}

func parseFloatQuery(c *fiber.Ctx, key string, defaultValue float64) (float64, error) {
	value := c.Query(key)
	if value == "" {
		return defaultValue, nil
	}

	return strconv.ParseFloat(value, 64)
}

func sendError(c *fiber.Ctx, status int, message string) error {
	c.SendStatus(status)
	return c.JSON(fiber.Map{
		"error": message,
	})
}
