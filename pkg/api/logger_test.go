package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, statusLevel(fiber.StatusOK))
	assert.Equal(t, zerolog.WarnLevel, statusLevel(fiber.StatusNotFound))
	assert.Equal(t, zerolog.ErrorLevel, statusLevel(fiber.StatusInternalServerError))
}

func TestLoggerPassesErrorsThrough(t *testing.T) {
	app := fiber.New()
	app.Use(NewLogger())
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/teapot", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
}
