package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvironmentVariables(t *testing.T) {
	t.Setenv("BIKEFLOW_TEST_VALUE", "a=b")

	env := GetEnvironmentVariables()
	assert.Equal(t, "a=b", env["BIKEFLOW_TEST_VALUE"])
}

func TestSetupTimeZone(t *testing.T) {
	previous := time.Local
	t.Cleanup(func() { time.Local = previous })

	t.Setenv("BIKEFLOW_TIMEZONE", "Europe/London")
	location, err := SetupTimeZone()
	require.NoError(t, err)
	assert.Equal(t, "Europe/London", location.String())
	assert.Equal(t, location, time.Local)

	t.Setenv("BIKEFLOW_TIMEZONE", "Nowhere/Special")
	_, err = SetupTimeZone()
	assert.Error(t, err)
}
