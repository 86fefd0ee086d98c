package util

import (
	"time"
)

const defaultTimeZone = "America/New_York"

// SetupTimeZone overwrites time.Local so trip timestamps without an offset
// are read as the bike network's wall clock.
func SetupTimeZone() (*time.Location, error) {
	name := defaultTimeZone

	env := GetEnvironmentVariables()
	if env["BIKEFLOW_TIMEZONE"] != "" {
		name = env["BIKEFLOW_TIMEZONE"]
	}

	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}

	time.Local = location

	return location, nil
}
