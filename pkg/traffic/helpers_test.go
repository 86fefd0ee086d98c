package traffic

import (
	"time"

	"github.com/travigo/bikeflow/pkg/bikeshare"
)

func clockAt(minute int) time.Time {
	return time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(minute) * time.Minute)
}

func tripAt(start string, end string, departure int, arrival int) bikeshare.Trip {
	return bikeshare.Trip{
		StartStationID: start,
		EndStationID:   end,
		StartedAt:      clockAt(departure),
		EndedAt:        clockAt(arrival),
	}
}

func testStations(ids ...string) []bikeshare.Station {
	stations := make([]bikeshare.Station, 0, len(ids))
	for i, id := range ids {
		stations = append(stations, bikeshare.Station{
			ID:        id,
			Name:      "Station " + id,
			Longitude: -71.1 + float64(i)/100,
			Latitude:  42.36,
			Capacity:  10 + i,
		})
	}

	return stations
}

func mustFilter(minute int) bikeshare.TimeFilter {
	filter, err := bikeshare.AtMinute(minute)
	if err != nil {
		panic(err)
	}

	return filter
}
