package traffic

import (
	"fmt"
	"time"

	"github.com/travigo/bikeflow/pkg/bikeshare"
)

// FormatTime renders a minute of the day as a short US clock time, eg. "1:05 PM".
func FormatTime(minute int) string {
	clock := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(minute) * time.Minute)

	return clock.Format("3:04 PM")
}

// TimeLabel is empty for "any time".
func TimeLabel(filter bikeshare.TimeFilter) string {
	minute, set := filter.Minute()
	if !set {
		return ""
	}

	return FormatTime(minute)
}

func StationTitle(stationTraffic bikeshare.StationTraffic) string {
	return fmt.Sprintf("%d trips (%d departures, %d arrivals)", stationTraffic.TotalTraffic, stationTraffic.Departures, stationTraffic.Arrivals)
}
