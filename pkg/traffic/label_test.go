package traffic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/travigo/bikeflow/pkg/bikeshare"
)

func TestFormatTime(t *testing.T) {
	tests := map[int]string{
		0:    "12:00 AM",
		65:   "1:05 AM",
		720:  "12:00 PM",
		785:  "1:05 PM",
		1439: "11:59 PM",
	}

	for minute, expected := range tests {
		assert.Equal(t, expected, FormatTime(minute))
	}
}

func TestTimeLabel(t *testing.T) {
	assert.Equal(t, "", TimeLabel(bikeshare.Unset))
	assert.Equal(t, "8:00 AM", TimeLabel(mustFilter(480)))
}

func TestStationTitle(t *testing.T) {
	stationTraffic := bikeshare.StationTraffic{ID: "A"}
	stationTraffic.SetCounts(3, 7)

	assert.Equal(t, "10 trips (7 departures, 3 arrivals)", StationTitle(stationTraffic))
}
