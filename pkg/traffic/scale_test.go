package traffic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/travigo/bikeflow/pkg/bikeshare"
)

func TestRadiusScaleUnfiltered(t *testing.T) {
	scale := NewRadiusScale(400, bikeshare.Unset)

	assert.Equal(t, 0.0, scale.Radius(0))
	assert.InDelta(t, 25.0, scale.Radius(400), 1e-9)
	assert.InDelta(t, 12.5, scale.Radius(100), 1e-9)
}

func TestRadiusScaleFiltered(t *testing.T) {
	scale := NewRadiusScale(400, mustFilter(480))

	assert.Equal(t, 3.0, scale.Radius(0))
	assert.InDelta(t, 50.0, scale.Radius(400), 1e-9)
}

func TestRadiusScaleMonotonic(t *testing.T) {
	for _, filter := range []bikeshare.TimeFilter{bikeshare.Unset, mustFilter(0)} {
		scale := NewRadiusScale(1000, filter)

		previous := scale.Radius(0)
		for value := 1; value <= 1200; value++ {
			radius := scale.Radius(value)
			assert.GreaterOrEqual(t, radius, previous)
			previous = radius
		}
	}
}

func TestRadiusScaleEmptyDomain(t *testing.T) {
	assert.Equal(t, 0.0, NewRadiusScale(0, bikeshare.Unset).Radius(0))
	assert.Equal(t, 3.0, NewRadiusScale(0, mustFilter(1)).Radius(5))
}

func TestDepartureRatio(t *testing.T) {
	tests := []struct {
		name       string
		departures int
		arrivals   int
		ratio      float64
		ok         bool
	}{
		{name: "no traffic", ok: false},
		{name: "only arrivals", arrivals: 4, ratio: 0, ok: true},
		{name: "balanced", departures: 5, arrivals: 5, ratio: 0.5, ok: true},
		{name: "mostly departures", departures: 9, arrivals: 1, ratio: 1, ok: true},
		{name: "two thirds", departures: 2, arrivals: 1, ratio: 1, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stationTraffic := bikeshare.StationTraffic{}
			stationTraffic.SetCounts(tt.arrivals, tt.departures)

			ratio, ok := DepartureRatio(stationTraffic)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.ratio, ratio)
		})
	}
}
