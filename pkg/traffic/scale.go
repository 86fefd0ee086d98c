package traffic

import (
	"math"

	"github.com/travigo/bikeflow/pkg/bikeshare"
)

const (
	unfilteredMinRadius = 0
	unfilteredMaxRadius = 25
	filteredMinRadius   = 3
	filteredMaxRadius   = 50
)

// RadiusScale maps a traffic count to a circle radius proportionally to its
// square root. The domain is always [0, max total traffic unfiltered].
type RadiusScale struct {
	DomainMax float64 `json:"domainMax"`
	RangeMin  float64 `json:"rangeMin"`
	RangeMax  float64 `json:"rangeMax"`
}

func NewRadiusScale(unfilteredMaxTraffic int, filter bikeshare.TimeFilter) RadiusScale {
	scale := RadiusScale{
		DomainMax: float64(unfilteredMaxTraffic),
		RangeMin:  unfilteredMinRadius,
		RangeMax:  unfilteredMaxRadius,
	}

	if filter.IsSet() {
		scale.RangeMin = filteredMinRadius
		scale.RangeMax = filteredMaxRadius
	}

	return scale
}

// Radius is not clamped. An empty domain maps everything to RangeMin.
func (s RadiusScale) Radius(value int) float64 {
	if s.DomainMax <= 0 || value <= 0 {
		return s.RangeMin
	}

	return s.RangeMin + (s.RangeMax-s.RangeMin)*math.Sqrt(float64(value))/math.Sqrt(s.DomainMax)
}

// DepartureRatio quantizes departures/total into 0, 0.5 or 1. The second
// return is false for a station without traffic.
func DepartureRatio(stationTraffic bikeshare.StationTraffic) (float64, bool) {
	if stationTraffic.TotalTraffic <= 0 {
		return 0, false
	}

	ratio := float64(stationTraffic.Departures) / float64(stationTraffic.TotalTraffic)

	switch {
	case ratio < 1.0/3:
		return 0, true
	case ratio < 2.0/3:
		return 0.5, true
	default:
		return 1, true
	}
}
