package traffic

import (
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/travigo/bikeflow/pkg/bikeshare"
)

// Rollups returns the departure and arrival counts per station for a filter.
// An unset filter counts the whole trip log. The returned maps must not be
// modified.
func Rollups(index *Index, filter bikeshare.TimeFilter, policy WindowPolicy) (departures Counts, arrivals Counts) {
	if index == nil {
		return Counts{}, Counts{}
	}

	minute, set := filter.Minute()
	if !set {
		return index.departures, index.arrivals
	}

	return policy.Rollup(index, minute)
}

// Aggregate gives every catalog station, in catalog order, its arrivals and
// departures under the filter. Stations with no trips get zero counts.
func Aggregate(stations []bikeshare.Station, index *Index, filter bikeshare.TimeFilter, policy WindowPolicy) []bikeshare.StationTraffic {
	departures, arrivals := Rollups(index, filter, policy)

	stationsTraffic := make([]bikeshare.StationTraffic, len(stations))
	for i := range stations {
		stationTraffic := &stationsTraffic[i]

		if err := copier.Copy(stationTraffic, &stations[i]); err != nil {
			log.Error().Err(err).Str("station", stations[i].ID).Msg("Failed to copy station")
			stationTraffic.ID = stations[i].ID
		}

		stationTraffic.SetCounts(arrivals[stations[i].ID], departures[stations[i].ID])
	}

	return stationsTraffic
}

func ByStation(stationsTraffic []bikeshare.StationTraffic) map[string]bikeshare.StationTraffic {
	byStation := make(map[string]bikeshare.StationTraffic, len(stationsTraffic))
	for _, stationTraffic := range stationsTraffic {
		byStation[stationTraffic.ID] = stationTraffic
	}

	return byStation
}

func MaxTotalTraffic(stationsTraffic []bikeshare.StationTraffic) int {
	maxTraffic := 0
	for _, stationTraffic := range stationsTraffic {
		if stationTraffic.TotalTraffic > maxTraffic {
			maxTraffic = stationTraffic.TotalTraffic
		}
	}

	return maxTraffic
}

// Totals sums departures and arrivals over all stations.
func Totals(stationsTraffic []bikeshare.StationTraffic) (departures int, arrivals int) {
	for _, stationTraffic := range stationsTraffic {
		departures += stationTraffic.Departures
		arrivals += stationTraffic.Arrivals
	}

	return departures, arrivals
}
