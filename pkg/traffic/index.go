package traffic

import (
	"github.com/travigo/bikeflow/pkg/bikeshare"
)

// WindowMinutes is the half width of a filtered time window.
const WindowMinutes = 60

// Counts is a rollup of trips keyed by station id.
type Counts map[string]int

type tripMinutes struct {
	StartStationID string
	EndStationID   string
	Departure      int
	Arrival        int
}

// Index is the minute-of-day bucketing of a trip log. It is built once per
// load and is read-only afterwards.
type Index struct {
	departuresByMinute [bikeshare.MinutesPerDay]Counts
	arrivalsByMinute   [bikeshare.MinutesPerDay]Counts

	departures Counts
	arrivals   Counts

	trips []tripMinutes
}

func NewIndex(trips []bikeshare.Trip) *Index {
	index := &Index{
		departures: Counts{},
		arrivals:   Counts{},
		trips:      make([]tripMinutes, 0, len(trips)),
	}

	for _, trip := range trips {
		departure := trip.DepartureMinute()
		arrival := trip.ArrivalMinute()

		index.departures[trip.StartStationID] += 1
		index.arrivals[trip.EndStationID] += 1

		if index.departuresByMinute[departure] == nil {
			index.departuresByMinute[departure] = Counts{}
		}
		index.departuresByMinute[departure][trip.StartStationID] += 1

		if index.arrivalsByMinute[arrival] == nil {
			index.arrivalsByMinute[arrival] = Counts{}
		}
		index.arrivalsByMinute[arrival][trip.EndStationID] += 1

		index.trips = append(index.trips, tripMinutes{
			StartStationID: trip.StartStationID,
			EndStationID:   trip.EndStationID,
			Departure:      departure,
			Arrival:        arrival,
		})
	}

	return index
}

func (i *Index) TripCount() int {
	return len(i.trips)
}

// DeparturesAt is the number of trips departing in one minute bucket, summed
// over all stations.
func (i *Index) DeparturesAt(minute int) int {
	return i.departuresByMinute[minute].total()
}

func (i *Index) ArrivalsAt(minute int) int {
	return i.arrivalsByMinute[minute].total()
}

func (c Counts) total() int {
	total := 0
	for _, count := range c {
		total += count
	}

	return total
}

func (c Counts) addAll(other Counts) {
	for stationID, count := range other {
		c[stationID] += count
	}
}
