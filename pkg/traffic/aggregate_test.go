package traffic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/bikeflow/pkg/bikeshare"
)

var policies = []WindowPolicy{BucketWindow, TripWindow}

func sampleTrips() []bikeshare.Trip {
	return []bikeshare.Trip{
		tripAt("A", "B", 30, 45),
		tripAt("A", "C", 480, 495),
		tripAt("B", "A", 490, 530),
		tripAt("C", "A", 1439, 5),
		tripAt("B", "C", 720, 800),
		tripAt("C", "B", 1000, 1010),
	}
}

func TestAggregateSingleTripExample(t *testing.T) {
	stations := testStations("A", "B")
	index := NewIndex([]bikeshare.Trip{tripAt("A", "B", 30, 40)})

	for _, policy := range policies {
		t.Run(policy.Name(), func(t *testing.T) {
			unfiltered := ByStation(Aggregate(stations, index, bikeshare.Unset, policy))
			assert.Equal(t, 1, unfiltered["A"].Departures)
			assert.Equal(t, 1, unfiltered["B"].Arrivals)

			far := ByStation(Aggregate(stations, index, mustFilter(500), policy))
			assert.Equal(t, 0, far["A"].Departures)
			assert.Equal(t, 0, far["B"].Arrivals)
		})
	}
}

func TestAggregateTotalsAddUp(t *testing.T) {
	stations := testStations("A", "B", "C", "D")
	index := NewIndex(sampleTrips())

	filters := []bikeshare.TimeFilter{bikeshare.Unset}
	for _, minute := range []int{0, 30, 59, 60, 480, 720, 1000, 1380, 1439} {
		filters = append(filters, mustFilter(minute))
	}

	for _, policy := range policies {
		for _, filter := range filters {
			stationsTraffic := Aggregate(stations, index, filter, policy)

			require.Len(t, stationsTraffic, len(stations))
			for i, stationTraffic := range stationsTraffic {
				assert.Equal(t, stations[i].ID, stationTraffic.ID, "catalog order is kept")
				assert.Equal(t, stationTraffic.Arrivals+stationTraffic.Departures, stationTraffic.TotalTraffic,
					"policy %s filter %s station %s", policy.Name(), filter, stationTraffic.ID)
			}
		}
	}
}

func TestAggregateUnfilteredCountsEveryTrip(t *testing.T) {
	trips := sampleTrips()
	stations := testStations("A", "B", "C")
	index := NewIndex(trips)

	stationsTraffic := Aggregate(stations, index, bikeshare.Unset, BucketWindow)
	departures, arrivals := Totals(stationsTraffic)

	assert.Equal(t, len(trips), departures)
	assert.Equal(t, len(trips), arrivals)
	assert.Equal(t, len(trips), index.TripCount())
}

func TestAggregateUnfilteredIsIdempotent(t *testing.T) {
	stations := testStations("A", "B", "C")
	index := NewIndex(sampleTrips())

	first := Aggregate(stations, index, bikeshare.Unset, BucketWindow)
	second := Aggregate(stations, index, bikeshare.Unset, BucketWindow)

	assert.Equal(t, first, second)
}

func TestAggregateKeepsStationsWithoutTraffic(t *testing.T) {
	stations := testStations("A", "Z")
	index := NewIndex([]bikeshare.Trip{tripAt("A", "A", 10, 20)})

	byStation := ByStation(Aggregate(stations, index, bikeshare.Unset, BucketWindow))

	require.Contains(t, byStation, "Z")
	assert.Equal(t, bikeshare.StationTraffic{
		ID:        "Z",
		Name:      "Station Z",
		Longitude: stations[1].Longitude,
		Latitude:  42.36,
		Capacity:  11,
	}, byStation["Z"])
	assert.Equal(t, 2, byStation["A"].TotalTraffic)
}

func TestAggregateUnknownStationsDoNotCreateStations(t *testing.T) {
	stations := testStations("A")
	index := NewIndex([]bikeshare.Trip{tripAt("A", "ghost", 10, 20)})

	stationsTraffic := Aggregate(stations, index, bikeshare.Unset, BucketWindow)

	require.Len(t, stationsTraffic, 1)
	assert.Equal(t, 1, stationsTraffic[0].Departures)
	assert.Equal(t, 0, stationsTraffic[0].Arrivals)
}

func TestAggregateWithoutIndex(t *testing.T) {
	stationsTraffic := Aggregate(testStations("A"), nil, mustFilter(10), BucketWindow)

	require.Len(t, stationsTraffic, 1)
	assert.Zero(t, stationsTraffic[0].TotalTraffic)
}

func TestMidnightWraparound(t *testing.T) {
	stations := testStations("A", "B")
	index := NewIndex([]bikeshare.Trip{tripAt("A", "B", 1439, 1439)})

	bucket := ByStation(Aggregate(stations, index, mustFilter(0), BucketWindow))
	assert.Equal(t, 1, bucket["A"].Departures, "circular window includes 23:59 at midnight")
	assert.Equal(t, 1, bucket["B"].Arrivals)

	trip := ByStation(Aggregate(stations, index, mustFilter(0), TripWindow))
	assert.Equal(t, 0, trip["A"].Departures, "trip window does not wrap")
	assert.Equal(t, 0, trip["B"].Arrivals)
}

func TestBucketWindowUpperBoundIsExclusive(t *testing.T) {
	stations := testStations("A", "B")
	index := NewIndex([]bikeshare.Trip{
		tripAt("A", "B", 440, 900),
		tripAt("A", "B", 560, 900),
	})

	byStation := ByStation(Aggregate(stations, index, mustFilter(500), BucketWindow))
	assert.Equal(t, 1, byStation["A"].Departures)
	assert.Equal(t, 0, byStation["B"].Arrivals)

	byStation = ByStation(Aggregate(stations, index, mustFilter(500), TripWindow))
	assert.Equal(t, 2, byStation["A"].Departures, "trip window is inclusive on both sides")
	assert.Equal(t, 2, byStation["B"].Arrivals)
}

func TestPoliciesDifferOnStraddlingTrips(t *testing.T) {
	stations := testStations("A", "B")
	// Departs inside the window, arrives long after it.
	index := NewIndex([]bikeshare.Trip{tripAt("A", "B", 500, 800)})

	bucket := ByStation(Aggregate(stations, index, mustFilter(500), BucketWindow))
	assert.Equal(t, 1, bucket["A"].Departures)
	assert.Equal(t, 0, bucket["B"].Arrivals)

	trip := ByStation(Aggregate(stations, index, mustFilter(500), TripWindow))
	assert.Equal(t, 1, trip["A"].Departures)
	assert.Equal(t, 1, trip["B"].Arrivals)
}

func TestWindowBuckets(t *testing.T) {
	tests := []struct {
		minute int
		first  int
		last   int
	}{
		{minute: 500, first: 440, last: 559},
		{minute: 0, first: 1380, last: 59},
		{minute: 1439, first: 1379, last: 58},
		{minute: 60, first: 0, last: 119},
	}

	for _, tt := range tests {
		buckets := WindowBuckets(tt.minute)

		assert.Len(t, buckets, 2*WindowMinutes)
		assert.Equal(t, tt.first, buckets[0])
		assert.Equal(t, tt.last, buckets[len(buckets)-1])
	}
}

func TestIndexBuckets(t *testing.T) {
	index := NewIndex(sampleTrips())

	assert.Equal(t, 1, index.DeparturesAt(1439))
	assert.Equal(t, 1, index.ArrivalsAt(5))
	assert.Equal(t, 0, index.DeparturesAt(5))
}

func TestParseWindowPolicy(t *testing.T) {
	policy, err := ParseWindowPolicy("Bucket")
	require.NoError(t, err)
	assert.Equal(t, BucketWindow, policy)

	policy, err = ParseWindowPolicy("trip")
	require.NoError(t, err)
	assert.Equal(t, TripWindow, policy)

	_, err = ParseWindowPolicy("both")
	assert.ErrorIs(t, err, ErrUnknownWindowPolicy)
}
