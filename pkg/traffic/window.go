package traffic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/travigo/bikeflow/pkg/bikeshare"
	"golang.org/x/exp/slices"
)

var ErrUnknownWindowPolicy = errors.New("unknown window policy")

// WindowPolicy decides which trips count towards a filtered minute.
type WindowPolicy interface {
	Name() string
	Rollup(index *Index, minute int) (departures Counts, arrivals Counts)
}

const (
	BucketWindowPolicyName = "bucket"
	TripWindowPolicyName   = "trip"
)

// BucketWindow reads departures from the departure buckets and arrivals from
// the arrival buckets independently, over [m-60, m+60) wrapping at midnight.
var BucketWindow WindowPolicy = bucketWindow{}

// TripWindow selects trips with a start or end minute within 60 of m, without
// wrapping at midnight, and rolls that one trip set up both ways.
var TripWindow WindowPolicy = tripWindow{}

var windowPolicies = []WindowPolicy{BucketWindow, TripWindow}

func WindowPolicyNames() []string {
	names := make([]string, 0, len(windowPolicies))
	for _, policy := range windowPolicies {
		names = append(names, policy.Name())
	}

	return names
}

func ParseWindowPolicy(name string) (WindowPolicy, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	index := slices.IndexFunc(windowPolicies, func(policy WindowPolicy) bool {
		return policy.Name() == name
	})
	if index < 0 {
		return nil, fmt.Errorf("%w %q (expected one of %s)", ErrUnknownWindowPolicy, name, strings.Join(WindowPolicyNames(), ", "))
	}

	return windowPolicies[index], nil
}

type bucketWindow struct{}

func (bucketWindow) Name() string {
	return BucketWindowPolicyName
}

func (bucketWindow) Rollup(index *Index, minute int) (Counts, Counts) {
	departures := Counts{}
	arrivals := Counts{}

	for _, bucket := range WindowBuckets(minute) {
		departures.addAll(index.departuresByMinute[bucket])
		arrivals.addAll(index.arrivalsByMinute[bucket])
	}

	return departures, arrivals
}

// WindowBuckets lists the minute buckets of the circular window centred on
// minute, lower bound inclusive and upper bound exclusive.
func WindowBuckets(minute int) []int {
	const day = bikeshare.MinutesPerDay

	lower := (minute - WindowMinutes + day) % day
	upper := (minute + WindowMinutes) % day

	buckets := make([]int, 0, 2*WindowMinutes)
	for bucket := lower; bucket != upper; bucket = (bucket + 1) % day {
		buckets = append(buckets, bucket)
	}

	return buckets
}

type tripWindow struct{}

func (tripWindow) Name() string {
	return TripWindowPolicyName
}

func (tripWindow) Rollup(index *Index, minute int) (Counts, Counts) {
	departures := Counts{}
	arrivals := Counts{}

	for _, trip := range index.trips {
		if !withinWindow(trip.Departure, minute) && !withinWindow(trip.Arrival, minute) {
			continue
		}

		departures[trip.StartStationID] += 1
		arrivals[trip.EndStationID] += 1
	}

	return departures, arrivals
}

func withinWindow(tripMinute int, minute int) bool {
	distance := tripMinute - minute
	if distance < 0 {
		distance = -distance
	}

	return distance <= WindowMinutes
}
