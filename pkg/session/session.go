package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/bikeflow/pkg/bikeshare"
	"github.com/travigo/bikeflow/pkg/traffic"
)

// Loader fetches the two datasets. The calls are made concurrently.
type Loader interface {
	LoadStations(ctx context.Context) ([]bikeshare.Station, error)
	LoadTrips(ctx context.Context) ([]bikeshare.Trip, error)
}

const (
	DatasetStations = "stations"
	DatasetTrips    = "trips"
)

type DatasetStatus struct {
	Dataset string `json:"dataset"`
	Loaded  bool   `json:"loaded"`
	Records int    `json:"records"`
	Error   string `json:"error,omitempty"`

	// Stale is set when the last fetch failed and the previous load is
	// still being served.
	Stale bool `json:"stale,omitempty"`
}

// Snapshot is one complete load. It is never modified after being published.
type Snapshot struct {
	Stations []bikeshare.Station
	Trips    []bikeshare.Trip
	Index    *traffic.Index

	Unfiltered []bikeshare.StationTraffic
	MaxTraffic int

	StationsStatus DatasetStatus
	TripsStatus    DatasetStatus

	LoadedAt time.Time
}

// Update is sent to subscribers after every filter change or reload.
type Update struct {
	Filter   bikeshare.TimeFilter
	Stations []bikeshare.StationTraffic
	Scale    traffic.RadiusScale
}

// Session is the application state: the current snapshot, the active time
// filter and the aggregation for it.
type Session struct {
	loader Loader
	policy traffic.WindowPolicy

	snapshot atomic.Pointer[Snapshot]

	// publishMu orders recompute and notify so subscribers see updates in
	// the same order as Current.
	publishMu sync.Mutex

	mu          sync.Mutex
	filter      bikeshare.TimeFilter
	current     Update
	subscribers map[int]func(Update)
	nextID      int
}

func New(loader Loader, policy traffic.WindowPolicy) *Session {
	s := &Session{
		loader:      loader,
		policy:      policy,
		subscribers: map[int]func(Update){},
	}
	s.snapshot.Store(newSnapshot(nil, nil, nil, policy))

	return s
}

func (s *Session) Policy() traffic.WindowPolicy {
	return s.policy
}

func (s *Session) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Load fetches both datasets concurrently and publishes a new snapshot once
// both have returned. A failed dataset is logged and keeps its previously
// loaded records, or is left empty if it was never loaded. Nothing is
// published when ctx is done by the time both loads return.
func (s *Session) Load(ctx context.Context) *Snapshot {
	previous := s.Snapshot()

	var stations []bikeshare.Station
	var trips []bikeshare.Trip
	stationsStatus := DatasetStatus{Dataset: DatasetStations}
	tripsStatus := DatasetStatus{Dataset: DatasetTrips}

	p := pool.New()

	p.Go(func() {
		var err error
		stations, err = s.loader.LoadStations(ctx)
		if err != nil {
			log.Error().Err(err).Str("dataset", DatasetStations).Msg("Failed to load station catalog")
			stations = nil
			stationsStatus.Error = err.Error()
			return
		}

		stationsStatus.Loaded = true
		stationsStatus.Records = len(stations)
	})

	p.Go(func() {
		var err error
		trips, err = s.loader.LoadTrips(ctx)
		if err != nil {
			log.Error().Err(err).Str("dataset", DatasetTrips).Msg("Failed to load trip log")
			trips = nil
			tripsStatus.Error = err.Error()
			return
		}

		tripsStatus.Loaded = true
		tripsStatus.Records = len(trips)
	})

	p.Wait()

	if err := ctx.Err(); err != nil {
		log.Warn().Err(err).Msg("Load interrupted, keeping the current snapshot")
		return previous
	}

	if !stationsStatus.Loaded && previous.StationsStatus.Loaded {
		stations = previous.Stations
		keepPrevious(&stationsStatus, len(stations))
	}

	var index *traffic.Index
	if !tripsStatus.Loaded && previous.TripsStatus.Loaded {
		trips = previous.Trips
		index = previous.Index
		keepPrevious(&tripsStatus, len(trips))
	}

	snapshot := newSnapshot(stations, trips, index, s.policy)
	snapshot.StationsStatus = stationsStatus
	snapshot.TripsStatus = tripsStatus

	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.snapshot.Store(snapshot)

	log.Info().
		Int("stations", len(snapshot.Stations)).
		Int("trips", len(snapshot.Trips)).
		Int("maxTraffic", snapshot.MaxTraffic).
		Msg("Loaded bike traffic snapshot")

	s.mu.Lock()
	update := s.recompute(s.filter)
	subscribers := s.subscriberList()
	s.mu.Unlock()

	notify(subscribers, update)

	return snapshot
}

// RefreshEvery reloads on an interval until the context is cancelled.
func (s *Session) RefreshEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			startTime := time.Now()
			s.Load(ctx)
			log.Info().Msgf("Reload took %s", time.Since(startTime).String())
		}
	}
}

func keepPrevious(status *DatasetStatus, records int) {
	log.Warn().Str("dataset", status.Dataset).Int("records", records).Msg("Serving previously loaded dataset")

	status.Loaded = true
	status.Records = records
	status.Stale = true
}

// newSnapshot builds the index from trips unless one is given.
func newSnapshot(stations []bikeshare.Station, trips []bikeshare.Trip, index *traffic.Index, policy traffic.WindowPolicy) *Snapshot {
	if index == nil {
		index = traffic.NewIndex(trips)
	}
	unfiltered := traffic.Aggregate(stations, index, bikeshare.Unset, policy)

	return &Snapshot{
		Stations:       stations,
		Trips:          trips,
		Index:          index,
		Unfiltered:     unfiltered,
		MaxTraffic:     traffic.MaxTotalTraffic(unfiltered),
		StationsStatus: DatasetStatus{Dataset: DatasetStations},
		TripsStatus:    DatasetStatus{Dataset: DatasetTrips},
		LoadedAt:       time.Now(),
	}
}

// Traffic aggregates the snapshot under a filter without touching the
// session's active filter.
func (snapshot *Snapshot) Traffic(filter bikeshare.TimeFilter, policy traffic.WindowPolicy) Update {
	stationsTraffic := snapshot.Unfiltered
	if filter.IsSet() {
		stationsTraffic = traffic.Aggregate(snapshot.Stations, snapshot.Index, filter, policy)
	}

	return Update{
		Filter:   filter,
		Stations: stationsTraffic,
		Scale:    traffic.NewRadiusScale(snapshot.MaxTraffic, filter),
	}
}

func (s *Session) Traffic(filter bikeshare.TimeFilter) Update {
	return s.Snapshot().Traffic(filter, s.policy)
}

func (s *Session) Filter() bikeshare.TimeFilter {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filter
}

// SetFilter recomputes synchronously and notifies subscribers. The latest
// call wins.
func (s *Session) SetFilter(filter bikeshare.TimeFilter) Update {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	update := s.recompute(filter)
	subscribers := s.subscriberList()
	s.mu.Unlock()

	notify(subscribers, update)

	return update
}

func (s *Session) Current() Update {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current
}

// Subscribe registers a callback for updates and returns its cancel func.
// Callbacks run one update at a time and must not call SetFilter or Load.
func (s *Session) Subscribe(callback func(Update)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID += 1
	s.subscribers[id] = callback

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		delete(s.subscribers, id)
	}
}

func (s *Session) recompute(filter bikeshare.TimeFilter) Update {
	s.filter = filter
	s.current = s.Snapshot().Traffic(filter, s.policy)

	return s.current
}

func (s *Session) subscriberList() []func(Update) {
	subscribers := make([]func(Update), 0, len(s.subscribers))
	for _, subscriber := range s.subscribers {
		subscribers = append(subscribers, subscriber)
	}

	return subscribers
}

func notify(subscribers []func(Update), update Update) {
	for _, subscriber := range subscribers {
		subscriber(update)
	}
}
