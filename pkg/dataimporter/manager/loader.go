package manager

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/bikeflow/pkg/bikeshare"
	"github.com/travigo/bikeflow/pkg/dataimporter/datasets"
	"github.com/travigo/bikeflow/pkg/dataimporter/formats"
	"github.com/travigo/bikeflow/pkg/dataimporter/formats/stationcatalog"
	"github.com/travigo/bikeflow/pkg/dataimporter/formats/triplog"
)

// Loader fetches the station catalog and trip log datasets of one data
// source. Several datasets of the same format are concatenated in
// declaration order; if any of them fails the whole kind is reported failed.
type Loader struct {
	DataSource datasets.DataSource

	// Location for trip timestamps without an offset, unless a dataset sets
	// its own TimeZone. Defaults to time.Local.
	Location *time.Location
}

func NewLoader(directory string, identifier string) (*Loader, error) {
	datasource, err := GetDataSource(directory, identifier)
	if err != nil {
		return nil, err
	}

	return &Loader{DataSource: datasource}, nil
}

func ParseDataset(ctx context.Context, dataset datasets.DataSet, format formats.Format) error {
	log.Info().Str("dataset", dataset.Identifier).Str("source", dataset.Source).Msg("Loading dataset")

	reader, err := OpenDataset(ctx, dataset)
	if err != nil {
		return fmt.Errorf("open dataset %s: %w", dataset.Identifier, err)
	}
	defer reader.Close()

	if err := format.ParseFile(reader); err != nil {
		return fmt.Errorf("parse dataset %s: %w", dataset.Identifier, err)
	}

	return nil
}

func (l *Loader) LoadStations(ctx context.Context) ([]bikeshare.Station, error) {
	catalogDatasets := l.DataSource.DatasetsWithFormat(datasets.DataSetFormatStationCatalog)
	if len(catalogDatasets) == 0 {
		return nil, fmt.Errorf("data source %s has no %s dataset", l.DataSource.Identifier, datasets.DataSetFormatStationCatalog)
	}

	var stations []bikeshare.Station
	seen := map[string]bool{}

	for _, dataset := range catalogDatasets {
		catalog := &stationcatalog.Catalog{
			DataSource: dataSourceRecord(dataset),
		}

		if err := ParseDataset(ctx, dataset, catalog); err != nil {
			return nil, err
		}

		for _, station := range catalog.Stations {
			if seen[station.ID] {
				continue
			}
			seen[station.ID] = true

			stations = append(stations, station)
		}
	}

	return stations, nil
}

func (l *Loader) LoadTrips(ctx context.Context) ([]bikeshare.Trip, error) {
	tripDatasets := l.DataSource.DatasetsWithFormat(datasets.DataSetFormatTripLog)
	if len(tripDatasets) == 0 {
		return nil, fmt.Errorf("data source %s has no %s dataset", l.DataSource.Identifier, datasets.DataSetFormatTripLog)
	}

	var trips []bikeshare.Trip

	for _, dataset := range tripDatasets {
		location := l.Location
		if dataset.TimeZone != "" {
			var err error
			location, err = time.LoadLocation(dataset.TimeZone)
			if err != nil {
				return nil, fmt.Errorf("dataset %s time zone: %w", dataset.Identifier, err)
			}
		}

		tripLog := &triplog.Log{Location: location}
		if err := ParseDataset(ctx, dataset, tripLog); err != nil {
			return nil, err
		}

		trips = append(trips, tripLog.Trips...)
	}

	return trips, nil
}

func dataSourceRecord(dataset datasets.DataSet) *bikeshare.DataSource {
	return &bikeshare.DataSource{
		OriginalFormat: string(dataset.Format),
		Provider:       dataset.Provider.Name,
		DatasetID:      dataset.Identifier,
		Timestamp:      fmt.Sprintf("%d", time.Now().Unix()),
	}
}

// CheckDataset fetches and parses a single dataset without keeping it,
// returning how many records were read and how many were skipped.
func CheckDataset(ctx context.Context, dataset datasets.DataSet, location *time.Location) (int, int, error) {
	switch dataset.Format {
	case datasets.DataSetFormatStationCatalog:
		catalog := &stationcatalog.Catalog{DataSource: dataSourceRecord(dataset)}
		if err := ParseDataset(ctx, dataset, catalog); err != nil {
			return 0, 0, err
		}

		return len(catalog.Stations), 0, nil
	case datasets.DataSetFormatTripLog:
		if dataset.TimeZone != "" {
			var err error
			location, err = time.LoadLocation(dataset.TimeZone)
			if err != nil {
				return 0, 0, fmt.Errorf("dataset %s time zone: %w", dataset.Identifier, err)
			}
		}

		tripLog := &triplog.Log{Location: location}
		if err := ParseDataset(ctx, dataset, tripLog); err != nil {
			return 0, 0, err
		}

		return len(tripLog.Trips), tripLog.Skipped, nil
	}

	return 0, 0, fmt.Errorf("dataset %s has unknown format %q", dataset.Identifier, dataset.Format)
}
