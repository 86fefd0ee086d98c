package stationcatalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/bikeflow/pkg/bikeshare"
)

func TestParseGBFSEnvelope(t *testing.T) {
	document := `{
		"last_updated": 1709251200,
		"data": {
			"stations": [
				{"station_id": "a1", "short_name": "A32000", "name": "Fan Pier", "lon": -71.044, "lat": 42.353, "capacity": 15},
				{"station_id": "b2", "short_name": "B32006", "name": "Union Square", "lon": "-71.094", "lat": "42.379"}
			]
		}
	}`

	catalog := &Catalog{}
	require.NoError(t, catalog.ParseFile(strings.NewReader(document)))

	require.Len(t, catalog.Stations, 2)
	assert.Equal(t, bikeshare.Station{
		ID:              "A32000",
		OtherIdentifier: "a1",
		Name:            "Fan Pier",
		Longitude:       -71.044,
		Latitude:        42.353,
		Capacity:        15,
	}, catalog.Stations[0])
	assert.Equal(t, -71.094, catalog.Stations[1].Longitude)
	assert.Equal(t, 42.379, catalog.Stations[1].Latitude)
}

func TestParseTopLevelStations(t *testing.T) {
	document := `{"stations": [{"short_name": "A", "lon": 1, "lat": 2}]}`

	dataSource := &bikeshare.DataSource{DatasetID: "test-stations"}
	catalog := &Catalog{DataSource: dataSource}
	require.NoError(t, catalog.ParseFile(strings.NewReader(document)))

	require.Len(t, catalog.Stations, 1)
	assert.Equal(t, "A", catalog.Stations[0].ID)
	assert.Same(t, dataSource, catalog.Stations[0].DataSource)
}

func TestParseSkipsMissingAndDuplicateIdentifiers(t *testing.T) {
	document := `{"stations": [
		{"short_name": "A", "name": "first", "lon": 1, "lat": 2},
		{"name": "nameless", "lon": 1, "lat": 2},
		{"short_name": "A", "name": "second", "lon": 3, "lat": 4},
		{"station_id": "X9", "lon": 5, "lat": 6}
	]}`

	catalog := &Catalog{}
	require.NoError(t, catalog.ParseFile(strings.NewReader(document)))

	require.Len(t, catalog.Stations, 2)
	assert.Equal(t, "first", catalog.Stations[0].Name)
	assert.Equal(t, "X9", catalog.Stations[1].ID)
	assert.Empty(t, catalog.Stations[1].OtherIdentifier)
}

func TestParseErrors(t *testing.T) {
	catalog := &Catalog{}

	assert.Error(t, catalog.ParseFile(strings.NewReader(`not json`)))
	assert.Error(t, catalog.ParseFile(strings.NewReader(`{"something": []}`)))
	assert.Error(t, catalog.ParseFile(strings.NewReader(`{"stations": [{"short_name": "A", "lon": "west"}]}`)))
}
