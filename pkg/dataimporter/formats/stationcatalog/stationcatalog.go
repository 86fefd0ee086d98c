package stationcatalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/bikeflow/pkg/bikeshare"
)

// Catalog parses a station information document. The stations array may sit
// at the top level or inside a GBFS style "data" envelope.
type Catalog struct {
	Stations []bikeshare.Station

	DataSource *bikeshare.DataSource
}

type catalogDocument struct {
	Stations []catalogStation `json:"stations"`
	Data     *struct {
		Stations []catalogStation `json:"stations"`
	} `json:"data"`
}

type catalogStation struct {
	StationID string     `json:"station_id"`
	ShortName string     `json:"short_name"`
	Name      string     `json:"name"`
	Longitude coordinate `json:"lon"`
	Latitude  coordinate `json:"lat"`
	Capacity  int        `json:"capacity"`
}

// coordinate accepts both JSON numbers and numeric strings.
type coordinate float64

func (c *coordinate) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		*c = 0
		return nil
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid coordinate %s: %w", data, err)
	}

	*c = coordinate(parsed)
	return nil
}

func (c *Catalog) ParseFile(reader io.Reader) error {
	var document catalogDocument
	if err := json.NewDecoder(reader).Decode(&document); err != nil {
		return fmt.Errorf("decode station catalog: %w", err)
	}

	records := document.Stations
	if len(records) == 0 && document.Data != nil {
		records = document.Data.Stations
	}

	if document.Stations == nil && document.Data == nil {
		return errors.New("station catalog has no stations array")
	}

	seen := map[string]bool{}
	c.Stations = make([]bikeshare.Station, 0, len(records))

	for _, record := range records {
		identifier := record.ShortName
		otherIdentifier := record.StationID
		if identifier == "" {
			identifier = record.StationID
			otherIdentifier = ""
		}

		if identifier == "" {
			log.Debug().Str("name", record.Name).Msg("Skipping station without identifier")
			continue
		}

		if seen[identifier] {
			log.Warn().Str("station", identifier).Msg("Duplicate station identifier, keeping first")
			continue
		}
		seen[identifier] = true

		c.Stations = append(c.Stations, bikeshare.Station{
			ID:              identifier,
			OtherIdentifier: otherIdentifier,
			Name:            record.Name,
			Longitude:       float64(record.Longitude),
			Latitude:        float64(record.Latitude),
			Capacity:        record.Capacity,
			DataSource:      c.DataSource,
		})
	}

	log.Info().Int("length", len(c.Stations)).Msg("Parsed station catalog")

	return nil
}
