package triplog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/travigo/bikeflow/pkg/bikeshare"
)

type tripRecord struct {
	RideID         string `csv:"ride_id"`
	RideableType   string `csv:"rideable_type"`
	StartedAt      string `csv:"started_at"`
	EndedAt        string `csv:"ended_at"`
	StartStationID string `csv:"start_station_id"`
	EndStationID   string `csv:"end_station_id"`
	MemberCasual   string `csv:"member_casual"`
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
}

// Log parses a row-per-trip CSV. Rows whose timestamps cannot be read are
// skipped and counted in Skipped.
type Log struct {
	// Location is used for timestamps without an offset. Defaults to time.Local.
	Location *time.Location

	Trips   []bikeshare.Trip
	Skipped int
}

func (l *Log) ParseFile(reader io.Reader) error {
	location := l.Location
	if location == nil {
		location = time.Local
	}

	// Allow us to ignore records that have missing columns
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true

	var records []*tripRecord
	if err := gocsv.UnmarshalCSV(csvReader, &records); err != nil {
		return fmt.Errorf("parse trip log: %w", err)
	}

	l.Trips = make([]bikeshare.Trip, 0, len(records))
	l.Skipped = 0

	for row, record := range records {
		startedAt, err := ParseTimestamp(record.StartedAt, location)
		if err != nil {
			l.skip(row, err)
			continue
		}

		endedAt, err := ParseTimestamp(record.EndedAt, location)
		if err != nil {
			l.skip(row, err)
			continue
		}

		l.Trips = append(l.Trips, bikeshare.Trip{
			RideID:         record.RideID,
			RideableType:   record.RideableType,
			MemberType:     record.MemberCasual,
			StartStationID: strings.TrimSpace(record.StartStationID),
			EndStationID:   strings.TrimSpace(record.EndStationID),
			StartedAt:      startedAt,
			EndedAt:        endedAt,
		})
	}

	if l.Skipped > 0 {
		log.Warn().Int("skipped", l.Skipped).Msg("Skipped trip log rows with unreadable timestamps")
	}
	log.Info().Int("length", len(l.Trips)).Msg("Parsed trip log")

	return nil
}

func (l *Log) skip(row int, err error) {
	l.Skipped += 1
	log.Debug().Int("row", row+1).Err(err).Msg("Skipping trip")
}

// ParseTimestamp reads zone-less layouts in location and converts offset
// timestamps (RFC3339) into location so minute-of-day is the local wall clock.
func ParseTimestamp(value string, location *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)

	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return parsed.In(location), nil
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, value, location); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}
