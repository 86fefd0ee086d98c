package bikeshare

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSlider(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		set     bool
		minute  int
		wantErr bool
	}{
		{name: "unset", value: -1},
		{name: "midnight", value: 0, set: true, minute: 0},
		{name: "last minute", value: 1439, set: true, minute: 1439},
		{name: "too large", value: 1440, wantErr: true},
		{name: "too small", value: -2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := FromSlider(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeFilter)
				return
			}

			require.NoError(t, err)
			minute, set := filter.Minute()
			assert.Equal(t, tt.set, set)
			assert.Equal(t, tt.minute, minute)
			assert.Equal(t, tt.value, filter.SliderValue())
		})
	}
}

func TestParseTimeFilter(t *testing.T) {
	filter, err := ParseTimeFilter("")
	require.NoError(t, err)
	assert.False(t, filter.IsSet())

	filter, err = ParseTimeFilter(" 480 ")
	require.NoError(t, err)
	assert.Equal(t, "480", filter.String())

	_, err = ParseTimeFilter("noon")
	assert.ErrorIs(t, err, ErrInvalidTimeFilter)
}

func TestMinuteOfDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	trip := Trip{
		StartedAt: time.Date(2024, 3, 1, 23, 59, 10, 0, loc),
		EndedAt:   time.Date(2024, 3, 2, 0, 12, 0, 0, loc),
	}

	assert.Equal(t, 1439, trip.DepartureMinute())
	assert.Equal(t, 12, trip.ArrivalMinute())

	// Wall clock of the value's own location is used, not UTC.
	assert.Equal(t, 4*60+59, MinuteOfDay(trip.StartedAt.UTC()))
}
