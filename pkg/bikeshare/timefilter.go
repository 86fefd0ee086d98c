package bikeshare

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const MinutesPerDay = 24 * 60

// SliderUnset is the slider value meaning "any time".
const SliderUnset = -1

var ErrInvalidTimeFilter = errors.New("invalid time filter")

// TimeFilter is either unset or a minute of the day in [0, 1440).
type TimeFilter struct {
	minute int
	set    bool
}

var Unset = TimeFilter{}

func AtMinute(minute int) (TimeFilter, error) {
	if minute < 0 || minute >= MinutesPerDay {
		return Unset, fmt.Errorf("%w: minute %d outside [0, %d)", ErrInvalidTimeFilter, minute, MinutesPerDay)
	}

	return TimeFilter{minute: minute, set: true}, nil
}

// FromSlider converts the slider range [-1, 1439] into a filter.
func FromSlider(value int) (TimeFilter, error) {
	if value == SliderUnset {
		return Unset, nil
	}

	return AtMinute(value)
}

// ParseTimeFilter accepts a slider value as text. An empty string is unset.
func ParseTimeFilter(value string) (TimeFilter, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Unset, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return Unset, fmt.Errorf("%w: %q is not an integer", ErrInvalidTimeFilter, value)
	}

	return FromSlider(n)
}

func (f TimeFilter) IsSet() bool {
	return f.set
}

func (f TimeFilter) Minute() (int, bool) {
	return f.minute, f.set
}

func (f TimeFilter) SliderValue() int {
	if !f.set {
		return SliderUnset
	}

	return f.minute
}

func (f TimeFilter) String() string {
	if !f.set {
		return "unset"
	}

	return strconv.Itoa(f.minute)
}
