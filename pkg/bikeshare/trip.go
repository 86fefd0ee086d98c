package bikeshare

import "time"

type Trip struct {
	RideID       string
	RideableType string
	MemberType   string

	StartStationID string
	EndStationID   string

	StartedAt time.Time
	EndedAt   time.Time
}

func (t Trip) DepartureMinute() int {
	return MinuteOfDay(t.StartedAt)
}

func (t Trip) ArrivalMinute() int {
	return MinuteOfDay(t.EndedAt)
}

// MinuteOfDay uses the wall clock of the time's own location.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
