package bikeshare

type Station struct {
	ID        string  `json:"id" groups:"basic,detailed"`
	Name      string  `json:"name" groups:"basic,detailed"`
	Longitude float64 `json:"longitude" groups:"basic,detailed"`
	Latitude  float64 `json:"latitude" groups:"basic,detailed"`

	Capacity        int    `json:"capacity" groups:"detailed"`
	OtherIdentifier string `json:"otherIdentifier,omitempty" groups:"detailed"`

	DataSource *DataSource `json:"dataSource,omitempty" groups:"internal"`
}

// StationTraffic is a catalog station with its trip counts under one time filter.
type StationTraffic struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Capacity  int     `json:"capacity"`

	Arrivals     int `json:"arrivals"`
	Departures   int `json:"departures"`
	TotalTraffic int `json:"totalTraffic"`
}

func (s *StationTraffic) SetCounts(arrivals int, departures int) {
	s.Arrivals = arrivals
	s.Departures = departures
	s.TotalTraffic = arrivals + departures
}
