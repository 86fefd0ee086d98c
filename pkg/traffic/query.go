package traffic

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/travigo/bikeflow/pkg/bikeshare"
)

type stationQueryEnv struct {
	ID           string
	Name         string
	Capacity     int
	Arrivals     int
	Departures   int
	TotalTraffic int
}

// StationQuery is a compiled boolean expression over a station's traffic,
// eg. `TotalTraffic > 100 && Departures > Arrivals`.
type StationQuery struct {
	source  string
	program *vm.Program
}

func CompileStationQuery(source string) (*StationQuery, error) {
	program, err := expr.Compile(source, expr.Env(stationQueryEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile station query: %w", err)
	}

	return &StationQuery{source: source, program: program}, nil
}

func (q *StationQuery) String() string {
	return q.source
}

func (q *StationQuery) Match(stationTraffic bikeshare.StationTraffic) (bool, error) {
	output, err := expr.Run(q.program, stationQueryEnv{
		ID:           stationTraffic.ID,
		Name:         stationTraffic.Name,
		Capacity:     stationTraffic.Capacity,
		Arrivals:     stationTraffic.Arrivals,
		Departures:   stationTraffic.Departures,
		TotalTraffic: stationTraffic.TotalTraffic,
	})
	if err != nil {
		return false, err
	}

	return output.(bool), nil
}

// Filter keeps the stations matching the query, preserving order.
func (q *StationQuery) Filter(stationsTraffic []bikeshare.StationTraffic) ([]bikeshare.StationTraffic, error) {
	matched := []bikeshare.StationTraffic{}

	for _, stationTraffic := range stationsTraffic {
		match, err := q.Match(stationTraffic)
		if err != nil {
			return nil, fmt.Errorf("station %s: %w", stationTraffic.ID, err)
		}

		if match {
			matched = append(matched, stationTraffic)
		}
	}

	return matched, nil
}
