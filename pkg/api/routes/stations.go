package routes

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/bikeflow/pkg/bikeshare"
	"github.com/travigo/bikeflow/pkg/session"
	"github.com/travigo/bikeflow/pkg/traffic"
)

func StationsRouter(router fiber.Router, state *session.Session) {
	router.Get("/", listStations(state))
	router.Get("/:identifier", getStation(state))
}

func stationGroups(c *fiber.Ctx) ([]string, error) {
	detailed, err := strconv.ParseBool(c.Query("detailed", "false"))
	if err != nil {
		return nil, err
	}

	if detailed {
		return []string{"basic", "detailed"}, nil
	}

	return []string{"basic"}, nil
}

func listStations(state *session.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		groups, err := stationGroups(c)
		if err != nil {
			return sendError(c, fiber.StatusBadRequest, "detailed must be a boolean")
		}

		snapshot := state.Snapshot()

		stationsReduced := make([]interface{}, 0, len(snapshot.Stations))
		for i := range snapshot.Stations {
			stationReduced, err := sheriff.Marshal(&sheriff.Options{
				Groups: groups,
			}, &snapshot.Stations[i])
			if err != nil {
				return sendError(c, fiber.StatusInternalServerError, "Sherrif could not reduce Station")
			}

			stationsReduced = append(stationsReduced, stationReduced)
		}

		return c.JSON(stationsReduced)
	}
}

func getStation(state *session.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := c.Params("identifier")

		filter, err := parseTimeQuery(c)
		if err != nil {
			return sendError(c, fiber.StatusBadRequest, err.Error())
		}

		snapshot := state.Snapshot()

		var station *bikeshare.Station
		for i := range snapshot.Stations {
			if snapshot.Stations[i].ID == identifier {
				station = &snapshot.Stations[i]
				break
			}
		}

		if station == nil {
			return sendError(c, fiber.StatusNotFound, "Could not find Station matching Station Identifier")
		}

		stationReduced, err := sheriff.Marshal(&sheriff.Options{
			Groups: []string{"basic", "detailed"},
		}, station)
		if err != nil {
			return sendError(c, fiber.StatusInternalServerError, "Sherrif could not reduce Station")
		}

		update := snapshot.Traffic(filter, state.Policy())
		stationTraffic := traffic.ByStation(update.Stations)[identifier]

		return c.JSON(fiber.Map{
			"station":   stationReduced,
			"time":      filter.SliderValue(),
			"timeLabel": traffic.TimeLabel(filter),
			"traffic":   newStationTrafficResponse(stationTraffic, update.Scale),
		})
	}
}
