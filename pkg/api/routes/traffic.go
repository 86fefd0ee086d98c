package routes

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	geojson "github.com/paulmach/go.geojson"
	"github.com/rs/zerolog/log"
	"github.com/travigo/bikeflow/pkg/bikeshare"
	"github.com/travigo/bikeflow/pkg/session"
	"github.com/travigo/bikeflow/pkg/traffic"
)

// TrafficCache holds rendered responses keyed by snapshot, policy and time.
type TrafficCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}

type stationTrafficResponse struct {
	bikeshare.StationTraffic

	Radius         float64  `json:"radius"`
	DepartureRatio *float64 `json:"departureRatio"`
	Title          string   `json:"title"`
}

type trafficResponse struct {
	Time       int                 `json:"time"`
	TimeLabel  string              `json:"timeLabel"`
	AnyTime    bool                `json:"anyTime"`
	Policy     string              `json:"policy"`
	MaxTraffic int                 `json:"maxTraffic"`
	Scale      traffic.RadiusScale `json:"scale"`

	Stations []stationTrafficResponse `json:"stations"`
}

func newStationTrafficResponse(stationTraffic bikeshare.StationTraffic, scale traffic.RadiusScale) stationTrafficResponse {
	response := stationTrafficResponse{
		StationTraffic: stationTraffic,
		Radius:         scale.Radius(stationTraffic.TotalTraffic),
		Title:          traffic.StationTitle(stationTraffic),
	}

	if ratio, ok := traffic.DepartureRatio(stationTraffic); ok {
		response.DepartureRatio = &ratio
	}

	return response
}

func TrafficRouter(router fiber.Router, state *session.Session, trafficCache TrafficCache) {
	router.Get("/", getTraffic(state, trafficCache))
	router.Get("/geojson", getTrafficGeoJSON(state))
}

func getTraffic(state *session.Session, trafficCache TrafficCache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter, err := parseTimeQuery(c)
		if err != nil {
			return sendError(c, fiber.StatusBadRequest, err.Error())
		}

		var query *traffic.StationQuery
		if where := c.Query("where"); where != "" {
			query, err = traffic.CompileStationQuery(where)
			if err != nil {
				return sendError(c, fiber.StatusBadRequest, err.Error())
			}
		}

		snapshot := state.Snapshot()

		// Only unrestricted responses are cached
		cacheKey := ""
		if trafficCache != nil && query == nil {
			cacheKey = fmt.Sprintf("bikeflow/traffic/%d/%s/%d", snapshot.LoadedAt.UnixNano(), state.Policy().Name(), filter.SliderValue())

			if cached, err := trafficCache.Get(c.UserContext(), cacheKey); err == nil {
				c.Set("X-Cache", "HIT")
				c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
				return c.SendString(cached)
			}
		}

		update := snapshot.Traffic(filter, state.Policy())

		stationsTraffic := update.Stations
		if query != nil {
			stationsTraffic, err = query.Filter(stationsTraffic)
			if err != nil {
				return sendError(c, fiber.StatusBadRequest, err.Error())
			}
		}

		response := trafficResponse{
			Time:       filter.SliderValue(),
			TimeLabel:  traffic.TimeLabel(filter),
			AnyTime:    !filter.IsSet(),
			Policy:     state.Policy().Name(),
			MaxTraffic: snapshot.MaxTraffic,
			Scale:      update.Scale,
			Stations:   make([]stationTrafficResponse, 0, len(stationsTraffic)),
		}
		for _, stationTraffic := range stationsTraffic {
			response.Stations = append(response.Stations, newStationTrafficResponse(stationTraffic, update.Scale))
		}

		body, err := json.Marshal(response)
		if err != nil {
			return sendError(c, fiber.StatusInternalServerError, "Could not encode traffic")
		}

		if cacheKey != "" {
			if err := trafficCache.Set(c.UserContext(), cacheKey, string(body)); err != nil {
				log.Error().Err(err).Str("key", cacheKey).Msg("Failed to cache traffic response")
			}
			c.Set("X-Cache", "MISS")
		}

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(body)
	}
}

func getTrafficGeoJSON(state *session.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter, err := parseTimeQuery(c)
		if err != nil {
			return sendError(c, fiber.StatusBadRequest, err.Error())
		}

		update := state.Traffic(filter)

		featureCollection := geojson.NewFeatureCollection()
		for _, stationTraffic := range update.Stations {
			feature := geojson.NewPointFeature([]float64{stationTraffic.Longitude, stationTraffic.Latitude})
			feature.ID = stationTraffic.ID

			feature.SetProperty("name", stationTraffic.Name)
			feature.SetProperty("arrivals", stationTraffic.Arrivals)
			feature.SetProperty("departures", stationTraffic.Departures)
			feature.SetProperty("totalTraffic", stationTraffic.TotalTraffic)
			feature.SetProperty("radius", update.Scale.Radius(stationTraffic.TotalTraffic))
			if ratio, ok := traffic.DepartureRatio(stationTraffic); ok {
				feature.SetProperty("departureRatio", ratio)
			}

			featureCollection.AddFeature(feature)
		}

		body, err := featureCollection.MarshalJSON()
		if err != nil {
			return sendError(c, fiber.StatusInternalServerError, "Could not encode GeoJSON")
		}

		c.Set(fiber.HeaderContentType, "application/geo+json")
		return c.Send(body)
	}
}
