package presentation

import (
	"sync"

	"github.com/travigo/bikeflow/pkg/bikeshare"
	"github.com/travigo/bikeflow/pkg/session"
	"github.com/travigo/bikeflow/pkg/traffic"
)

type Marker struct {
	StationID string  `json:"stationId"`
	CX        float64 `json:"cx"`
	CY        float64 `json:"cy"`
	Radius    float64 `json:"r"`

	// DepartureRatio is nil for stations without traffic.
	DepartureRatio *float64 `json:"departureRatio"`
	Title          string   `json:"title"`
}

func Layout(stationsTraffic []bikeshare.StationTraffic, projector Projector, scale traffic.RadiusScale) []Marker {
	markers := make([]Marker, 0, len(stationsTraffic))

	for _, stationTraffic := range stationsTraffic {
		cx, cy := projector.Project(stationTraffic.Longitude, stationTraffic.Latitude)

		marker := Marker{
			StationID: stationTraffic.ID,
			CX:        cx,
			CY:        cy,
			Radius:    scale.Radius(stationTraffic.TotalTraffic),
			Title:     traffic.StationTitle(stationTraffic),
		}

		if ratio, ok := traffic.DepartureRatio(stationTraffic); ok {
			marker.DepartureRatio = &ratio
		}

		markers = append(markers, marker)
	}

	return markers
}

// Adapter keeps a marker layout current. It re-lays out when the session
// publishes new traffic and when the viewport changes.
type Adapter struct {
	mu        sync.Mutex
	update    session.Update
	projector Projector
	markers   []Marker

	onRender func([]Marker)

	cancels []func()
}

// NewAdapter subscribes to both sources. onRender may be nil.
func NewAdapter(state *session.Session, viewport *ViewportNotifier, projector Projector, onRender func([]Marker)) *Adapter {
	adapter := &Adapter{
		update:    state.Current(),
		projector: projector,
		onRender:  onRender,
	}

	adapter.cancels = append(adapter.cancels,
		state.Subscribe(adapter.trafficChanged),
		viewport.Subscribe(adapter.viewportChanged),
	)

	adapter.render()

	return adapter
}

func (a *Adapter) trafficChanged(update session.Update) {
	a.mu.Lock()
	a.update = update
	a.mu.Unlock()

	a.render()
}

func (a *Adapter) viewportChanged(projector Projector) {
	a.mu.Lock()
	a.projector = projector
	a.mu.Unlock()

	a.render()
}

func (a *Adapter) render() {
	a.mu.Lock()
	markers := Layout(a.update.Stations, a.projector, a.update.Scale)
	a.markers = markers
	onRender := a.onRender
	a.mu.Unlock()

	if onRender != nil {
		onRender(markers)
	}
}

func (a *Adapter) Markers() []Marker {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.markers
}

func (a *Adapter) Close() {
	for _, cancel := range a.cancels {
		cancel()
	}
}
