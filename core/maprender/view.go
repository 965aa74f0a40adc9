package maprender

import (
	"context"
	"strconv"
	"sync"

	"github.com/kilianp07/dispatchconsole/core/focus"
	"github.com/kilianp07/dispatchconsole/core/logger"
	"github.com/kilianp07/dispatchconsole/core/model"
	"github.com/kilianp07/dispatchconsole/core/store"
)

// View turns entity snapshots, live positions and focus events into renderer
// calls. Positions arriving between polls override marker coordinates only;
// the next snapshot wins.
type View struct {
	renderer Renderer
	log      logger.Logger
	zoom     int
	tracker  focus.Tracker

	mu        sync.Mutex
	snapshot  store.Snapshot
	positions map[int64]model.VehiclePosition
}

// NewView creates a View driving the renderer. A zoom of 0 uses FlyZoom.
func NewView(r Renderer, log logger.Logger, zoom int) *View {
	if zoom <= 0 {
		zoom = FlyZoom
	}
	return &View{
		renderer:  r,
		log:       log,
		zoom:      zoom,
		positions: make(map[int64]model.VehiclePosition),
	}
}

// Run consumes the three event streams until ctx is cancelled. Closed
// channels are tolerated so producers may shut down first.
func (v *View) Run(ctx context.Context, snapshots <-chan store.Snapshot, focusEvents <-chan model.FocusEvent, positions <-chan model.VehiclePosition) {
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-snapshots:
			if !ok {
				snapshots = nil
				continue
			}
			v.ApplySnapshot(snap)
		case ev, ok := <-focusEvents:
			if !ok {
				focusEvents = nil
				continue
			}
			v.ApplyFocus(ev)
		case pos, ok := <-positions:
			if !ok {
				positions = nil
				continue
			}
			v.ApplyPosition(pos)
		}
	}
}

// ApplySnapshot re-renders all markers from a fresh snapshot. Position
// overrides for vehicles no longer present are dropped.
func (v *View) ApplySnapshot(snap store.Snapshot) {
	v.mu.Lock()
	v.snapshot = snap
	keep := make(map[int64]model.VehiclePosition, len(v.positions))
	for _, veh := range snap.Vehicles {
		if p, ok := v.positions[veh.ID]; ok {
			keep[veh.ID] = p
		}
	}
	v.positions = keep
	markers := v.buildMarkersLocked()
	v.mu.Unlock()
	v.renderer.SetMarkers(markers)
	v.log.Debugf("rendered %d markers", len(markers))
}

// ApplyFocus flies to the coordinate once per distinct timestamp.
func (v *View) ApplyFocus(ev model.FocusEvent) {
	if !v.tracker.ShouldRender(ev) {
		return
	}
	v.renderer.FlyTo(ev.Lat, ev.Lng, v.zoom)
}

// ApplyPosition moves a single vehicle marker without touching the store.
func (v *View) ApplyPosition(pos model.VehiclePosition) {
	v.mu.Lock()
	v.positions[pos.VehicleID] = pos
	markers := v.buildMarkersLocked()
	v.mu.Unlock()
	v.renderer.SetMarkers(markers)
}

// ShowRoute renders a polyline.
func (v *View) ShowRoute(route Route) {
	v.renderer.SetRoute(route)
}

func (v *View) buildMarkersLocked() []Marker {
	snap := v.snapshot
	markers := make([]Marker, 0, len(snap.Incidents)+len(snap.Vehicles)+len(snap.Stations))
	for _, inc := range snap.Incidents {
		markers = append(markers, Marker{
			ID:    "incident-" + strconv.FormatInt(inc.ID, 10),
			Kind:  KindIncident,
			Glyph: incidentGlyph(inc.Type),
			Label: string(inc.Severity),
			Lat:   inc.Lat,
			Lng:   inc.Lng,
		})
	}
	for _, veh := range snap.Vehicles {
		lat, lng := veh.Lat, veh.Lng
		if p, ok := v.positions[veh.ID]; ok {
			lat, lng = p.Lat, p.Lng
		}
		markers = append(markers, Marker{
			ID:    "vehicle-" + strconv.FormatInt(veh.ID, 10),
			Kind:  KindVehicle,
			Glyph: vehicleGlyph(veh.Type),
			Label: string(veh.Status),
			Lat:   lat,
			Lng:   lng,
		})
	}
	for _, st := range snap.Stations {
		markers = append(markers, Marker{
			ID:    "station-" + strconv.FormatInt(st.ID, 10),
			Kind:  KindStation,
			Glyph: stationGlyph,
			Label: st.Name,
			Lat:   st.Lat,
			Lng:   st.Lng,
		})
	}
	return markers
}

const stationGlyph = "station"

func incidentGlyph(t model.IncidentType) string {
	switch t {
	case model.TypeMedical:
		return "medical"
	case model.TypeFire:
		return "fire"
	case model.TypePolice:
		return "police"
	}
	return "alert"
}

func vehicleGlyph(t model.IncidentType) string {
	switch t {
	case model.TypeMedical:
		return "ambulance"
	case model.TypeFire:
		return "fire-truck"
	case model.TypePolice:
		return "police-car"
	}
	return "unit"
}
