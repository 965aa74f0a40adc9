// Package maprender defines the capability surface the console expects from
// a map engine and the view that feeds it from entity snapshots and focus
// events. The engine itself (tiles, animation, styling) stays external.
package maprender

import "sync"

// FlyZoom is the target zoom level for locate transitions.
const FlyZoom = 15

// MarkerKind identifies the entity family behind a marker.
type MarkerKind string

const (
	KindIncident MarkerKind = "incident"
	KindVehicle  MarkerKind = "vehicle"
	KindStation  MarkerKind = "station"
)

// Marker is one glyph on the map, carrying the backing entity id so click
// events can be routed back to the console.
type Marker struct {
	ID    string     `json:"id"`
	Kind  MarkerKind `json:"kind"`
	Glyph string     `json:"glyph"`
	Label string     `json:"label"`
	Lat   float64    `json:"lat"`
	Lng   float64    `json:"lng"`
}

// Renderer is the capability surface consumed by the console. Implementations
// wrap a real map engine; the console only issues these primitives.
type Renderer interface {
	// SetMarkers replaces all markers wholesale, mirroring the snapshot
	// discipline of the entity store.
	SetMarkers([]Marker)
	// SetRoute replaces the rendered route polyline.
	SetRoute(Route)
	// FlyTo animates the viewport to the coordinate at the given zoom.
	FlyTo(lat, lng float64, zoom int)
	// OnMarkerClick registers the callback invoked with the backing entity
	// id when a marker is clicked.
	OnMarkerClick(func(id string))
}

// LogRenderer records every call. It backs tests and headless runs.
type LogRenderer struct {
	mu      sync.Mutex
	markers []Marker
	route   Route
	flights []FlyCall
	click   func(string)
}

// FlyCall is one recorded FlyTo invocation.
type FlyCall struct {
	Lat  float64
	Lng  float64
	Zoom int
}

func (r *LogRenderer) SetMarkers(m []Marker) {
	r.mu.Lock()
	r.markers = append([]Marker(nil), m...)
	r.mu.Unlock()
}

func (r *LogRenderer) SetRoute(route Route) {
	r.mu.Lock()
	r.route = route
	r.mu.Unlock()
}

func (r *LogRenderer) FlyTo(lat, lng float64, zoom int) {
	r.mu.Lock()
	r.flights = append(r.flights, FlyCall{Lat: lat, Lng: lng, Zoom: zoom})
	r.mu.Unlock()
}

func (r *LogRenderer) OnMarkerClick(fn func(string)) {
	r.mu.Lock()
	r.click = fn
	r.mu.Unlock()
}

// Markers returns the last marker set.
func (r *LogRenderer) Markers() []Marker {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Marker(nil), r.markers...)
}

// Route returns the last route set.
func (r *LogRenderer) Route() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.route
}

// Flights returns all recorded FlyTo calls.
func (r *LogRenderer) Flights() []FlyCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]FlyCall(nil), r.flights...)
}

// Click simulates a marker click from the engine side.
func (r *LogRenderer) Click(id string) {
	r.mu.Lock()
	fn := r.click
	r.mu.Unlock()
	if fn != nil {
		fn(id)
	}
}
