package maprender

import "encoding/json"

// Route is a polyline in GeoJSON coordinate order (lng, lat).
type Route struct {
	Coordinates [][2]float64 `json:"coordinates"`
}

type geoGeometry struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

type geoFeature struct {
	Type     string      `json:"type"`
	Geometry geoGeometry `json:"geometry"`
}

// GeoJSON encodes the route as a LineString feature, the format map engines
// take for line sources.
func (r Route) GeoJSON() ([]byte, error) {
	return json.Marshal(geoFeature{
		Type: "Feature",
		Geometry: geoGeometry{
			Type:        "LineString",
			Coordinates: r.Coordinates,
		},
	})
}
