// Package model defines the entities shared between the poller, the dispatch
// workflow and the map view. Field tags follow the backend wire format.
package model

// IncidentType classifies an emergency and the vehicle kind that handles it.
type IncidentType string

const (
	TypeMedical IncidentType = "MEDICAL"
	TypeFire    IncidentType = "FIRE"
	TypePolice  IncidentType = "POLICE"
)

// IncidentStatus is the backend-owned lifecycle state of an incident.
type IncidentStatus string

const (
	IncidentReported IncidentStatus = "REPORTED"
	IncidentAssigned IncidentStatus = "ASSIGNED"
	IncidentResolved IncidentStatus = "RESOLVED"
)

// Severity grades an incident.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// VehicleStatus is the backend-owned state of a vehicle.
type VehicleStatus string

const (
	VehicleAvailable VehicleStatus = "AVAILABLE"
	VehiclePending   VehicleStatus = "PENDING"
	VehicleOnRoute   VehicleStatus = "ON_ROUTE"
)

// Incident is a reported emergency. Status advances only through
// backend-confirmed dispatch actions; the console never mutates it locally.
type Incident struct {
	ID       int64          `json:"incident_id"`
	Type     IncidentType   `json:"type"`
	Severity Severity       `json:"severity_level"`
	Status   IncidentStatus `json:"status"`
	Lat      float64        `json:"lat"`
	Lng      float64        `json:"lng"`
	// ReportedAt is kept verbatim; the backend does not guarantee a fixed
	// timestamp layout.
	ReportedAt string `json:"time_reported"`
	// StationZones and VehicleIDs are comma-joined aggregates from the
	// backend join, present only on assigned incidents.
	StationZones string `json:"station_zones,omitempty"`
	VehicleIDs   string `json:"vehicle_ids,omitempty"`
	// ResponseTime is minutes from report to resolution, set on resolved
	// incidents.
	ResponseTime float64 `json:"response_time,omitempty"`
}

// Vehicle is a responding unit. Snapshot-replaced on every poll; no identity
// beyond ID persists across polls.
type Vehicle struct {
	ID             int64         `json:"vehicle_id"`
	Type           IncidentType  `json:"vehicle_type"`
	Status         VehicleStatus `json:"status"`
	Lat            float64       `json:"lat"`
	Lng            float64       `json:"lng"`
	Zone           string        `json:"zone"`
	Capacity       int           `json:"capacity"`
	ResponderCount int           `json:"responder_count"`
}

// Station is a fixed facility housing vehicles. Read-only for the console.
type Station struct {
	ID         int64   `json:"station_id"`
	Name       string  `json:"name"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	TruckCount int     `json:"truck_count"`
}

// Dispatch binds one incident to the vehicle currently responding. At most
// one active dispatch per incident is assumed.
type Dispatch struct {
	DispatchID     int64  `json:"dispatch_id"`
	IncidentID     int64  `json:"incident_id"`
	VehicleID      int64  `json:"vehicle_id"`
	DispatcherName string `json:"dispatcher_name,omitempty"`
}

// FocusEvent instructs the map renderer to center on a coordinate. Timestamp
// uniqueness is the only invariant: it keeps two locate clicks on the same
// spot observably distinct.
type FocusEvent struct {
	Lat       float64
	Lng       float64
	Timestamp int64
}

// VehiclePosition is a live location update for a single vehicle, delivered
// out of band between polls. It never enters the entity store.
type VehiclePosition struct {
	VehicleID int64   `json:"vehicle_id"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

// EligibleVehicles returns the replacement candidates for an incident:
// matching type and currently AVAILABLE.
func EligibleVehicles(inc Incident, vehicles []Vehicle) []Vehicle {
	var out []Vehicle
	for _, v := range vehicles {
		if v.Type == inc.Type && v.Status == VehicleAvailable {
			out = append(out, v)
		}
	}
	return out
}
