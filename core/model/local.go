package model

// Local-mode entities back the standalone dispatcher view that runs without a
// backend. Their status vocabulary is the view's, not the backend's, and is
// authoritative only within one session.

const (
	LocalPending    = "Pending"
	LocalDispatched = "Dispatched"
	LocalResolved   = "Resolved"

	UnitAvailable = "Available"
	UnitBusy      = "Busy"
)

// LocalIncident is an incident in local-mock mode.
type LocalIncident struct {
	ID           int     `json:"id"`
	Type         string  `json:"type"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Description  string  `json:"desc"`
	Severity     string  `json:"severity"`
	Status       string  `json:"status"`
	AssignedUnit string  `json:"assignedUnit,omitempty"`
}

// LocalUnit is a responder unit in local-mock mode.
type LocalUnit struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Status string  `json:"status"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}
