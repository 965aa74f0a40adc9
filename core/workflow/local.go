package workflow

import (
	"errors"
	"fmt"
	"sync"

	"github.com/kilianp07/dispatchconsole/core/model"
)

// Errors specific to local-mock assignment.
var (
	ErrUnitUnavailable = errors.New("unit is not available")
	ErrNotPending      = errors.New("incident is not pending")
)

// LocalAssigner performs assignment entirely client-side, for the standalone
// dispatcher view that runs without a backend. Its mutations are
// authoritative only within this session; there is no reconciliation and no
// concurrent-editor safety.
type LocalAssigner struct {
	mu        sync.Mutex
	incidents []model.LocalIncident
	units     []model.LocalUnit
}

// NewLocalAssigner seeds the assigner with session data.
func NewLocalAssigner(incidents []model.LocalIncident, units []model.LocalUnit) *LocalAssigner {
	return &LocalAssigner{
		incidents: append([]model.LocalIncident(nil), incidents...),
		units:     append([]model.LocalUnit(nil), units...),
	}
}

// Assign binds an available unit to a pending incident: the incident becomes
// Dispatched with the unit's name recorded, the unit becomes Busy. Nothing
// else is mutated.
func (a *LocalAssigner) Assign(incidentID int, unitID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	unitIdx := -1
	for i, u := range a.units {
		if u.ID == unitID {
			unitIdx = i
			break
		}
	}
	if unitIdx < 0 {
		return fmt.Errorf("unknown unit %q", unitID)
	}
	if a.units[unitIdx].Status != model.UnitAvailable {
		return ErrUnitUnavailable
	}

	incIdx := -1
	for i, inc := range a.incidents {
		if inc.ID == incidentID {
			incIdx = i
			break
		}
	}
	if incIdx < 0 {
		return fmt.Errorf("unknown incident %d", incidentID)
	}
	if a.incidents[incIdx].Status != model.LocalPending {
		return ErrNotPending
	}

	a.incidents[incIdx].Status = model.LocalDispatched
	a.incidents[incIdx].AssignedUnit = a.units[unitIdx].Name
	a.units[unitIdx].Status = model.UnitBusy
	return nil
}

// Incidents returns a copy of the session incidents.
func (a *LocalAssigner) Incidents() []model.LocalIncident {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]model.LocalIncident(nil), a.incidents...)
}

// Units returns a copy of the session units.
func (a *LocalAssigner) Units() []model.LocalUnit {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]model.LocalUnit(nil), a.units...)
}

// AvailableUnits lists the units an operator may still assign.
func (a *LocalAssigner) AvailableUnits() []model.LocalUnit {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []model.LocalUnit
	for _, u := range a.units {
		if u.Status == model.UnitAvailable {
			out = append(out, u)
		}
	}
	return out
}

// SeedFixture returns the demo dataset used by the standalone dispatcher
// view.
func SeedFixture() ([]model.LocalIncident, []model.LocalUnit) {
	incidents := []model.LocalIncident{
		{ID: 1, Type: "fire", Lat: 30.0480, Lng: 31.2500, Description: "Building Fire", Severity: "High", Status: model.LocalPending},
		{ID: 2, Type: "accident", Lat: 30.0530, Lng: 31.2280, Description: "Car Crash", Severity: "Medium", Status: model.LocalPending},
		{ID: 3, Type: "medical", Lat: 30.0400, Lng: 31.2300, Description: "Cardiac Arrest", Severity: "Critical", Status: model.LocalPending},
	}
	units := []model.LocalUnit{
		{ID: "c1", Name: "Alpha-1", Type: "Ambulance", Status: model.UnitAvailable, Lat: 30.0444, Lng: 31.2357},
		{ID: "c2", Name: "Bravo-1", Type: "Fire Truck", Status: model.UnitAvailable, Lat: 30.0450, Lng: 31.2400},
		{ID: "c3", Name: "Charlie-9", Type: "Police", Status: model.UnitBusy, Lat: 30.0550, Lng: 31.2200},
	}
	return incidents, units
}
