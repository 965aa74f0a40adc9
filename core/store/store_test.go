package store

import (
	"testing"

	"github.com/kilianp07/dispatchconsole/core/model"
)

func TestReplaceIsWholesale(t *testing.T) {
	s := New()
	s.ReplaceIncidents([]model.Incident{{ID: 1}, {ID: 2}})
	s.ReplaceIncidents([]model.Incident{{ID: 3}})
	out := s.Incidents()
	if len(out) != 1 || out[0].ID != 3 {
		t.Fatalf("replace not wholesale: %#v", out)
	}
}

func TestCollectionsIndependent(t *testing.T) {
	s := New()
	s.ReplaceIncidents([]model.Incident{{ID: 1}})
	s.ReplaceStations([]model.Station{{ID: 10}})
	s.ReplaceVehicles(nil)
	if len(s.Incidents()) != 1 || len(s.Stations()) != 1 {
		t.Fatalf("replacing vehicles touched other collections")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s := New()
	s.ReplaceVehicles([]model.Vehicle{{ID: 1, Status: model.VehicleAvailable}})
	snap := s.Snapshot()
	snap.Vehicles[0].Status = model.VehicleOnRoute
	if s.Vehicles()[0].Status != model.VehicleAvailable {
		t.Fatalf("snapshot aliases store memory")
	}
}

func TestCounts(t *testing.T) {
	s := New()
	s.ReplaceIncidents([]model.Incident{
		{ID: 1, Status: model.IncidentReported},
		{ID: 2, Status: model.IncidentAssigned},
		{ID: 3, Status: model.IncidentAssigned},
		{ID: 4, Status: model.IncidentResolved},
	})
	s.ReplaceVehicles([]model.Vehicle{
		{ID: 1, Status: model.VehicleAvailable},
		{ID: 2, Status: model.VehicleOnRoute},
	})
	s.ReplaceStations([]model.Station{{ID: 1}})
	c := s.Counts()
	if c.Incidents != 4 || c.Reported != 1 || c.Assigned != 2 || c.Vehicles != 2 || c.AvailableVehicles != 1 || c.Stations != 1 {
		t.Fatalf("unexpected counts: %#v", c)
	}
}
